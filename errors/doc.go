// Package errors provides structured error types for the jvmbridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the managed class
// involved, a platform error code, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTranslate, errors.KindSystem).
//		Class("com/hostlink/bridge/NativeSystemErrorException").
//		Code(int(errno)).
//		Detail("socket write failed").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IO("read config: %v", cause)
//	err := errors.OutOfRange(10, 5)
//
// The Kind constants double as the native exception taxonomy consumed by the
// translate package: a *errors.Error thrown from native code is classified
// by its Kind when it is converted into a managed exception.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
