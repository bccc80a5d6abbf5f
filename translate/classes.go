package translate

// Managed classes the native taxonomy maps onto.
const (
	ClassRuntimeException               = "java/lang/RuntimeException"
	ClassIllegalArgumentException       = "java/lang/IllegalArgumentException"
	ClassIOException                    = "java/io/IOException"
	ClassOutOfMemoryError               = "java/lang/OutOfMemoryError"
	ClassArrayIndexOutOfBoundsException = "java/lang/ArrayIndexOutOfBoundsException"

	// Bridge-owned wrapper classes for faults with no standard counterpart.
	ClassNativeException            = "com/hostlink/bridge/NativeException"
	ClassNativeSystemErrorException = "com/hostlink/bridge/NativeSystemErrorException"
)

// Constructor descriptors.
const (
	ctorDefault     = "()V"
	ctorMessage     = "(Ljava/lang/String;)V"
	ctorMessageCode = "(Ljava/lang/String;I)V"
)
