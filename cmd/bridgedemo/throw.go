package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hostlink/jvmbridge"
	"github.com/hostlink/jvmbridge/bridgetest"
	berrors "github.com/hostlink/jvmbridge/errors"
	"github.com/hostlink/jvmbridge/hook"
	"github.com/hostlink/jvmbridge/translate"
)

var (
	classColor = color.New(color.FgYellow, color.Bold)
	msgColor   = color.New(color.FgRed)
	frameColor = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen, color.Bold)
)

var throwKind string

func init() {
	throwCmd.Flags().StringVar(&throwKind, "kind", "nested",
		"native failure to simulate (io|arg|oom|range|nested|string)")
}

var throwCmd = &cobra.Command{
	Use:   "throw",
	Short: "Throw a native exception and deliver it to the VM",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := payloadFor(throwKind)
		if err != nil {
			return err
		}

		hook.Install()
		vm := bridgetest.NewVM()

		func() {
			defer func() {
				if r := recover(); r != nil {
					translate.DeliverPending(vm, r)
				}
			}()
			if err, ok := payload.(error); ok {
				hook.Throw(err)
			}
			panic(payload)
		}()

		id, ok := vm.CurrentPendingException()
		if !ok {
			return fmt.Errorf("nothing became pending")
		}
		out := cmd.OutOrStdout()
		okColor.Fprintln(out, "delivered to the managed side:")
		return printThrowable(out, vm, id)
	},
}

func payloadFor(kind string) (any, error) {
	switch kind {
	case "io":
		return berrors.IO("connection reset while reading frame header"), nil
	case "arg":
		return berrors.InvalidArgument("buffer length must be positive"), nil
	case "oom":
		return berrors.Allocation("native arena exhausted at 512 MiB"), nil
	case "range":
		return berrors.OutOfRange(12, 8), nil
	case "nested":
		inner := berrors.IO("disk gone")
		mid := fmt.Errorf("flush index segment: %w", inner)
		return fmt.Errorf("commit transaction: %w", mid), nil
	case "string":
		return "raw panic payload", nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

func printThrowable(out io.Writer, vm *bridgetest.VM, id jvmbridge.ObjectID) error {
	for id != 0 {
		msg, err := vm.GetMessage(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s: %s\n", classColor.Sprint(vm.Class(id)), msgColor.Sprint(msg))
		frames, err := vm.GetManagedStackTrace(id)
		if err != nil {
			return err
		}
		for _, f := range frames {
			frameColor.Fprintf(out, "      at %s\n", f)
		}
		id = vm.Cause(id)
		if id != 0 {
			fmt.Fprintln(out, "  caused by")
		}
	}
	return nil
}
