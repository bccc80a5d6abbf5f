package main

import (
	"fmt"

	"github.com/spf13/cobra"

	berrors "github.com/hostlink/jvmbridge/errors"
	"github.com/hostlink/jvmbridge/hook"
	"github.com/hostlink/jvmbridge/trace"
)

var traceDepth int

func init() {
	traceCmd.Flags().IntVar(&traceDepth, "depth", 3, "extra call depth before the throw")
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Show the native stack recorded for a throw",
	RunE: func(cmd *cobra.Command, args []string) error {
		hook.Install()

		var thrown *hook.Thrown
		func() {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				var ok bool
				thrown, ok = hook.AsThrown(r)
				if !ok {
					panic(r)
				}
			}()
			descend(traceDepth)
		}()
		if thrown == nil {
			return fmt.Errorf("nothing was thrown")
		}
		defer hook.Free(thrown)

		frames, ok := hook.TraceFor(thrown.Identity())
		if !ok {
			return fmt.Errorf("no trace recorded; is capture disabled in bridge.toml?")
		}

		out := cmd.OutOrStdout()
		okColor.Fprintf(out, "throw %#x: %s\n", uint64(thrown.Identity()), thrown.Error())
		fmt.Fprintf(out, "%d native frames recorded, %d entries in the registry\n",
			len(frames), trace.Len())
		for _, f := range frames {
			frameColor.Fprintf(out, "    at %s\n", f)
		}
		return nil
	},
}

func descend(depth int) {
	if depth <= 0 {
		hook.Throw(berrors.Runtime("bottom of the demo call stack"))
	}
	descend(depth - 1)
}
