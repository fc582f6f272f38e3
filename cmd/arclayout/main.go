// Command arclayout is a small diagnostic CLI over the layout engine:
// it reports size/alignment for a catalog of built-in types under a
// chosen target, and can dump or export the active target spec. It
// stands in for the full compiler driver, which is out of scope here.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var triple string
	root := &cobra.Command{
		Use:   "arclayout",
		Short: "Inspect target-dependent type layouts",
	}
	root.PersistentFlags().StringVar(&triple, "target", "x86_64-linux-gnu",
		"built-in target triple, or a path to a target config file")

	root.AddCommand(
		newSizeofCmd(&triple),
		newDumpTargetCmd(&triple),
		newExportTargetCmd(&triple),
		newEmitObjectCmd(&triple),
	)
	return root
}
