package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edugzlez/electosim/internal/logging"
	"github.com/edugzlez/electosim/types"
)

// newRootCmd builds the command tree. Tests build a fresh one per case so
// flag state never leaks between them.
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "electosim",
		Short:        "Simulate seat apportionment over a hierarchy of regions",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	newLogger := func(cmd *cobra.Command) (types.Logger, error) {
		log, err := logging.NewText(cmd.ErrOrStderr(), logLevel)
		if err != nil {
			return nil, err
		}

		return log, nil
	}

	root.AddCommand(
		newRunCmd(newLogger),
		newValidateCmd(newLogger),
		newMethodsCmd(),
	)

	return root
}

type loggerFactory func(cmd *cobra.Command) (types.Logger, error)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the available apportionment methods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, m := range types.Methods {
				family := "remainder"
				if m.IsDivisor() {
					family = "divisor"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", m, family)
			}
		},
	}
}
