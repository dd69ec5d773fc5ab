package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/edugzlez/electosim"
	"github.com/edugzlez/electosim/district"
	"github.com/edugzlez/electosim/internal/metrics"
	"github.com/edugzlez/electosim/scenario"
)

// Output formats accepted by --output.
const (
	outputAuto  = "auto"
	outputTable = "table"
	outputYAML  = "yaml"
)

type runFlags struct {
	output  string
	metrics bool
}

func newRunCmd(newLogger loggerFactory) *cobra.Command {
	flags := runFlags{}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Apportion a scenario and print the seats",
		Long: `Load a scenario, build the region tree and district configuration,
apportion every district and print votes and seats per region.

With --metrics the Prometheus metrics collected during the run are appended
in text exposition format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			return runScenario(cmd.OutOrStdout(), args[0], flags, log)
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputAuto, "output format: auto, table or yaml")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "append Prometheus metrics in text format")

	return cmd
}

func runScenario(w io.Writer, path string, flags runFlags, log electosim.Logger) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	sc.Districts.ValidateWithWarnings(log)

	reg := prometheus.NewRegistry()
	collector := metrics.NewPrometheus(reg, "")

	run, err := sc.Build(
		scenario.WithSystemOptions(electosim.WithLogger(log), electosim.WithMetrics(collector)),
		scenario.WithDistrictOptions(district.WithLogger(log), district.WithMetrics(collector)),
	)
	if err != nil {
		return err
	}
	defer run.System.Close()

	report, err := run.Report()
	if err != nil {
		return err
	}

	if err := render(w, report, resolveOutput(flags.output, w)); err != nil {
		return err
	}

	if flags.metrics {
		return writeMetrics(w, reg)
	}

	return nil
}

// resolveOutput picks the table on a terminal and YAML otherwise.
func resolveOutput(format string, w io.Writer) string {
	if format != outputAuto {
		return format
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return outputTable
	}

	return outputYAML
}

func render(w io.Writer, report scenario.Report, format string) error {
	switch format {
	case outputTable:
		_, err := io.WriteString(w, renderTable(report))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func newValidateCmd(newLogger loggerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario without apportioning it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			sc.Districts.ValidateWithWarnings(log)

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d candidacies, %d districts, mode %s\n",
				displayName(sc, args[0]), len(sc.Candidacies), len(sc.Districts.Districts), sc.Districts.Mode)

			return nil
		},
	}
}

func displayName(sc *scenario.Scenario, file string) string {
	if sc.Name != "" {
		return sc.Name
	}

	return file
}
