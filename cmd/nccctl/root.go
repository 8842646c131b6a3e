package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/resonanceenergy/ncc/internal/config"
	"github.com/resonanceenergy/ncc/internal/meta"
	"github.com/resonanceenergy/ncc/internal/observability"
	"github.com/resonanceenergy/ncc/internal/verify"
)

var errVerifyFailed = errors.New("metadata verification failed")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nccctl",
		Short:         "Inspect and verify NCC module metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newShowCmd(), newVerifyCmd(), newInitCmd(), newVersionCmd())
	return cmd
}

func newShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show [attr...]",
		Short: "Print metadata bindings",
		RunE: func(c *cobra.Command, args []string) error {
			attrs, err := selectAttributes(args)
			if err != nil {
				return err
			}
			return renderAttributes(c.OutOrStdout(), format, attrs)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text|yaml|toml")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var path, metricsFile string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check metadata against expected values",
		RunE: func(c *cobra.Command, _ []string) error {
			exp := verify.DefaultExpectations()
			if path != "" {
				loaded, err := config.LoadExpectations(path)
				if err != nil {
					return err
				}
				exp = loaded
			}
			return runVerify(c.OutOrStdout(), meta.Default, exp, metricsFile)
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "expectations TOML file (defaults built in)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write metrics in textfile collector format to this path")
	return cmd
}

func newInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an expectations template",
		RunE: func(c *cobra.Command, _ []string) error {
			if err := config.WriteTemplate(output, force); err != nil {
				return err
			}
			log.Info().Str("path", output).Msg("wrote expectations template")
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "expect.toml", "template output path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the module banner",
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintln(c.OutOrStdout(), meta.String())
		},
	}
}

func selectAttributes(names []string) ([]meta.Attribute, error) {
	if len(names) == 0 {
		return meta.Attributes(), nil
	}
	out := make([]meta.Attribute, 0, len(names))
	for _, name := range names {
		v, err := meta.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, meta.Attribute{Name: name, Value: v})
	}
	return out, nil
}

func renderAttributes(w io.Writer, format string, attrs []meta.Attribute) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		for _, a := range attrs {
			if _, err := fmt.Fprintf(w, "%s = %s\n", a.Name, a.Value); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range attrs {
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Value},
			)
		}
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		// go-toml sorts map keys, so encode one key per document to keep order.
		enc := toml.NewEncoder(w)
		for _, a := range attrs {
			if err := enc.Encode(map[string]string{a.Name: a.Value}); err != nil {
				return fmt.Errorf("encode toml: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runVerify(w io.Writer, src verify.Source, exp verify.Expectations, metricsFile string) error {
	report := verify.Run(src, exp)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	metrics.RecordReport(report)
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Debug().Str("path", metricsFile).Msg("wrote metrics")
	}

	for _, c := range report.Checks {
		event := log.Debug()
		if c.Result() == "fail" {
			event = log.Error()
		}
		event.Str("check", c.Name).Str("marker", c.Marker).Str("result", c.Result()).Msg(c.Detail)
		fmt.Fprintf(w, "%-5s %s\n", strings.ToUpper(c.Result()), c.Name)
	}

	failed := report.Failed()
	if len(failed) > 0 {
		log.Error().Int("failed", len(failed)).Int("total", len(report.Checks)).Msg("verification failed")
		return fmt.Errorf("%w: %d of %d checks", errVerifyFailed, len(failed), len(report.Checks))
	}
	log.Info().Int("total", len(report.Checks)).Msg("verification passed")
	return nil
}
