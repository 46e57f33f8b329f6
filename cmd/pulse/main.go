package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/llm"
	"github.com/pulsedesk/pulse/internal/pulse"
	"github.com/pulsedesk/pulse/internal/pulse/model"
	"github.com/pulsedesk/pulse/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pulse",
		Short:         "Pulse - operational telemetry briefings",
		Long:          "Pulse collects recent activity from the configured external services and produces an executive briefing.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newBriefCmd())
	cmd.AddCommand(newCollectCmd())
	return cmd
}

func buildPipeline(ctx context.Context) (*pulse.Pulse, error) {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.LoadDefault()
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	return pulse.New(server.BuildCollectors(cfg), llmClient, cfg.Pipeline.CollectorTimeout()), nil
}

func newBriefCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Run the pipeline once and print the briefing JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			p, err := buildPipeline(ctx)
			if err != nil {
				return err
			}

			summary, briefErr := p.Brief(ctx)
			if err := printJSON(cmd, summary); err != nil {
				return err
			}
			return briefErr
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall run deadline")
	return cmd
}

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect <source>",
		Short: "Run a single collector and print its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildPipeline(cmd.Context())
			if err != nil {
				return err
			}

			result, ok := p.Collect(cmd.Context(), model.Source(args[0]))
			if !ok {
				return fmt.Errorf("unknown source %q (valid: %v)", args[0], model.Sources())
			}
			return printJSON(cmd, result)
		},
	}
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
