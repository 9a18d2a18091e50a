package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/report-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/report-atlas/pkg/services/config"
	"github.com/de-tools/report-atlas/pkg/services/marketlens"
	"github.com/de-tools/report-atlas/pkg/services/report"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Settings *config.Settings
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	deps := commands.Dependencies{
		Settings: opts.Settings,
		Out:      opts.Output,
		NewService: func(apiKey string) (*report.Service, error) {
			client, err := marketlens.NewClient(marketlens.Config{
				BaseURL: opts.Settings.API.BaseURL,
				APIKey:  apiKey,
				Timeout: opts.Settings.API.Timeout,
				Retry: marketlens.RetryPolicy{
					MaxAttempts: opts.Settings.API.Retry.MaxAttempts,
					WaitTime:    opts.Settings.API.Retry.WaitTime,
					MaxWaitTime: opts.Settings.API.Retry.MaxWaitTime,
				},
			})
			if err != nil {
				return nil, err
			}
			return report.NewService(client), nil
		},
	}

	cli := &CLI{}
	cli.rootCmd = newRootCmd(deps)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func newRootCmd(deps commands.Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report-atlas",
		Short: "Financial report blocks and renderers",
	}

	cmd.AddCommand(commands.NewReportCmd(deps))
	cmd.AddCommand(commands.NewPeriodsCmd(deps))
	cmd.AddCommand(commands.NewQuestionsCmd(deps))
	cmd.AddCommand(commands.NewSummaryCmd(deps))
	cmd.AddCommand(commands.NewMarkdownCmd(deps))
	cmd.AddCommand(commands.NewPdfCmd(deps))

	return cmd
}
