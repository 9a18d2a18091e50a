package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/report-atlas/pkg/server"
	"github.com/de-tools/report-atlas/pkg/services/config"
	"github.com/de-tools/report-atlas/pkg/services/marketlens"
	"github.com/de-tools/report-atlas/pkg/services/report"
	"github.com/de-tools/report-atlas/pkg/store/artifact"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the block server for Report Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the settings YAML file (defaults apply if omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	factory := func(apiKey string) (*report.Service, error) {
		client, err := marketlens.NewClient(marketlens.Config{
			BaseURL: settings.API.BaseURL,
			APIKey:  apiKey,
			Timeout: settings.API.Timeout,
			Retry: marketlens.RetryPolicy{
				MaxAttempts: settings.API.Retry.MaxAttempts,
				WaitTime:    settings.API.Retry.WaitTime,
				MaxWaitTime: settings.API.Retry.MaxWaitTime,
			},
		})
		if err != nil {
			return nil, err
		}
		return report.NewService(client), nil
	}

	var publisher artifact.Store
	switch {
	case settings.Render.S3Bucket != "":
		s3Store, err := artifact.NewS3(ctx, settings.Render.AWSProfile,
			settings.Render.S3Bucket, settings.Render.S3Prefix)
		if err != nil {
			return fmt.Errorf("failed to configure S3 publishing: %w", err)
		}
		publisher = s3Store
		logger.Info().Str("bucket", settings.Render.S3Bucket).Msg("publishing PDFs to S3")
	case settings.Render.PublishDir != "":
		publisher = artifact.NewLocal(settings.Render.PublishDir)
		logger.Info().Str("dir", settings.Render.PublishDir).Msg("publishing PDFs locally")
	}

	addr := net.JoinHostPort(settings.Server.Host, settings.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			ServiceFactory: factory,
			OutputDir:      settings.Render.OutputDir,
			Publisher:      publisher,
		},
	})

	logger.Info().Str("base_url", settings.API.BaseURL).Msg("upstream API configured")
	return api.Start()
}
