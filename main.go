package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"drawsignature/internal/config"
	"drawsignature/internal/export"
	"drawsignature/internal/logger"
	"drawsignature/internal/ui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var format string

	cmd := &cobra.Command{
		Use:   "drawsignature",
		Short: "Capture a hand-drawn signature and save it as an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Format = export.Format(format)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogJSON); err != nil {
				return err
			}
			log := logger.For("main")
			log.Info().
				Str("format", string(cfg.Format)).
				Str("out_dir", cfg.OutputDir).
				Bool("trim", cfg.Trim).
				Msg("starting")
			ui.RunApp(cfg)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Version = version
	cmd.SetVersionTemplate("{{.Version}}\n")

	addFlags(cmd.Flags(), &cfg, &format)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func addFlags(fs *pflag.FlagSet, cfg *config.Config, format *string) {
	fs.StringVarP(&cfg.OutputDir, "out-dir", "o", cfg.OutputDir, "directory for saved images (default: app storage)")
	fs.StringVarP(format, "format", "f", string(cfg.Format), "image format: png, jpeg, bmp, tiff or pdf")
	fs.IntVarP(&cfg.Quality, "quality", "q", cfg.Quality, "JPEG quality (1-100)")
	fs.BoolVar(&cfg.Trim, "trim", cfg.Trim, "crop saved images to the signature")
	fs.IntVar(&cfg.Padding, "padding", cfg.Padding, "margin kept around the signature when trimming")
	fs.Float32Var(&cfg.Width, "width", cfg.Width, "initial window width")
	fs.Float32Var(&cfg.Height, "height", cfg.Height, "initial window height")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "write logs as JSON")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
