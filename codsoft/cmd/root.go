package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"github.com/nehashinde/codsoft/codsoft/internal/config"
	"github.com/nehashinde/codsoft/codsoft/internal/fastcolor"
	"github.com/nehashinde/codsoft/codsoft/internal/prompt"
)

var configPath string
var verbose bool
var noColor bool
var columnWidth int
var columnWide bool

var cfg = config.Default()
var logger = newLogger(os.Stderr, false)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "codsoft",
	Short:        "ATM session, currency converter and student grade calculator",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		if noColor {
			fastcolor.Enabled = false
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("configuration loaded", slog.String("path", configPath))
		return nil
	},
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// outputColumns is the width used for tabular output.
func outputColumns(out io.Writer) int {
	if columnWide {
		return prompt.Width(out, 132)
	}
	return columnWidth
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:       rootCmd,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv(config.EnvFile), "Configuration file (default is $"+config.EnvFile+").")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages to stderr.")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
	rootCmd.PersistentFlags().IntVar(&columnWidth, "columns", 80, "Set a column width for output.")
	rootCmd.PersistentFlags().BoolVar(&columnWide, "wide", false, "Wide output (use terminal width).")
}
