// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-autolink/pkg/autolink"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
}

// newRootCmd builds the command tree. Each call returns an independent
// tree so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "autolink",
		Short: "Turn plain-text addresses in DOCX files into hyperlinks",
		Long: `autolink finds email addresses, web addresses, IP addresses and file
paths written as plain text in Word documents and turns them into
clickable hyperlinks, keeping the surrounding formatting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(newConvertCmd(opts))
	rootCmd.AddCommand(newLinksCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig resolves the configuration for a command: defaults, then the
// config file, then AUTOLINK_* environment variables, then flags.
func (o *options) loadConfig() (*autolink.Config, error) {
	config := autolink.DefaultConfig()
	if o.configPath != "" {
		loaded, err := autolink.LoadConfigFile(o.configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	autolink.ApplyEnvironment(config)

	if o.logLevel != "" {
		config.LogLevel = o.logLevel
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
