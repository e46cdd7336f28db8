package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-autolink/pkg/autolink"
)

func newConvertCmd(opts *options) *cobra.Command {
	var (
		output string
		emails bool
		urls   bool
		ips    bool
		files  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input.docx>",
		Short: "Linkify a document",
		Long: `Linkify a document and write the result next to it, or to --output.

The pattern class flags override the configuration only when given, so
--files=false turns file path detection off for one run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("emails") {
				config.Emails = emails
			}
			if flags.Changed("urls") {
				config.URLs = urls
			}
			if flags.Changed("ips") {
				config.IPs = ips
			}
			if flags.Changed("files") {
				config.Files = files
			}
			if flags.Changed("dry-run") {
				config.DryRun = dryRun
			}

			in := args[0]
			out := output
			if out == "" {
				out = defaultOutputPath(in)
			}

			engine := autolink.NewWithConfig(config)
			engine.SetLogger(autolink.NewLogger(cmd.ErrOrStderr(), autolink.ParseLogLevel(config.LogLevel)))

			summary, err := engine.LinkifyFile(in, out)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary.Message())
			if summary.Failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d runs could not be processed\n", summary.Failed)
			}
			if !config.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Written to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: <input>.linked.docx)")
	cmd.Flags().BoolVar(&emails, "emails", true, "Link email addresses")
	cmd.Flags().BoolVar(&urls, "urls", true, "Link web addresses")
	cmd.Flags().BoolVar(&ips, "ips", true, "Link IP addresses")
	cmd.Flags().BoolVar(&files, "files", true, "Link file paths")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	return cmd
}

// defaultOutputPath maps "dir/report.docx" to "dir/report.linked.docx".
func defaultOutputPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".linked" + ext
}
