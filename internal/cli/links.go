package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-autolink/pkg/autolink"
)

func newLinksCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "links <input.docx>",
		Short: "List the hyperlinks in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := autolink.ListHyperlinksInFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if links == nil {
					links = []autolink.LinkInfo{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(links)
			}

			if len(links) == 0 {
				fmt.Fprintln(out, "No hyperlinks found.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PART\tTEXT\tTARGET")
			for _, link := range links {
				target := link.Target
				if target == "" && link.Anchor != "" {
					target = "#" + link.Anchor
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", link.Part, link.Text, target)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}
