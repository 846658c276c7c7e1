package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/ui/pretty"
	"github.com/yaklabco/pystyle/pkg/template"
)

func newTemplatesCommand() *cobra.Command {
	var guidance bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the file template requirements",
		Long: `List the elements the header template check expects in every file.
Run "pystyle lint --templates" to check files against them.

With --guidance the snippet for each element is printed as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			return outputTemplates(cmd.OutOrStdout(), colorMode, guidance)
		},
	}

	cmd.Flags().BoolVar(&guidance, "guidance", false, "print the snippet for each element")

	return cmd
}

func outputTemplates(w io.Writer, colorMode string, guidance bool) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))

	var buf strings.Builder
	for _, req := range template.Requirements() {
		if !guidance {
			fmt.Fprintf(&buf, "%-18s %s\n", req.ID, req.Message)
			continue
		}

		buf.WriteString(styles.FormatFinding(template.Finding{
			ID:       req.ID,
			Message:  req.Message,
			Guidance: req.Guidance,
		}))
		buf.WriteString("\n")
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("write templates: %w", err)
	}
	return nil
}
