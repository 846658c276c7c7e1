package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pystyle/internal/ui/pretty"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/lint/rules"
)

type rulesFlags struct {
	format string
	json   bool
}

const formatJSON = "json"

// descriptionColWidth bounds the description column of the rules table.
const descriptionColWidth = 60

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Codes       []string `json:"codes"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available check rules",
		Long: `List all available rules with their IDs, the diagnostic codes
they report, default severity, and description.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := rules.Catalog().Rules()

			if flags.json || flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), catalog)
			}

			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}

			return outputRulesTable(cmd.OutOrStdout(), catalog, colorMode)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.json, "json", false, "shorthand for --format json")

	return cmd
}

func outputRulesTable(w io.Writer, catalog []lint.Rule, colorMode string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))

	table := pretty.NewTable(styles,
		pretty.Column{Title: "Rule"},
		pretty.Column{Title: "Codes"},
		pretty.Column{Title: "Severity"},
		pretty.Column{Title: "Description", Max: descriptionColWidth},
	)

	for _, rule := range catalog {
		table.Add(pretty.Row{Cells: []string{
			rule.ID(),
			strings.Join(rule.Codes(), ","),
			styles.FormatSeverity(rule.DefaultSeverity()),
			rule.Description(),
		}})
	}

	if _, err := fmt.Fprint(w, table.Render()); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, catalog []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(catalog))
	for _, rule := range catalog {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Codes:       rule.Codes(),
			Kind:        rule.Kind().String(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
