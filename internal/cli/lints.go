package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/emblem/internal/ui/pretty"
	"github.com/yaklabco/emblem/pkg/lint"
)

type lintsFlags struct {
	format string
}

const formatJSON = "json"

// lintInfo represents a lint in JSON output.
type lintInfo struct {
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	Enabled      bool     `json:"enabled"`
	Tags         []string `json:"tags"`
	Configurable bool     `json:"configurable"`
}

func newLintsCommand() *cobra.Command {
	flags := &lintsFlags{}

	cmd := &cobra.Command{
		Use:   "lints",
		Short: "List available lints",
		Long: `List all available lints with their IDs, descriptions, tags and
whether they run by default.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			lints := lint.DefaultRegistry.Lints()
			switch flags.format {
			case formatJSON:
				return outputLintsJSON(cmd.OutOrStdout(), lints)
			case "", "text":
				color, _ := cmd.Flags().GetString("color")
				styles := pretty.NewStyles(pretty.IsColorEnabled(color, cmd.OutOrStdout()))
				_, err := io.WriteString(cmd.OutOrStdout(), formatLintsTable(styles, lints))
				return err
			default:
				return fmt.Errorf("%w: unknown format %q; must be text or json", ErrInvalidUsage, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func formatLintsTable(styles *pretty.Styles, lints []lint.Lint) string {
	rows := make([][]string, 0, len(lints))
	for _, l := range lints {
		enabled := "no"
		if l.DefaultEnabled() {
			enabled = "yes"
		}
		rows = append(rows, []string{l.ID(), enabled, strings.Join(l.Tags(), ","), l.Description()})
	}
	return styles.FormatTable([]string{"ID", "DEFAULT", "TAGS", "DESCRIPTION"}, rows)
}

// outputLintsJSON writes lints as a JSON array.
func outputLintsJSON(w io.Writer, lints []lint.Lint) error {
	infos := make([]lintInfo, 0, len(lints))
	for _, l := range lints {
		_, configurable := l.(lint.Configurable)
		infos = append(infos, lintInfo{
			ID:           l.ID(),
			Description:  l.Description(),
			Enabled:      l.DefaultEnabled(),
			Tags:         l.Tags(),
			Configurable: configurable,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding lints: %w", err)
	}
	return nil
}
