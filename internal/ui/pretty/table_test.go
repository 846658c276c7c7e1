package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pystyle/internal/ui/pretty"
)

func TestTable_Render(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTable(styles,
		pretty.Column{Title: "Code"},
		pretty.Column{Title: "Count", Align: pretty.AlignRight},
	)
	table.Add(pretty.Row{Cells: []string{"E225", "12"}})
	table.Add(pretty.Row{Cells: []string{"W291", "3"}})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, 2, table.Len())

	assert.Equal(t, strings.Repeat("─", 10), lines[0])
	assert.Equal(t, "Code Count", lines[1])
	assert.Equal(t, "E225    12", lines[3])
	assert.Equal(t, "W291     3", lines[4])
}

func TestTable_WideRunesAlign(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTable(styles,
		pretty.Column{Title: "File"},
		pretty.Column{Title: "Count", Align: pretty.AlignRight},
	)
	table.Add(pretty.Row{Cells: []string{"日本.py", "1"}})
	table.Add(pretty.Row{Cells: []string{"a.py", "2"}})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	require.Len(t, lines, 5)

	// "日本.py" is 7 columns wide, so "a.py" pads with three spaces.
	assert.Equal(t, "日本.py     1", lines[3])
	assert.Equal(t, "a.py        2", lines[4])
}

func TestTable_MaxWidthTruncates(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTable(styles,
		pretty.Column{Title: "Path", Max: 8, KeepTail: true},
		pretty.Column{Title: "Message", Max: 8},
	)
	table.Add(pretty.Row{Cells: []string{"deeply/nested/mod.py", "a long message"}})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[3], "…"))
	assert.Contains(t, lines[3], "mod.py")
	assert.Contains(t, lines[3], "a long")
	assert.NotContains(t, lines[3], "message")
}
