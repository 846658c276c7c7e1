package cache

import (
	"fmt"
	"maps"
	"slices"

	"fortio.org/safecast"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/lint"
	"github.com/yaklabco/pystyle/pkg/template"
)

// entry is the stored form of a lint.FileResult. Paths are not stored:
// the same content may live under several names.
type entry struct {
	Schema        uint16            `msgpack:"schema"`
	Encoding      string            `msgpack:"encoding"`
	Lines         []string          `msgpack:"lines"`
	Diagnostics   []diagnostic      `msgpack:"diagnostics"`
	Counts        map[string]int    `msgpack:"counts"`
	FirstMessages map[string]string `msgpack:"first_messages"`
	Findings      []finding         `msgpack:"findings,omitempty"`
}

type diagnostic struct {
	Code     string `msgpack:"code"`
	RuleID   string `msgpack:"rule"`
	Message  string `msgpack:"message"`
	Severity string `msgpack:"severity"`
	Line     uint32 `msgpack:"line"`
	Column   uint32 `msgpack:"column"`
}

type finding struct {
	ID       string `msgpack:"id"`
	Message  string `msgpack:"message"`
	Guidance string `msgpack:"guidance"`
}

func newEntry(result *lint.FileResult) (*entry, error) {
	e := &entry{
		Schema:        schemaVersion,
		Encoding:      result.Encoding,
		Lines:         slices.Clone(result.Lines),
		Diagnostics:   make([]diagnostic, 0, len(result.Diagnostics)),
		Counts:        maps.Clone(result.Counts),
		FirstMessages: maps.Clone(result.FirstMessages),
	}

	for _, d := range result.Diagnostics {
		line, err := safecast.Conv[uint32](d.Line)
		if err != nil {
			return nil, fmt.Errorf("encode %s line: %w", d.Code, err)
		}
		col, err := safecast.Conv[uint32](d.Column)
		if err != nil {
			return nil, fmt.Errorf("encode %s column: %w", d.Code, err)
		}

		e.Diagnostics = append(e.Diagnostics, diagnostic{
			Code:     d.Code,
			RuleID:   d.RuleID,
			Message:  d.Message,
			Severity: string(d.Severity),
			Line:     line,
			Column:   col,
		})
	}

	for _, f := range result.Findings {
		e.Findings = append(e.Findings, finding{ID: f.ID, Message: f.Message, Guidance: f.Guidance})
	}

	return e, nil
}

// result rebuilds a FileResult. Every call returns independent slices and
// maps, so callers may modify the result.
func (e *entry) result() *lint.FileResult {
	fr := &lint.FileResult{
		Lines:         slices.Clone(e.Lines),
		Encoding:      e.Encoding,
		Diagnostics:   make([]lint.Diagnostic, 0, len(e.Diagnostics)),
		Counts:        maps.Clone(e.Counts),
		FirstMessages: maps.Clone(e.FirstMessages),
		RuleErrors:    map[string]error{},
	}

	for _, d := range e.Diagnostics {
		fr.Diagnostics = append(fr.Diagnostics, lint.Diagnostic{
			Code:     d.Code,
			RuleID:   d.RuleID,
			Message:  d.Message,
			Severity: config.Severity(d.Severity),
			Line:     int(d.Line),
			Column:   int(d.Column),
		})
	}

	for _, f := range e.Findings {
		fr.Findings = append(fr.Findings, template.Finding{ID: f.ID, Message: f.Message, Guidance: f.Guidance})
	}

	return fr
}
