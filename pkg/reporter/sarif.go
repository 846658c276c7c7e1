package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/pystyle/pkg/config"
	"github.com/yaklabco/pystyle/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

	toolName           = "pystyle"
	toolInformationURI = "https://github.com/yaklabco/pystyle"

	// Template findings share the rule list with codes under this prefix.
	templateRulePrefix = "template/"
)

// SARIFOutput is a SARIF 2.1.0 log holding a single run.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Invocations []SARIFInvocation `json:"invocations"`
	Results     []SARIFResult     `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is one reporting descriptor. ID is the code and Name the
// rule that emits it.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription SARIFText        `json:"shortDescription"`
	Help             *SARIFText       `json:"help,omitempty"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
}

type SARIFText struct {
	Text string `json:"text"`
}

type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFInvocation records whether every file could be checked. Files that
// failed to load become error notifications.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion uses the same 1-based line and column as the text output.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFReporter writes the run as one SARIF document.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r.buildOutput(result)); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	if result == nil {
		return 0, nil
	}
	return result.Stats.DiagnosticsTotal, nil
}

// sarifRunBuilder accumulates results and the rule descriptors they
// reference, assigning each descriptor an index on first use.
type sarifRunBuilder struct {
	run   SARIFRun
	index map[string]int
}

func (b *sarifRunBuilder) add(rule SARIFRule, result SARIFResult) {
	idx, ok := b.index[rule.ID]
	if !ok {
		idx = len(b.run.Tool.Driver.Rules)
		b.index[rule.ID] = idx
		b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, rule)
	}

	result.RuleID = rule.ID
	result.RuleIndex = idx
	b.run.Results = append(b.run.Results, result)
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	b := &sarifRunBuilder{
		run: SARIFRun{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:           toolName,
				Version:        r.opts.ToolVersion,
				InformationURI: toolInformationURI,
				Rules:          []SARIFRule{},
			}},
			Results: []SARIFResult{},
		},
		index: make(map[string]int),
	}

	invocation := SARIFInvocation{ExecutionSuccessful: true}

	var files []runner.FileOutcome
	if result != nil {
		files = result.Files
	}

	for _, file := range files {
		uri := slashPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			invocation.ExecutionSuccessful = false
			invocation.Notifications = append(invocation.Notifications, SARIFNotification{
				Level:     "error",
				Message:   SARIFText{Text: file.Error.Error()},
				Locations: []SARIFLocation{sarifLocation(uri, nil)},
			})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for _, diag := range file.Result.Diagnostics {
			level := sarifLevel(diag.Severity)
			b.add(
				SARIFRule{
					ID:               diag.Code,
					Name:             diag.RuleID,
					ShortDescription: SARIFText{Text: diag.Message},
					DefaultConfig:    &SARIFRuleConfig{Level: level},
				},
				SARIFResult{
					Level:     level,
					Message:   SARIFText{Text: diag.Message},
					Locations: []SARIFLocation{sarifLocation(uri, &SARIFRegion{StartLine: diag.Line, StartColumn: diag.Column})},
				},
			)
		}

		// Findings are about the whole file and anchor to line 1.
		for _, finding := range file.Result.Findings {
			b.add(
				SARIFRule{
					ID:               templateRulePrefix + finding.ID,
					Name:             finding.ID,
					ShortDescription: SARIFText{Text: finding.Message},
					Help:             &SARIFText{Text: finding.Guidance},
					DefaultConfig:    &SARIFRuleConfig{Level: "note"},
				},
				SARIFResult{
					Level:     "note",
					Message:   SARIFText{Text: finding.Message},
					Locations: []SARIFLocation{sarifLocation(uri, &SARIFRegion{StartLine: 1})},
				},
			)
		}
	}

	b.run.Invocations = []SARIFInvocation{invocation}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{b.run},
	}
}

func sarifLocation(uri string, region *SARIFRegion) SARIFLocation {
	return SARIFLocation{PhysicalLocation: SARIFPhysicalLocation{
		ArtifactLocation: SARIFArtifactLocation{URI: uri},
		Region:           region,
	}}
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
