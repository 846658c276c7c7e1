package lint

import (
	"slices"
	"strings"

	"github.com/yaklabco/pystyle/pkg/config"
)

// BaseRule carries a rule's metadata and implements every Rule method
// except the check itself. Rules embed it and add CheckPhysical or
// CheckLogical.
type BaseRule struct {
	id    string
	desc  string
	kind  Kind
	codes []string
	tags  []string
}

// NewBaseRule returns the metadata for a rule emitting codes.
func NewBaseRule(id, desc string, kind Kind, codes, tags []string) BaseRule {
	return BaseRule{id: id, desc: desc, kind: kind, codes: codes, tags: tags}
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Kind() Kind          { return r.kind }
func (r *BaseRule) Codes() []string     { return r.codes }
func (r *BaseRule) Tags() []string      { return r.tags }

// DefaultEnabled is true. Rules that are off unless asked for override it.
func (r *BaseRule) DefaultEnabled() bool { return true }

// DefaultSeverity is warning when every code is a W code, or there are
// no codes, and error otherwise.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if slices.ContainsFunc(r.codes, func(code string) bool { return !strings.HasPrefix(code, "W") }) {
		return config.SeverityError
	}
	return config.SeverityWarning
}
