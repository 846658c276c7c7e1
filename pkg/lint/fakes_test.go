package lint_test

import "github.com/yaklabco/pystyle/pkg/lint"

// logicalFunc is a logical rule backed by a function.
type logicalFunc struct {
	lint.BaseRule
	fn func(line *lint.LogicalLine) []lint.Problem
}

func (r *logicalFunc) CheckLogical(line *lint.LogicalLine) []lint.Problem {
	return r.fn(line)
}

func newLogicalFunc(id string, codes []string, fn func(line *lint.LogicalLine) []lint.Problem) *logicalFunc {
	return &logicalFunc{
		BaseRule: lint.NewBaseRule(id, "test rule "+id, lint.KindLogical, codes, nil),
		fn:       fn,
	}
}

// physicalFunc is a physical rule backed by a function.
type physicalFunc struct {
	lint.BaseRule
	fn func(line *lint.PhysicalLine) []lint.Problem
}

func (r *physicalFunc) CheckPhysical(line *lint.PhysicalLine) []lint.Problem {
	return r.fn(line)
}

func newPhysicalFunc(id string, codes []string, fn func(line *lint.PhysicalLine) []lint.Problem) *physicalFunc {
	return &physicalFunc{
		BaseRule: lint.NewBaseRule(id, "test rule "+id, lint.KindPhysical, codes, nil),
		fn:       fn,
	}
}

func registryOf(rules ...lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, rule := range rules {
		if err := registry.Register(rule); err != nil {
			panic(err)
		}
	}
	registry.Seal()
	return registry
}
