package lint

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	ErrDuplicateRule  = errors.New("duplicate rule")
	ErrDuplicateCode  = errors.New("code already claimed by another rule")
	ErrRegistrySealed = errors.New("registry is sealed")
)

// Registry indexes rules by ID and by the codes they emit. Each code
// belongs to exactly one rule. Seal it once populated; a sealed registry
// is read-only and shared between concurrent checks.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byCode map[string]Rule
	sealed bool

	// ordered is the ID-sorted rule list, computed by Seal.
	ordered []Rule
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byCode: make(map[string]Rule),
	}
}

// Register adds rule. Nothing is added when the ID or any of its codes
// is already taken.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	switch {
	case r.sealed:
		return fmt.Errorf("register %s: %w", id, ErrRegistrySealed)
	case r.byID[id] != nil:
		return fmt.Errorf("register %s: %w", id, ErrDuplicateRule)
	}

	for _, code := range rule.Codes() {
		if owner, taken := r.byCode[code]; taken {
			return fmt.Errorf("register %s: %s: %w (%s)", id, code, ErrDuplicateCode, owner.ID())
		}
	}

	r.byID[id] = rule
	for _, code := range rule.Codes() {
		r.byCode[code] = rule
	}
	return nil
}

// Seal freezes the registry. Later Register calls fail.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return
	}
	r.sealed = true
	r.ordered = r.sortedLocked()
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// GetByCode returns the rule that emits code.
func (r *Registry) GetByCode(code string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byCode[code]
	return rule, ok
}

// Resolve accepts a rule ID or a code and returns the owning rule and its
// canonical ID. IDs are tried first.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.byID[key]
	if !ok {
		rule, ok = r.byCode[key]
	}
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns every rule sorted by ID. Dispatch order follows it, so
// diagnostics on one position always come out in the same order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.sealed {
		return slices.Clone(r.ordered)
	}
	return r.sortedLocked()
}

func (r *Registry) sortedLocked() []Rule {
	return slices.SortedFunc(maps.Values(r.byID), func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byID))
}

// Codes returns every code any rule can emit, sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byCode))
}
