// Package registry tracks logical window names and resolves them to live
// window handles for the animation engine.
package registry

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/1broseidon/glide/internal/animation"
	"github.com/1broseidon/glide/internal/config"
	"github.com/1broseidon/glide/internal/platform"
)

// Source supplies the current window population and handles for animating
// them. The Linux implementation is the X11 backend; tests use fakes.
type Source interface {
	ListWindows() ([]platform.Window, error)
	Handle(id platform.WindowID) animation.Handle
}

// Registry maps configured window names to handles. Refresh rescans the
// source; between refreshes lookups serve the last snapshot.
type Registry struct {
	source Source
	logger *slog.Logger

	mu     sync.RWMutex
	rules  []config.WindowRule
	byName map[string]animation.Handle
}

// New creates a registry with the given matching rules.
func New(source Source, rules []config.WindowRule, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		source: source,
		logger: logger,
		rules:  rules,
		byName: make(map[string]animation.Handle),
	}
}

// SetRules replaces the matching rules. Takes effect on the next Refresh.
func (r *Registry) SetRules(rules []config.WindowRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = rules
}

// Refresh rescans the source and rebuilds the name table. Each rule claims
// the first unclaimed window it matches, in declaration order; windows that
// vanished simply drop out of the table.
func (r *Registry) Refresh() error {
	windows, err := r.source.ListWindows()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	claimed := make(map[platform.WindowID]bool, len(windows))
	byName := make(map[string]animation.Handle, len(r.rules))

	for _, rule := range r.rules {
		for _, w := range windows {
			if claimed[w.ID] || !ruleMatches(rule, w) {
				continue
			}
			claimed[w.ID] = true
			byName[rule.Name] = r.source.Handle(w.ID)
			break
		}
	}

	if len(byName) != len(r.byName) {
		r.logger.Debug("registry refreshed", "tracked", len(byName), "windows", len(windows))
	}
	r.byName = byName
	return nil
}

// Lookup resolves a logical window name. Implements animation.Lookup.
func (r *Registry) Lookup(name string) (animation.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byName[name]
	return h, ok
}

// OrderedNames returns the currently tracked names in rule declaration order.
// Used as the default window order for grid layouts.
func (r *Registry) OrderedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for _, rule := range r.rules {
		if _, ok := r.byName[rule.Name]; ok {
			names = append(names, rule.Name)
		}
	}
	return names
}

// Count returns the number of tracked windows.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

func ruleMatches(rule config.WindowRule, w platform.Window) bool {
	if rule.Class == "" && rule.TitleContains == "" {
		return false
	}
	if rule.Class != "" && !strings.EqualFold(rule.Class, w.AppID) {
		return false
	}
	if rule.TitleContains != "" && !strings.Contains(w.Title, rule.TitleContains) {
		return false
	}
	return true
}
