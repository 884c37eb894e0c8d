package registry

import (
	"fmt"
	"testing"

	"github.com/1broseidon/glide/internal/animation"
	"github.com/1broseidon/glide/internal/config"
	"github.com/1broseidon/glide/internal/platform"
)

type fakeHandle struct {
	id platform.WindowID
}

func (h *fakeHandle) ID() platform.WindowID { return h.id }

func (h *fakeHandle) Bounds() platform.Rect { return platform.Rect{} }

func (h *fakeHandle) SetBounds(platform.Rect) {}

func (h *fakeHandle) Opacity() float64 { return 1 }

func (h *fakeHandle) SetOpacity(float64) {}

func (h *fakeHandle) Destroyed() bool { return false }

type fakeSource struct {
	windows []platform.Window
	err     error
}

func (s *fakeSource) ListWindows() ([]platform.Window, error) {
	return s.windows, s.err
}

func (s *fakeSource) Handle(id platform.WindowID) animation.Handle {
	return &fakeHandle{id: id}
}

func TestRefresh_MatchesRulesInOrder(t *testing.T) {
	source := &fakeSource{windows: []platform.Window{
		{ID: 1, AppID: "Alacritty", Title: "zsh"},
		{ID: 2, AppID: "Code", Title: "main.go - project"},
		{ID: 3, AppID: "firefox", Title: "docs"},
	}}
	rules := []config.WindowRule{
		{Name: "editor", Class: "code"},
		{Name: "terminal", Class: "Alacritty"},
		{Name: "notes", Class: "obsidian"},
	}

	r := New(source, rules, nil)
	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if r.Count() != 2 {
		t.Fatalf("expected 2 tracked windows, got %d", r.Count())
	}
	h, ok := r.Lookup("editor")
	if !ok || h.ID() != 2 {
		t.Fatalf("expected editor -> window 2, got %v %v", h, ok)
	}
	if _, ok := r.Lookup("notes"); ok {
		t.Fatalf("expected no match for notes")
	}

	names := r.OrderedNames()
	if len(names) != 2 || names[0] != "editor" || names[1] != "terminal" {
		t.Fatalf("unexpected ordered names: %v", names)
	}
}

func TestRefresh_TitleContainsAndClaiming(t *testing.T) {
	source := &fakeSource{windows: []platform.Window{
		{ID: 1, AppID: "Alacritty", Title: "work: vim"},
		{ID: 2, AppID: "Alacritty", Title: "scratch"},
	}}
	rules := []config.WindowRule{
		{Name: "work", Class: "alacritty", TitleContains: "work"},
		{Name: "other", Class: "alacritty"},
	}

	r := New(source, rules, nil)
	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	work, _ := r.Lookup("work")
	other, _ := r.Lookup("other")
	if work == nil || other == nil {
		t.Fatalf("expected both rules matched")
	}
	if work.ID() != 1 || other.ID() != 2 {
		t.Fatalf("claiming wrong: work=%d other=%d", work.ID(), other.ID())
	}
}

func TestRefresh_DropsVanishedWindows(t *testing.T) {
	source := &fakeSource{windows: []platform.Window{{ID: 1, AppID: "Code"}}}
	r := New(source, []config.WindowRule{{Name: "editor", Class: "Code"}}, nil)

	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if r.Count() != 1 {
		t.Fatalf("expected one tracked window")
	}

	source.windows = nil
	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("expected vanished window to be dropped")
	}
}

func TestRefresh_SourceErrorKeepsSnapshot(t *testing.T) {
	source := &fakeSource{windows: []platform.Window{{ID: 1, AppID: "Code"}}}
	r := New(source, []config.WindowRule{{Name: "editor", Class: "Code"}}, nil)
	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	source.err = fmt.Errorf("connection lost")
	if err := r.Refresh(); err == nil {
		t.Fatalf("expected refresh error")
	}
	if _, ok := r.Lookup("editor"); !ok {
		t.Fatalf("expected previous snapshot to survive a failed refresh")
	}
}

func TestSetRules_AppliesOnNextRefresh(t *testing.T) {
	source := &fakeSource{windows: []platform.Window{{ID: 1, AppID: "firefox"}}}
	r := New(source, []config.WindowRule{{Name: "editor", Class: "Code"}}, nil)
	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("expected no matches with initial rules")
	}

	r.SetRules([]config.WindowRule{{Name: "browser", Class: "Firefox"}})
	if err := r.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if h, ok := r.Lookup("browser"); !ok || h.ID() != 1 {
		t.Fatalf("expected browser to match after rule swap")
	}
}
