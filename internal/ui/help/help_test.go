package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

func TestFromBindings_SkipsDisabled(t *testing.T) {
	enabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove filter"))
	disabled := key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more criteria"), key.WithDisabled())

	keys := FromBindings([]key.Binding{enabled, disabled})
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(keys))
	}
	if keys[0].Key != "x" || keys[0].Description != "remove filter" {
		t.Errorf("unexpected key %+v", keys[0])
	}
}

func TestRender(t *testing.T) {
	bar := []key.Binding{key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove filter"))}

	view := Render(100, 40, theme.DefaultTheme(), bar)
	for _, want := range []string{"Global", "Filter bar", "remove filter", "Details"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}
