package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/favorites"
	"github.com/rebeliceyang/lazyfilter/internal/history"
	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/navigator"
	"github.com/rebeliceyang/lazyfilter/internal/ui/components"
	"github.com/rebeliceyang/lazyfilter/internal/ui/templates"
)

func init() {
	zone.NewGlobal()
}

type fixture struct {
	app       *App
	favorites *favorites.Manager
	history   *history.Store
	copied    []string
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{}

	fm, err := favorites.NewManager(t.TempDir())
	require.NoError(t, err)
	hs, err := history.NewStore(":memory:", 100)
	require.NoError(t, err)
	t.Cleanup(func() { _ = hs.Close() })

	f.favorites = fm
	f.history = hs
	opts.Favorites = fm
	opts.History = hs
	opts.Clipboard = func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}

	f.app = New(config.GetDefaults(), opts)
	t.Cleanup(f.app.Close)
	return f
}

func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = a.Update(msg)
	}
	return cmd
}

func TestApply_RecordsHistory(t *testing.T) {
	f := newFixture(t, Options{})
	f.app.Bar().View("q").Model().SetValue("crash")

	cmd := press(f.app, "a")
	require.NotNil(t, cmd)

	msg, ok := cmd().(QueryAppliedMsg)
	require.True(t, ok)
	assert.Equal(t, "q=crash", msg.Query)
	assert.Equal(t, history.SourceBar, msg.Source)
	assert.Equal(t, "q=crash", f.app.LastApplied())

	entries, err := f.history.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "q=crash", entries[0].Query)
	assert.Equal(t, 1, entries[0].ParamCount)
}

func TestCopyQuery(t *testing.T) {
	f := newFixture(t, Options{Query: "statuses=OPEN"})

	press(f.app, "y")
	assert.Equal(t, []string{"statuses=OPEN"}, f.copied)
}

func TestCopyQuery_Error(t *testing.T) {
	f := newFixture(t, Options{})
	f.app.copyToClipboard = func(string) error { return errors.New("no clipboard") }

	press(f.app, "y")
	assert.True(t, f.app.showError)
	assert.Equal(t, "Copy failed", f.app.errorOverlay.Title())

	press(f.app, "esc")
	assert.False(t, f.app.showError)
}

func TestInitialQuery_Malformed(t *testing.T) {
	f := newFixture(t, Options{Query: "q=%zz"})

	assert.True(t, f.app.showError)
	assert.Equal(t, "Invalid query", f.app.errorOverlay.Title())
	assert.Nil(t, f.app.Bar().View("q").Model().Value())
}

func TestSaveFavorite(t *testing.T) {
	f := newFixture(t, Options{Query: "statuses=OPEN"})

	press(f.app, "ctrl+s")
	require.Equal(t, models.FavoritesMode, f.app.state.ViewMode)

	press(f.app, "Open bugs", "enter", "enter")
	cmd := press(f.app, "enter")
	require.NotNil(t, cmd)

	f.app.Update(cmd())
	list := f.favorites.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Open bugs", list[0].Name)
	assert.Equal(t, "statuses=OPEN", list[0].Query)
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
}

func TestApplyFavorite(t *testing.T) {
	f := newFixture(t, Options{})
	fav, err := f.favorites.Add("Crashes", "", "q=crash&createdAfter=2024-01-01", nil)
	require.NoError(t, err)

	_, cmd := f.app.Update(navigator.ApplyFavoriteMsg{Favorite: *fav})
	require.NotNil(t, cmd)
	msg := cmd().(QueryAppliedMsg)

	assert.Equal(t, history.SourceFavorite, msg.Source)
	assert.Equal(t, "crash", f.app.Bar().View("q").Model().Value())
	assert.Equal(t, models.RangeValue{"createdAfter": "2024-01-01"}, f.app.Bar().View("createdAfter:createdBefore").Model().Value())

	stored, err := f.favorites.Get(fav.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestApplyFavorite_Malformed(t *testing.T) {
	f := newFixture(t, Options{})

	_, cmd := f.app.Update(navigator.ApplyFavoriteMsg{Favorite: models.Favorite{ID: "x", Query: "q=%zz"}})
	assert.Nil(t, cmd)
	assert.True(t, f.app.showError)
}

func TestDeleteFavorite_NotFound(t *testing.T) {
	f := newFixture(t, Options{})

	f.app.Update(components.DeleteFavoriteMsg{ID: "missing"})
	assert.True(t, f.app.showError)
}

func TestPopoverGetsKeys(t *testing.T) {
	f := newFixture(t, Options{})
	bar := f.app.Bar()

	// cursor starts on the favorites chip; move to the text filter
	press(f.app, "l", "enter")
	require.True(t, bar.DetailsShown())

	// "q" is typed into the popover instead of quitting
	cmd := press(f.app, "q")
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit)
	}
	press(f.app, "enter", "esc")
	assert.Equal(t, "q", bar.View("q").Model().Value())
	assert.False(t, bar.DetailsShown())
}

func TestQuitKeys(t *testing.T) {
	f := newFixture(t, Options{})

	cmd := press(f.app, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	cmd = press(f.app, "ctrl+c")
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHelpMode(t *testing.T) {
	f := newFixture(t, Options{})

	press(f.app, "?")
	assert.Equal(t, models.HelpMode, f.app.state.ViewMode)
	assert.Contains(t, f.app.View(), "Filter bar")

	press(f.app, "esc")
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
}

func TestUnknownTemplate_ShowsError(t *testing.T) {
	f := newFixture(t, Options{Templates: templates.New()})

	assert.True(t, f.app.showError)
	assert.Contains(t, f.app.errorOverlay.Message(), "unknown template")
	assert.NotPanics(t, func() { _ = f.app.View() })

	cmd := press(f.app, "esc", "q")
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestConfigReload(t *testing.T) {
	f := newFixture(t, Options{})
	cfg := config.GetDefaults()
	cfg.UI.Theme = "catppuccin-mocha"

	f.app.Update(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, "catppuccin-mocha", f.app.theme.Name)
	assert.Equal(t, "Configuration reloaded", f.app.state.StatusLine)
}

func TestView_ShowsQuery(t *testing.T) {
	f := newFixture(t, Options{Query: "q=crash"})
	f.app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	view := f.app.View()
	assert.Contains(t, view, "q=crash")
	assert.Contains(t, view, "lazyfilter")
}

func TestFavoritesSearch(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.favorites.Add("Open bugs", "", "statuses=OPEN", []string{"triage"})
	require.NoError(t, err)
	_, err = f.favorites.Add("Crashes", "", "q=crash", nil)
	require.NoError(t, err)

	press(f.app, "f", "/")
	require.True(t, f.app.favoritesDialog.Searching())

	press(f.app, "c", "r", "a", "s", "h")
	cmd := press(f.app, "enter")
	require.NotNil(t, cmd)
	f.app.Update(cmd())

	view := f.app.View()
	assert.Contains(t, view, "Crashes")
	assert.NotContains(t, view, "Open bugs")

	// esc inside the search restores the full list and keeps the dialog open
	press(f.app, "/")
	cmd = press(f.app, "esc")
	require.NotNil(t, cmd)
	f.app.Update(cmd())
	assert.Contains(t, f.app.View(), "Open bugs")
	assert.Equal(t, models.FavoritesMode, f.app.state.ViewMode)
}

func TestApply_OutsideEventLoop(t *testing.T) {
	f := newFixture(t, Options{Query: "statuses=OPEN&unknown=1&createdBefore=2024-12-31"})

	got := f.app.Apply(history.SourceCLI)
	assert.Equal(t, "statuses=OPEN&createdBefore=2024-12-31", got)

	entries, err := f.history.GetRecent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, history.SourceCLI, entries[0].Source)
	assert.Equal(t, 2, entries[0].ParamCount)
}

func TestEditFavorite(t *testing.T) {
	f := newFixture(t, Options{})
	fav, err := f.favorites.Add("Crashes", "", "q=crash", nil)
	require.NoError(t, err)

	press(f.app, "f", "e", "s", "enter", "enter")
	cmd := press(f.app, "enter")
	require.NotNil(t, cmd)
	f.app.Update(cmd())

	stored, err := f.favorites.Get(fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crashess", stored.Name)
	assert.Equal(t, "q=crash", stored.Query)
	assert.Equal(t, models.FavoritesMode, f.app.state.ViewMode)
	assert.Equal(t, `Updated favorite "Crashess"`, f.app.state.StatusLine)
}

func TestInvalidFilters_FallBackToDefaults(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.Filters = []config.FilterConfig{
		{Name: "Text", Property: "q", Enabled: true},
		{Name: "Query", Property: "q", Enabled: true},
	}

	a := New(cfg, Options{Clipboard: func(string) error { return nil }})
	t.Cleanup(a.Close)

	assert.True(t, a.showError)
	assert.Equal(t, "Invalid filters", a.errorOverlay.Title())
	assert.NotNil(t, a.Bar().View("statuses"))
}

func TestStatusBar_CountsQueryChips(t *testing.T) {
	f := newFixture(t, Options{})
	f.app.Update(tea.WindowSizeMsg{Width: 160, Height: 30})

	// default bar: text, status, assignee, created enabled; favorites and more criteria are not counted
	assert.Equal(t, 4, f.app.Bar().ActiveCount())
	assert.Contains(t, f.app.View(), "4 active")
}
