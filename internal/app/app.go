package app

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/favorites"
	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/history"
	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/navigator"
	"github.com/rebeliceyang/lazyfilter/internal/ui/components"
	"github.com/rebeliceyang/lazyfilter/internal/ui/help"
	"github.com/rebeliceyang/lazyfilter/internal/ui/templates"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme

	bar        *navigator.Bar
	filterBar  *components.FilterBar
	queryPanel components.Panel

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay

	favoritesDialog *components.FavoritesDialog
	favorites       *favorites.Manager
	history         *history.Store
	copyToClipboard func(string) error
}

// Options are the optional collaborators of the App
type Options struct {
	// Favorites stores saved queries; nil disables favorites
	Favorites *favorites.Manager
	// History records applied queries; nil disables history
	History *history.Store
	// Query is restored into the bar on startup
	Query string
	// Templates overrides the built-in chip templates
	Templates *templates.Set
	// Clipboard overrides the system clipboard writer
	Clipboard func(string) error
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// QueryAppliedMsg is sent after the bar's query has been applied
type QueryAppliedMsg struct {
	Query  string
	Params models.Query
	Source string
}

// ConfigReloadedMsg is sent when the config file changed on disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// New creates a new App instance with config
func New(cfg *config.Config, opts Options) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	a := &App{
		state:           models.NewAppState(),
		config:          cfg,
		theme:           th,
		errorOverlay:    components.NewErrorOverlay(th),
		favoritesDialog: components.NewFavoritesDialog(th),
		favorites:       opts.Favorites,
		history:         opts.History,
		copyToClipboard: opts.Clipboard,
		queryPanel: components.Panel{
			Title: "Query",
			Theme: th,
		},
	}
	if a.copyToClipboard == nil {
		a.copyToClipboard = clipboard.WriteAll
	}

	var barOpts []navigator.Option
	if a.favorites != nil {
		barOpts = append(barOpts, navigator.WithFavorites(a.favorites))
	}
	filters, err := cfg.BuildFilters()
	if err != nil {
		slog.Error("configured filters", "error", err)
		a.ShowError("Invalid filters", err.Error()+"\nUsing the default filters.")
		filters, _ = config.GetDefaults().BuildFilters()
	}
	a.bar = navigator.NewBar(models.NewCollection(filters...), navigator.DefaultRegistry(), barOpts...)

	set := opts.Templates
	if set == nil {
		set = templates.Default(th)
	}
	fb, err := components.NewFilterBar(a.bar, set, th)
	if err != nil {
		slog.Error("filter bar templates", "error", err)
		a.ShowError("Template error", err.Error())
	} else {
		a.filterBar = fb
	}

	if opts.Query != "" {
		a.restoreQuery(opts.Query)
	}

	a.updatePanelDimensions()
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Bar returns the filter bar model
func (a *App) Bar() *navigator.Bar {
	return a.bar
}

// LastApplied returns the last applied query string
func (a *App) LastApplied() string {
	return a.state.LastApplied
}

// Close releases the bar's subscriptions
func (a *App) Close() {
	a.bar.Close()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.filterBar != nil && !a.showError && a.state.ViewMode == models.NormalMode {
			a.filterBar.HandleMouseClick(msg)
		}
		return a, nil

	case navigator.ApplyFavoriteMsg:
		return a, a.applyFavorite(msg.Favorite)

	case components.SaveFavoriteMsg:
		a.saveFavorite(msg)
		return a, nil

	case components.UpdateFavoriteMsg:
		a.updateFavorite(msg)
		return a, nil

	case components.DeleteFavoriteMsg:
		if a.favorites == nil {
			return a, nil
		}
		if err := a.favorites.Delete(msg.ID); err != nil {
			a.ShowError("Delete favorite failed", err.Error())
			return a, nil
		}
		a.favoritesDialog.SetFavorites(a.favorites.List())
		return a, nil

	case components.CloseFavoritesDialogMsg:
		a.state.ViewMode = models.NormalMode
		return a, nil

	case components.SearchInputMsg:
		if a.favorites != nil {
			a.favoritesDialog.SetFavorites(a.favorites.Search(msg.Query))
			a.favoritesDialog.SetFilter(msg.Query)
		}
		return a, nil

	case components.CloseSearchMsg:
		if a.favorites != nil {
			a.favoritesDialog.SetFavorites(a.favorites.List())
			a.favoritesDialog.SetFilter("")
		}
		return a, nil

	case QueryAppliedMsg:
		slog.Info("query applied", "query", msg.Query, "params", len(msg.Params), "source", msg.Source)
		return a, nil

	case ConfigReloadedMsg:
		a.applyConfig(msg.Config)
		return a, nil

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Handle error overlay dismissal first if visible
	if a.showError {
		switch key {
		case "esc", "enter":
			a.DismissError()
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		if key == "?" || key == "esc" || key == "q" {
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	case models.FavoritesMode:
		var cmd tea.Cmd
		a.favoritesDialog, cmd = a.favoritesDialog.Update(msg)
		return a, cmd
	}

	if a.filterBar == nil {
		if key == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	// An open popover gets every key
	if a.bar.DetailsShown() {
		_, cmd := a.filterBar.HandleKey(msg)
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.state.ViewMode = models.HelpMode
		return a, nil
	case "a":
		return a, a.applyQuery(history.SourceBar)
	case "y":
		a.copyQuery()
		return a, nil
	case "ctrl+s":
		if a.favorites == nil {
			a.state.StatusLine = "Favorites are disabled"
			return a, nil
		}
		a.favoritesDialog.StartAdd(a.bar.Query())
		a.state.ViewMode = models.FavoritesMode
		return a, nil
	case "f":
		if a.favorites == nil {
			a.state.StatusLine = "Favorites are disabled"
			return a, nil
		}
		a.favoritesDialog.SetFavorites(a.favorites.List())
		a.favoritesDialog.ShowList()
		a.state.ViewMode = models.FavoritesMode
		return a, nil
	}

	_, cmd := a.filterBar.HandleKey(msg)
	return a, cmd
}

// Apply applies the bar's current query outside the event loop and returns it
func (a *App) Apply(source string) string {
	a.applyQuery(source)
	return a.state.LastApplied
}

// applyQuery records the bar's current query and emits QueryAppliedMsg
func (a *App) applyQuery(source string) tea.Cmd {
	params := a.bar.Params()
	query := filter.Encode(params)

	if a.history != nil {
		err := a.history.Add(history.HistoryEntry{Query: query, Source: source, ParamCount: len(params)})
		if err != nil {
			slog.Warn("failed to record history", "error", err)
		}
	}

	a.state.LastApplied = query
	a.state.StatusLine = fmt.Sprintf("Applied %d parameter(s)", len(params))

	return func() tea.Msg {
		return QueryAppliedMsg{Query: query, Params: params, Source: source}
	}
}

func (a *App) copyQuery() {
	query := a.bar.Query()
	if err := a.copyToClipboard(query); err != nil {
		a.ShowError("Copy failed", err.Error())
		return
	}
	a.state.StatusLine = "Query copied to clipboard"
}

// restoreQuery parses raw and restores it into the bar
func (a *App) restoreQuery(raw string) bool {
	q, err := filter.ParseQuery(raw)
	if err != nil {
		a.ShowError("Invalid query", err.Error())
		return false
	}
	a.bar.RestoreFromQuery(q)
	return true
}

func (a *App) applyFavorite(fav models.Favorite) tea.Cmd {
	a.state.ViewMode = models.NormalMode
	if !a.restoreQuery(fav.Query) {
		return nil
	}

	if a.favorites != nil {
		if err := a.favorites.RecordUsage(fav.ID); err != nil {
			slog.Warn("failed to record favorite usage", "favorite", fav.ID, "error", err)
		}
	}
	return a.applyQuery(history.SourceFavorite)
}

func (a *App) saveFavorite(msg components.SaveFavoriteMsg) {
	if a.favorites == nil {
		return
	}
	fav, err := a.favorites.Add(msg.Name, msg.Description, msg.Query, msg.Tags)
	if err != nil {
		a.ShowError("Save favorite failed", err.Error())
		return
	}
	a.favoritesDialog.SetFavorites(a.favorites.List())
	a.state.ViewMode = models.NormalMode
	a.state.StatusLine = fmt.Sprintf("Saved favorite %q", fav.Name)
}

func (a *App) updateFavorite(msg components.UpdateFavoriteMsg) {
	if a.favorites == nil {
		return
	}
	if err := a.favorites.Update(msg.ID, msg.Name, msg.Description, msg.Query, msg.Tags); err != nil {
		a.ShowError("Update favorite failed", err.Error())
		return
	}
	a.favoritesDialog.SetFavorites(a.favorites.List())
	a.state.StatusLine = fmt.Sprintf("Updated favorite %q", msg.Name)
}

func (a *App) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.config = cfg
	a.theme = theme.GetTheme(cfg.UI.Theme)
	a.errorOverlay.Theme = a.theme
	a.favoritesDialog.Theme = a.theme
	a.queryPanel.Theme = a.theme

	if a.filterBar != nil {
		if err := a.filterBar.SetTemplates(templates.Default(a.theme), a.theme); err != nil {
			a.ShowError("Template error", err.Error())
			return
		}
	}
	// the filter list itself is only read at startup
	a.state.StatusLine = "Configuration reloaded"
}

// View implements tea.Model
func (a *App) View() string {
	// If error overlay is showing, render it centered on top of everything
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		bindings := components.DefaultFilterBarKeyMap().Bindings()
		if a.filterBar != nil {
			bindings = a.filterBar.Keys.Bindings()
		}
		return help.Render(a.state.Width, a.state.Height, a.theme, bindings)
	case models.FavoritesMode:
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.favoritesDialog.View(),
		)
	}

	return zone.Scan(a.renderNormalView())
}

// renderNormalView renders the normal application view
func (a *App) renderNormalView() string {
	favCount := 0
	if a.favorites != nil {
		favCount = len(a.favorites.List())
	}
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(a.formatStatusBar("lazyfilter", fmt.Sprintf("★ %d", favCount)))

	bottomLeft := ""
	if a.config.UI.ShowHelpBar {
		bottomLeft = "[a] Apply | [y] Copy | [ctrl+s] Save | [f] Favorites | [?] Help | [q] Quit"
	}
	if a.state.StatusLine != "" {
		bottomLeft = a.state.StatusLine
	}
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, fmt.Sprintf("%d active", a.bar.ActiveCount())))

	barView := ""
	if a.filterBar != nil {
		a.filterBar.Width = a.state.Width
		barView = a.filterBar.View()
	}

	a.state.Query = a.bar.Query()
	a.queryPanel.Content = a.state.Query
	if a.queryPanel.Content == "" {
		a.queryPanel.Content = lipgloss.NewStyle().Foreground(a.theme.Muted).Render("(no filters)")
	}
	a.queryPanel.Footer = ""
	if a.state.LastApplied != "" {
		a.queryPanel.Footer = "Last applied: " + a.state.LastApplied
	}
	a.queryPanel.Height = max(a.state.Height-lipgloss.Height(barView)-4, 3)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		barView,
		a.queryPanel.View(),
		bottomBar,
	)
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}
	// Borders take 2 columns
	a.queryPanel.Width = max(a.state.Width-2, 20)
	a.favoritesDialog.Width = min(70, max(a.state.Width-6, 30))
	a.errorOverlay.Width = min(60, max(a.state.Width-6, 30))
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := max(a.state.Width-4, 0)

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	if leftLen+rightLen > availableWidth {
		return left
	}

	spacing := availableWidth - leftLen - rightLen
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
