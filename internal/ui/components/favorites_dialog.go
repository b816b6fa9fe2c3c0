package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/navigator"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// FavoritesMode represents the dialog mode
type FavoritesMode int

const (
	FavoritesModeList FavoritesMode = iota
	FavoritesModeAdd
	FavoritesModeEdit
)

// SaveFavoriteMsg is sent when the current query should be saved
type SaveFavoriteMsg struct {
	Name        string
	Description string
	Query       string
	Tags        []string
}

// UpdateFavoriteMsg is sent when an edited favorite should be stored
type UpdateFavoriteMsg struct {
	ID          string
	Name        string
	Description string
	Query       string
	Tags        []string
}

// DeleteFavoriteMsg is sent when a favorite should be deleted
type DeleteFavoriteMsg struct {
	ID string
}

// CloseFavoritesDialogMsg is sent when dialog should close
type CloseFavoritesDialogMsg struct{}

const (
	fieldName = iota
	fieldDescription
	fieldTags
	fieldCount
)

// FavoritesDialog lists saved filter queries and saves the current one
type FavoritesDialog struct {
	Width  int
	Height int
	Theme  theme.Theme

	mode      FavoritesMode
	favorites []models.Favorite
	selected  int
	offset    int
	search    *SearchInput
	filter    string

	// Add and edit state
	editID       string
	query        string
	fields       [fieldCount]textinput.Model
	currentField int
}

// NewFavoritesDialog creates a new favorites dialog
func NewFavoritesDialog(th theme.Theme) *FavoritesDialog {
	fd := &FavoritesDialog{
		Width:     70,
		Height:    20,
		Theme:     th,
		mode:      FavoritesModeList,
		favorites: []models.Favorite{},
		search:    NewSearchInput(th),
	}

	placeholders := [fieldCount]string{"Open bugs", "optional", "bugs, triage"}
	for i := range fd.fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		fd.fields[i] = ti
	}
	return fd
}

// Mode returns the current dialog mode
func (fd *FavoritesDialog) Mode() FavoritesMode {
	return fd.mode
}

// SetFavorites updates the favorites list
func (fd *FavoritesDialog) SetFavorites(favorites []models.Favorite) {
	fd.favorites = favorites
	if fd.selected >= len(favorites) {
		fd.selected = max(len(favorites)-1, 0)
	}
	if fd.offset > fd.selected {
		fd.offset = fd.selected
	}
}

// StartAdd switches to the add form for saving query
func (fd *FavoritesDialog) StartAdd(query string) {
	fd.mode = FavoritesModeAdd
	fd.query = query
	fd.currentField = fieldName
	for i := range fd.fields {
		fd.fields[i].SetValue("")
		fd.fields[i].Blur()
	}
	fd.fields[fieldName].Focus()
}

// StartEdit switches to the form prefilled with fav
func (fd *FavoritesDialog) StartEdit(fav models.Favorite) {
	fd.StartAdd(fav.Query)
	fd.mode = FavoritesModeEdit
	fd.editID = fav.ID
	fd.fields[fieldName].SetValue(fav.Name)
	fd.fields[fieldDescription].SetValue(fav.Description)
	fd.fields[fieldTags].SetValue(strings.Join(fav.Tags, ", "))
}

// ShowList switches to the list of favorites and clears the search
func (fd *FavoritesDialog) ShowList() {
	fd.mode = FavoritesModeList
	fd.filter = ""
	fd.search.Reset()
}

// SetFilter records the search the list is showing results for
func (fd *FavoritesDialog) SetFilter(query string) {
	fd.filter = query
	fd.selected = 0
	fd.offset = 0
}

// Searching reports whether the search input has focus
func (fd *FavoritesDialog) Searching() bool {
	return fd.search.Visible
}

// Update handles keyboard input
func (fd *FavoritesDialog) Update(msg tea.KeyMsg) (*FavoritesDialog, tea.Cmd) {
	switch fd.mode {
	case FavoritesModeList:
		return fd.handleListMode(msg)
	case FavoritesModeAdd, FavoritesModeEdit:
		return fd.handleAddMode(msg)
	}
	return fd, nil
}

func (fd *FavoritesDialog) visibleHeight() int {
	return max(fd.Height-8, 1)
}

func (fd *FavoritesDialog) handleListMode(msg tea.KeyMsg) (*FavoritesDialog, tea.Cmd) {
	if fd.search.Visible {
		var cmd tea.Cmd
		fd.search, cmd = fd.search.Update(msg)
		return fd, cmd
	}

	switch msg.String() {
	case "/":
		fd.search.Show()
	case "esc", "q":
		return fd, func() tea.Msg {
			return CloseFavoritesDialogMsg{}
		}
	case "up", "k":
		if fd.selected > 0 {
			fd.selected--
			if fd.selected < fd.offset {
				fd.offset = fd.selected
			}
		}
	case "down", "j":
		if fd.selected < len(fd.favorites)-1 {
			fd.selected++
			if fd.selected >= fd.offset+fd.visibleHeight() {
				fd.offset = fd.selected - fd.visibleHeight() + 1
			}
		}
	case "enter":
		if fd.selected < len(fd.favorites) {
			fav := fd.favorites[fd.selected]
			return fd, func() tea.Msg {
				return navigator.ApplyFavoriteMsg{Favorite: fav}
			}
		}
	case "e":
		if fd.selected < len(fd.favorites) {
			fd.StartEdit(fd.favorites[fd.selected])
		}
	case "d", "x":
		if fd.selected < len(fd.favorites) {
			id := fd.favorites[fd.selected].ID
			return fd, func() tea.Msg {
				return DeleteFavoriteMsg{ID: id}
			}
		}
	}
	return fd, nil
}

func (fd *FavoritesDialog) handleAddMode(msg tea.KeyMsg) (*FavoritesDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fd.mode = FavoritesModeList
		return fd, nil
	case "tab", "down":
		fd.focusField((fd.currentField + 1) % fieldCount)
		return fd, nil
	case "shift+tab", "up":
		fd.focusField((fd.currentField - 1 + fieldCount) % fieldCount)
		return fd, nil
	case "enter":
		if fd.currentField < fieldCount-1 {
			fd.focusField(fd.currentField + 1)
			return fd, nil
		}
		name, description, tags := fd.GetEditData()
		query := fd.query
		if fd.mode == FavoritesModeEdit {
			id := fd.editID
			fd.mode = FavoritesModeList
			return fd, func() tea.Msg {
				return UpdateFavoriteMsg{ID: id, Name: name, Description: description, Query: query, Tags: tags}
			}
		}
		fd.mode = FavoritesModeList
		return fd, func() tea.Msg {
			return SaveFavoriteMsg{Name: name, Description: description, Query: query, Tags: tags}
		}
	}

	var cmd tea.Cmd
	fd.fields[fd.currentField], cmd = fd.fields[fd.currentField].Update(msg)
	return fd, cmd
}

func (fd *FavoritesDialog) focusField(i int) {
	fd.fields[fd.currentField].Blur()
	fd.currentField = i
	fd.fields[i].Focus()
}

// View renders the dialog
func (fd *FavoritesDialog) View() string {
	switch fd.mode {
	case FavoritesModeAdd, FavoritesModeEdit:
		return fd.renderAdd()
	default:
		return fd.renderList()
	}
}

func (fd *FavoritesDialog) header(title, instructions string) []string {
	titleStyle := lipgloss.NewStyle().
		Foreground(fd.Theme.Foreground).
		Background(fd.Theme.Info).
		Padding(0, 1).
		Bold(true)
	instrStyle := lipgloss.NewStyle().
		Foreground(fd.Theme.Muted).
		Padding(0, 1)
	return []string{titleStyle.Render(title), instrStyle.Render(instructions)}
}

func (fd *FavoritesDialog) container(sections []string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fd.Theme.Border).
		Width(fd.Width).
		Padding(1).
		Render(strings.Join(sections, "\n"))
}

func (fd *FavoritesDialog) renderList() string {
	sections := fd.header("Favorite Filters", "↑↓: Navigate  Enter: Apply  e: Edit  /: Search  d: Delete  Esc: Close")

	if fd.search.Visible {
		fd.search.Width = fd.Width - 4
		sections = append(sections, fd.search.View())
	} else if fd.filter != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(fd.Theme.Muted).Padding(0, 1).Render("Search: "+fd.filter))
	}

	if len(fd.favorites) == 0 && fd.filter != "" {
		sections = append(sections, "\nNo favorites match.")
		return fd.container(sections)
	}
	if len(fd.favorites) == 0 {
		sections = append(sections, "\nNo favorites yet. Press ctrl+s to save the current filters.")
		return fd.container(sections)
	}

	sections = append(sections, "")
	end := min(fd.offset+fd.visibleHeight(), len(fd.favorites))
	for i := fd.offset; i < end; i++ {
		fav := fd.favorites[i]

		name := truncate(fav.Name, 40)
		line := name + "\n  " + truncate(fav.Query, 60)
		if len(fav.Tags) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(fav.Tags, ", "))
		}

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == fd.selected {
			style = style.Background(fd.Theme.Selection).Foreground(fd.Theme.Foreground)
		}
		sections = append(sections, style.Render(line))
	}
	return fd.container(sections)
}

func (fd *FavoritesDialog) renderAdd() string {
	title := "Save Favorite"
	if fd.mode == FavoritesModeEdit {
		title = "Edit Favorite"
	}
	sections := fd.header(title, "Tab: Next field  Enter: Save  Esc: Cancel")

	queryStyle := lipgloss.NewStyle().Foreground(fd.Theme.Muted).Padding(0, 1)
	query := fd.query
	if query == "" {
		query = "(no filters)"
	}
	sections = append(sections, "", queryStyle.Render("Query: "+query), "")

	labels := [fieldCount]string{"Name:", "Description:", "Tags (comma separated):"}
	for i, label := range labels {
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == fd.currentField {
			style = style.Background(fd.Theme.Selection).Foreground(fd.Theme.Foreground)
		}
		sections = append(sections, style.Render(label+" "+fd.fields[i].View()))
	}
	return fd.container(sections)
}

// GetEditData returns the current form values
func (fd *FavoritesDialog) GetEditData() (name, description string, tags []string) {
	name = strings.TrimSpace(fd.fields[fieldName].Value())
	description = strings.TrimSpace(fd.fields[fieldDescription].Value())

	for _, part := range strings.Split(fd.fields[fieldTags].Value(), ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return
}

// truncate cuts s to n terminal cells
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}
