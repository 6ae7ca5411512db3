package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/services"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/render"
	"github.com/ColinKell02/SeniorDesign-GammaSpec/pkg/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Browse downloaded products interactively",
	Long: `Full-screen browser for the local product archive.

The left pane lists every downloaded product; the right pane previews
its PDS4 label with syntax highlighting.

Keyboard Shortcuts:
  ↑/k, ↓/j    Move through the list
  g / G       Jump to top / bottom
  /           Filter the list
  Enter       Render the spectrum chart and open it
  y           Copy the label path to the clipboard
  Esc         Clear filter
  q           Quit`,
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	labels := allLabels()
	if len(labels) == 0 {
		fmt.Println(ui.FormatWarning("No downloaded products. Run 'gammaspec fetch' first."))
		return nil
	}

	m := newExploreModel(labels, indexedCounts())
	if age, ok := services.IndexAge(appArchive.IndexPath()); ok {
		maxAge := time.Duration(appConfig.IndexMaxAgeHours) * time.Hour
		if maxAge > 0 && age > maxAge {
			m.message = fmt.Sprintf("Spatial index is %s old; run 'gammaspec index'", age.Round(time.Hour))
			m.msgType = ui.StyleWarning
			m.msgTime = time.Now()
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running explorer: %w", err)
	}
	return nil
}

type exploreKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Search key.Binding
	Plot   key.Binding
	Yank   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.Plot, k.Yank, k.Quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.Plot, k.Yank, k.Escape, k.Quit},
	}
}

var exploreKeys = exploreKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Plot:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "plot spectrum")),
	Yank:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// indexedCounts maps label filenames to their spatial index sample counts.
// An absent or unreadable index yields an empty map; the list simply shows
// no counts.
func indexedCounts() map[string]int {
	rows, err := services.LoadIndex(appArchive.IndexPath())
	if err != nil {
		return nil
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Filename]++
	}
	return counts
}

type previewLoadedMsg struct {
	path    string
	content string
}

type statusMsg struct {
	message string
	style   lipgloss.Style
}

type exploreModel struct {
	labels   []string
	filtered []string
	counts   map[string]int
	cursor   int
	offset   int

	searching   bool
	searchInput textinput.Model
	preview     viewport.Model
	previewPath string
	help        help.Model
	keys        exploreKeyMap

	width   int
	height  int
	ready   bool
	message string
	msgTime time.Time
	msgType lipgloss.Style
}

func newExploreModel(labels []string, counts map[string]int) exploreModel {
	search := textinput.New()
	search.Placeholder = "filter products..."
	search.CharLimit = 64

	return exploreModel{
		labels:      labels,
		filtered:    labels,
		counts:      counts,
		searchInput: search,
		help:        help.New(),
		keys:        exploreKeys,
	}
}

func (m exploreModel) Init() tea.Cmd {
	if len(m.filtered) > 0 {
		return loadPreview(m.filtered[0])
	}
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview = viewport.New(m.width/2, m.height-4)
		m.ready = true
		return m, nil

	case previewLoadedMsg:
		m.previewPath = msg.path
		m.preview.SetContent(msg.content)
		m.preview.GotoTop()
		return m, nil

	case statusMsg:
		m.message = msg.message
		m.msgType = msg.style
		m.msgTime = time.Now()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m exploreModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.SetValue("")
		m.applyFilter()
		return m, m.previewCurrent()
	case tea.KeyEnter:
		m.searching = false
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	return m, tea.Batch(cmd, m.previewCurrent())
}

func (m exploreModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.previewCurrent()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, m.previewCurrent()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, m.previewCurrent()

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.filtered) - 1
		return m, m.previewCurrent()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		m.searchInput.SetValue("")
		m.applyFilter()
		return m, m.previewCurrent()

	case key.Matches(msg, m.keys.Yank):
		if path, ok := m.current(); ok {
			return m, yankPath(path)
		}

	case key.Matches(msg, m.keys.Plot):
		if path, ok := m.current(); ok {
			return m, plotProduct(path)
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *exploreModel) applyFilter() {
	query := strings.ToLower(m.searchInput.Value())
	if query == "" {
		m.filtered = m.labels
	} else {
		var out []string
		for _, l := range m.labels {
			if strings.Contains(strings.ToLower(filepath.Base(l)), query) {
				out = append(out, l)
			}
		}
		m.filtered = out
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m exploreModel) current() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return "", false
	}
	return m.filtered[m.cursor], true
}

func (m exploreModel) previewCurrent() tea.Cmd {
	path, ok := m.current()
	if !ok || path == m.previewPath {
		return nil
	}
	return loadPreview(path)
}

func loadPreview(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return previewLoadedMsg{path: path, content: "Error loading preview: " + err.Error()}
		}
		return previewLoadedMsg{path: path, content: highlightLabel(string(data))}
	}
}

func yankPath(path string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(path); err != nil {
			return statusMsg{message: "Clipboard unavailable: " + err.Error(), style: ui.StyleError}
		}
		return statusMsg{message: "Copied " + filepath.Base(path), style: ui.StyleSuccess}
	}
}

func plotProduct(labelPath string) tea.Cmd {
	return func() tea.Msg {
		product, err := productParser.Parse(labelPath)
		if err != nil {
			return statusMsg{message: "Parse failed: " + err.Error(), style: ui.StyleError}
		}
		counts := product.TotalSpectrum()
		if counts == nil {
			return statusMsg{message: "No spectrum data in product", style: ui.StyleWarning}
		}

		stem := strings.TrimSuffix(filepath.Base(labelPath), filepath.Ext(labelPath))
		outPath := appArchive.PlotPath(stem + ".html")
		f, err := os.Create(outPath)
		if err != nil {
			return statusMsg{message: "Write failed: " + err.Error(), style: ui.StyleError}
		}
		defer f.Close()

		subtitle := fmt.Sprintf("all %d records", product.Records())
		if err := render.RenderSpectrum(f, filepath.Base(labelPath), subtitle, counts); err != nil {
			return statusMsg{message: "Render failed: " + err.Error(), style: ui.StyleError}
		}
		if err := OpenFile(outPath); err != nil {
			return statusMsg{message: "Chart written to " + outPath, style: ui.StyleInfo}
		}
		return statusMsg{message: "Opened " + filepath.Base(outPath), style: ui.StyleSuccess}
	}
}

// highlightLabel applies syntax highlighting to PDS4 label XML
func highlightLabel(content string) string {
	lexer := lexers.Get("xml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}

func (m exploreModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	listWidth := m.width - m.preview.Width - 3
	visible := m.height - 4

	// Keep the cursor inside the visible window.
	offset := m.offset
	if m.cursor < offset {
		offset = m.cursor
	}
	if m.cursor >= offset+visible {
		offset = m.cursor - visible + 1
	}

	var list strings.Builder
	if m.searching || m.searchInput.Value() != "" {
		list.WriteString(m.searchInput.View())
	} else {
		list.WriteString(ui.FormatTitle(fmt.Sprintf("Products (%d)", len(m.filtered))))
	}
	list.WriteString("\n")

	end := offset + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := offset; i < end; i++ {
		name := filepath.Base(m.filtered[i])
		suffix := ""
		if n := m.counts[name]; n > 0 {
			suffix = fmt.Sprintf(" (%d)", n)
		}
		if fit := listWidth - 2 - len(suffix); len(name) > fit {
			if fit < 0 {
				fit = 0
			}
			name = name[:fit]
		}
		if i == m.cursor {
			list.WriteString(ui.StylePrimary.Render("> " + name + suffix))
		} else {
			list.WriteString("  " + name + ui.FormatMuted(suffix))
		}
		list.WriteString("\n")
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list.String()),
		" │ ",
		m.preview.View(),
	)

	status := m.help.View(m.keys)
	if m.message != "" && time.Since(m.msgTime) < 4*time.Second {
		status = m.msgType.Render(m.message)
	}

	return panes + "\n" + status
}
