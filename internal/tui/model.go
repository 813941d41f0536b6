// Package tui is a terminal browser for assembled clips.
package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"narrative-assembly/models"
	"narrative-assembly/services"
)

const searchTimeout = 15 * time.Second

// SearchPort is the TUI-facing subset of the search service.
type SearchPort interface {
	Search(ctx context.Context, query string, maxClips int) (*models.SearchResult, error)
}

type searchDoneMsg struct {
	result *models.SearchResult
	err    error
}

// Model is the Bubble Tea model for the clip browser.
type Model struct {
	service  SearchPort
	maxClips int
	input    textinput.Model
	viewport viewport.Model
	topics   []models.TrendingTopic
	topicIdx int
	result   *models.SearchResult
	summary  string
	status   string
	cursor   int
	ready    bool
	loading  bool
}

// New creates a browser. topics seed the ctrl+t suggestion cycle and may be empty.
func New(service SearchPort, maxClips int, topics []models.TrendingTopic, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a topic and press Enter"
	ti.Focus()
	ti.CharLimit = 200
	vp := viewport.New(0, 0)

	status := "Type a topic to assemble clips."
	if len(topics) > 0 {
		status += " ctrl+t cycles trending topics."
	}
	return Model{
		service:  service,
		maxClips: maxClips,
		input:    ti,
		viewport: vp,
		topics:   topics,
		topicIdx: -1,
		summary:  summary,
		status:   status,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) search(query string) tea.Cmd {
	service, maxClips := m.service, m.maxClips
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		res, err := service.Search(ctx, query, maxClips)
		return searchDoneMsg{result: res, err: err}
	}
}

// Update handles key, window and search completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + 1 + qh + 1 // header, summary, keywords; status; spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.renderCurrentClip())
		return m, nil

	case searchDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.result = nil
		} else {
			m.result = msg.result
			m.cursor = 0
			m.status = fmt.Sprintf("%d clips for %q in %dms", len(msg.result.Clips), msg.result.Query, msg.result.SearchTimeMs)
		}
		m.viewport.SetContent(m.renderCurrentClip())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.loading {
				return m, nil
			}
			m.loading = true
			m.status = fmt.Sprintf("Searching for %q...", q)
			return m, m.search(q)
		case "ctrl+t":
			if len(m.topics) > 0 {
				m.topicIdx = (m.topicIdx + 1) % len(m.topics)
				m.input.SetValue(m.topics[m.topicIdx].ExtractedTopic)
				m.input.CursorEnd()
				m.status = m.topics[m.topicIdx].Title
			}
			return m, nil
		case "down":
			if n := m.clipCount(); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderCurrentClip())
				return m, nil
			}
		case "up":
			if n := m.clipCount(); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderCurrentClip())
				return m, nil
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the selected clip.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Narrative Assembly")
	summary := dimStyle.Render(m.summary)
	keywords := m.renderKeywords()
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + keywords + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) clipCount() int {
	if m.result == nil {
		return 0
	}
	return len(m.result.Clips)
}

func (m Model) renderKeywords() string {
	if m.result == nil || len(m.result.ExpandedKeywords) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.result.ExpandedKeywords))
	for _, kw := range m.result.ExpandedKeywords {
		parts = append(parts, categoryStyle(kw.Category).Render(kw.Term))
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderCurrentClip() string {
	if m.clipCount() == 0 {
		if m.result != nil {
			return "No clips matched."
		}
		return "No results yet."
	}
	c := m.result.Clips[m.cursor]
	title := fmt.Sprintf("Clip %d/%d  score=%.2f", m.cursor+1, len(m.result.Clips), c.Score)
	meta := dimStyle.Render(fmt.Sprintf("%s (%s)  %s - %s",
		c.VideoTitle, c.PublishedAt, services.Timecode(c.StartTime), services.Timecode(c.EndTime)))
	link := dimStyle.Render(services.ClipURL(c))
	return title + "\n" + meta + "\n\n" + highlightKeywords(c.Text, c.MatchedKeywords) + "\n\n" + link
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	categoryColors = map[models.KeywordCategory]lipgloss.Color{
		models.CategoryPrimary:       lipgloss.Color("15"),
		models.CategoryMorphological: lipgloss.Color("12"),
		models.CategorySynonym:       lipgloss.Color("13"),
		models.CategoryCoOccurring:   lipgloss.Color("6"),
	}
)

func categoryStyle(c models.KeywordCategory) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(categoryColors[c])
}

// highlightKeywords marks whole-word, case-insensitive occurrences of the matched terms.
func highlightKeywords(text string, terms []string) string {
	if len(terms) == 0 {
		return text
	}
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		return text
	}
	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(s string) string {
		return highlightStyle.Render(s)
	})
}
