// Package tui is the interactive terminal chat for the assistant.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hibafl/filmo/assistant"
	"github.com/hibafl/filmo/presenter"
)

// Model is the Bubble Tea model for the chat application.
type Model struct {
	assistant *assistant.Assistant
	presenter *presenter.Presenter
	speaker   presenter.Speaker
	session   *assistant.SessionContext

	input    textinput.Model
	viewport viewport.Model
	cards    []presenter.MovieCard
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(a *assistant.Assistant, p *presenter.Presenter, speaker presenter.Speaker) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about movies (genre, mood, director, year)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	if speaker == nil {
		speaker = presenter.NoopSpeaker{}
	}
	return Model{
		assistant: a,
		presenter: p,
		speaker:   speaker,
		session:   assistant.NewSessionContext(),
		input:     ti,
		viewport:  vp,
		status:    "Catalog loaded. Type to search, ctrl+f for a fun fact.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header + status + query frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentCard())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.runQuery(q)
				return m, nil
			}
		case "ctrl+f":
			m.status = m.assistant.FunFact()
			return m, nil
		case "ctrl+r":
			if len(m.cards) > 0 {
				m = m.runSimilar(m.cards[m.cursor].Movie.Title)
				return m, nil
			}
		case "down":
			if len(m.cards) > 0 {
				m.cursor = (m.cursor + 1) % len(m.cards)
				m.viewport.SetContent(m.renderCurrentCard())
				return m, nil
			}
		case "up":
			if len(m.cards) > 0 {
				m.cursor = (m.cursor - 1 + len(m.cards)) % len(m.cards)
				m.viewport.SetContent(m.renderCurrentCard())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runQuery(q string) Model {
	resp := m.assistant.Ask(context.Background(), m.session, q)
	m.cards = m.presenter.Cards(resp.Movies)
	m.cursor = 0
	switch {
	case len(m.cards) == 0:
		m.status = "No results found. Try another mood, genre, or director."
	case resp.Fallback:
		m.status = fmt.Sprintf("No exact matches; %d semantic matches for %q", len(m.cards), q)
	default:
		m.status = fmt.Sprintf("%d results for %q", len(m.cards), q)
	}
	if len(m.cards) > 0 {
		m.speaker.Speak(m.cards[0].SpokenSummary)
	}
	m.viewport.SetContent(m.renderCurrentCard())
	m.input.SetValue("")
	return m
}

func (m Model) runSimilar(title string) Model {
	similar := m.assistant.Recommend(title)
	m.cards = m.presenter.Cards(similar)
	m.cursor = 0
	if len(m.cards) == 0 {
		m.status = fmt.Sprintf("Nothing similar to %q found.", title)
	} else {
		m.status = fmt.Sprintf("Movies similar to %q", title)
	}
	m.viewport.SetContent(m.renderCurrentCard())
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Filmo")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentCard() string {
	if len(m.cards) == 0 {
		return "No results yet."
	}
	c := m.cards[m.cursor]
	mv := c.Movie

	var b strings.Builder
	title := fmt.Sprintf("%s (%d)", mv.Title, mv.ReleaseYear)
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d/%d  %s", m.cursor+1, len(m.cards), title)))
	b.WriteString("\n")
	if mv.HasRating() {
		b.WriteString(fmt.Sprintf("Rating: %.1f/10", mv.Rating))
	} else {
		b.WriteString("Rating: n/a")
	}
	b.WriteString(fmt.Sprintf("   Sentiment: %+.2f\n\n", c.Sentiment))
	b.WriteString(mv.Synopsis)
	b.WriteString("\n\n")
	b.WriteString("Trailer:   " + c.TrailerURL + "\n")
	b.WriteString(fmt.Sprintf("Watch on %s: %s\n", c.StreamingPlatform, c.StreamingURL))
	if c.IMDbURL != "" {
		b.WriteString("IMDb:      " + c.IMDbURL + "\n")
	}
	b.WriteString("\nctrl+r: similar movies   ctrl+f: fun fact   up/down: browse")
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
