// Package tui implements the interactive chat interface over the
// question-answering service.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Answerer is the TUI-facing subset of the service.
type Answerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

type message struct {
	role string // "you" or "assistant"
	text string
}

type answerMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service  Answerer
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	messages []message
	busy     bool
	ready    bool
}

// New creates a new chat model.
func New(service Answerer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		spin:     sp,
		messages: []message{{role: "assistant", text: "Ask me anything about your documents."}},
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := transcriptStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - fh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.busy {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.messages = append(m.messages, message{role: "you", text: q})
			m.input.SetValue("")
			m.busy = true
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spin.Tick, ask(m.service, q))
		}

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.messages = append(m.messages, message{role: "assistant", text: "Error: " + msg.err.Error()})
		} else {
			m.messages = append(m.messages, message{role: "assistant", text: msg.text})
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ask runs the question off the update loop so the UI stays responsive.
func ask(service Answerer, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := service.Ask(context.Background(), question)
		return answerMsg{text: answer, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Chat")
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := "Enter to ask, Ctrl+C to quit"
	if m.busy {
		status = m.spin.View() + " thinking..."
	}
	statusLine := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(status)
	return header + "\n" + transcript + "\n" + input + "\n" + statusLine
}

func (m Model) renderTranscript() string {
	var sb strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		label := assistantLabelStyle.Render("assistant")
		if msg.role == "you" {
			label = youLabelStyle.Render("you")
		}
		sb.WriteString(fmt.Sprintf("%s\n%s", label, msg.text))
	}
	return sb.String()
}

var (
	transcriptStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	youLabelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
