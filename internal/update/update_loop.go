package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(typed, m.Keys.Help):
			m.HelpVisible = !m.HelpVisible
			m.helpModel.ShowAll = m.HelpVisible
			m.resize()
			return m, nil
		case key.Matches(typed, m.Keys.PageUp, m.Keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case key.Matches(typed, m.Keys.Send):
			return m.send()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case SetStatusMsg:
		return m.setStatus(StatusBar{Text: typed.Text, IsError: typed.IsError})
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err == nil {
			return m, nil
		}
		return m.setStatus(StatusBar{Text: typed.Err.Error(), IsError: true})
	}

	var inputCmd, viewCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewCmd)
}

func (m Model) send() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	reply := m.responder.Respond(m.ctx, line)
	m.Transcript = append(m.Transcript,
		views.Bubble{Speaker: views.SpeakerUser, Text: strings.TrimSpace(line)},
		views.Bubble{Speaker: views.SpeakerBot, Text: m.replyText(reply), IsError: reply.IsError},
	)
	m.refreshTranscript()

	if reply.Exit {
		m.Quitting = true
		return m, tea.Quit
	}
	return m, statusFor(reply)
}

// statusFor reports the outcome of a reply on the status bar.
func statusFor(reply session.Reply) tea.Cmd {
	switch {
	case reply.SaveErr != nil:
		err := reply.SaveErr
		return func() tea.Msg { return AppErrorMsg{Err: err} }
	case reply.IsError:
		first, _, _ := strings.Cut(reply.Text, "\n")
		return func() tea.Msg { return SetStatusMsg{Text: first, IsError: true} }
	case reply.Changed:
		return func() tea.Msg { return SetStatusMsg{Text: "saved"} }
	default:
		return nil
	}
}

func (m Model) setStatus(status StatusBar) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.Status = status
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

func (m Model) replyText(reply session.Reply) string {
	if reply.Text == session.HelpText {
		return views.RenderMarkdown(views.HelpMarkdown(reply.Text), m.width*3/4-4)
	}
	return reply.Text
}

func (m *Model) resize() {
	helpHeight := lipgloss.Height(m.helpModel.View(m.Keys))
	h := m.height - chromeLines - helpHeight
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.input.Width = m.width - len(m.input.Prompt) - 1
	m.helpModel.Width = m.width
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.styles.RenderTranscript(m.Transcript, m.width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	return m.styles.RenderChat(views.ChatData{
		Title:      appTitle,
		TaskCount:  m.responder.Len(),
		Transcript: m.viewport.View(),
		Input:      m.input.View(),
		Status:     m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.helpModel.View(m.Keys),
	})
}
