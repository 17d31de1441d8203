package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

type Bubble struct {
	Speaker Speaker
	Text    string
	IsError bool
}

// Styles is bound to one renderer so that colour detection follows the
// writer the output actually goes to.
type Styles struct {
	Header    lipgloss.Style
	Banner    lipgloss.Style
	UserBox   lipgloss.Style
	BotBox    lipgloss.Style
	ErrorBox  lipgloss.Style
	Status    lipgloss.Style
	ErrorText lipgloss.Style
	Footer    lipgloss.Style
	Divider   lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	box := r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Banner:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		UserBox:   box.BorderForeground(lipgloss.Color("12")),
		BotBox:    box.BorderForeground(lipgloss.Color("8")),
		ErrorBox:  box.BorderForeground(lipgloss.Color("9")),
		Status:    r.NewStyle().Foreground(lipgloss.Color("10")),
		ErrorText: r.NewStyle().Foreground(lipgloss.Color("9")),
		Footer:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Divider:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

var DefaultStyles = NewStyles(nil)

// RenderBubble draws one transcript entry. User bubbles hug the right edge
// of width, bot bubbles the left.
func (s Styles) RenderBubble(b Bubble, width int) string {
	style := s.BotBox
	switch {
	case b.Speaker == SpeakerUser:
		style = s.UserBox
	case b.IsError:
		style = s.ErrorBox
	}
	maxInner := width*3/4 - style.GetHorizontalFrameSize()
	if maxInner > 0 && lipgloss.Width(b.Text) > maxInner {
		style = style.Width(maxInner)
	}
	box := style.Render(b.Text)
	if b.Speaker == SpeakerUser && width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
	}
	return box
}

func (s Styles) RenderTranscript(bubbles []Bubble, width int) string {
	parts := make([]string, 0, len(bubbles))
	for _, b := range bubbles {
		parts = append(parts, s.RenderBubble(b, width))
	}
	return strings.Join(parts, "\n")
}

// RenderMarkdown wraps at width when positive and falls back to the raw text
// when glamour cannot render.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// HelpMarkdown wraps a column-aligned help listing in a code block so the
// alignment survives markdown rendering.
func HelpMarkdown(help string) string {
	title, body, found := strings.Cut(help, "\n")
	if !found {
		return "```\n" + help + "\n```"
	}
	return "**" + title + "**\n\n```\n" + strings.Trim(body, "\n") + "\n```"
}
