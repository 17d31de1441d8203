package views

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func plainStyles() Styles {
	return NewStyles(lipgloss.NewRenderer(io.Discard))
}

func TestRenderBubbleAlignsUserRight(t *testing.T) {
	s := plainStyles()
	out := s.RenderBubble(Bubble{Speaker: SpeakerUser, Text: "list"}, 40)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Fatalf("expected user bubble line padded to 40, got %d: %q", w, line)
		}
		if !strings.HasPrefix(line, " ") {
			t.Fatalf("expected user bubble to be right aligned: %q", line)
		}
	}

	bot := s.RenderBubble(Bubble{Speaker: SpeakerBot, Text: "No tasks in your list."}, 40)
	if strings.HasPrefix(bot, " ") || !strings.Contains(bot, "No tasks in your list.") {
		t.Fatalf("unexpected bot bubble:\n%s", bot)
	}
}

func TestRenderBubbleWrapsLongText(t *testing.T) {
	s := plainStyles()
	long := strings.Repeat("word ", 40)
	out := s.RenderBubble(Bubble{Speaker: SpeakerBot, Text: long}, 40)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Fatalf("bubble line wider than three quarters of width: %d %q", w, line)
		}
	}
}

func TestRenderTranscriptKeepsOrder(t *testing.T) {
	s := plainStyles()
	out := s.RenderTranscript([]Bubble{
		{Speaker: SpeakerUser, Text: "todo first"},
		{Speaker: SpeakerBot, Text: "added first"},
		{Speaker: SpeakerBot, Text: "oops", IsError: true},
	}, 60)
	a := strings.Index(out, "todo first")
	b := strings.Index(out, "added first")
	c := strings.Index(out, "oops")
	if a < 0 || b < a || c < b {
		t.Fatalf("transcript out of order:\n%s", out)
	}
}

func TestRenderChatAndBanner(t *testing.T) {
	s := plainStyles()
	out := s.RenderChat(ChatData{
		Title:      "tally",
		TaskCount:  1,
		Transcript: "transcript",
		Input:      "> _",
		Status:     "saving failed",
		IsError:    true,
		Footer:     "enter send",
	})
	for _, want := range []string{"tally · 1 task", "transcript", "> _", "saving failed", "enter send"} {
		if !strings.Contains(out, want) {
			t.Fatalf("chat view missing %q:\n%s", want, out)
		}
	}

	banner := s.RenderBanner("Hello", 10)
	if banner != "==========\nHello\n==========" {
		t.Fatalf("unexpected banner: %q", banner)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if RenderMarkdown("   ", 0) != "" {
		t.Fatal("blank markdown must render empty")
	}
	out := ansi.Strip(RenderMarkdown(HelpMarkdown("Here are the commands:\n\n  list   - List all tasks"), 60))
	if !strings.Contains(out, "Here are the commands:") || !strings.Contains(out, "List all tasks") {
		t.Fatalf("unexpected markdown output:\n%s", out)
	}
}

func TestHelpMarkdownSingleLine(t *testing.T) {
	if got := HelpMarkdown("just one line"); got != "```\njust one line\n```" {
		t.Fatalf("unexpected markdown: %q", got)
	}
}
