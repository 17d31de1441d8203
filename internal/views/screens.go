package views

import (
	"fmt"
	"strings"
)

type ChatData struct {
	Title      string
	TaskCount  int
	Transcript string
	Input      string
	Status     string
	IsError    bool
	Footer     string
}

func (s Styles) RenderHeader(title string, count int) string {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	return s.Header.Render(fmt.Sprintf("%s · %d %s", title, count, noun))
}

func (s Styles) RenderStatus(text string, isError bool) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if isError {
		return s.ErrorText.Render(text)
	}
	return s.Status.Render(text)
}

func (s Styles) RenderChat(data ChatData) string {
	lines := []string{
		s.RenderHeader(data.Title, data.TaskCount),
		data.Transcript,
		data.Input,
	}
	if status := s.RenderStatus(data.Status, data.IsError); status != "" {
		lines = append(lines, status)
	}
	if data.Footer != "" {
		lines = append(lines, s.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderBanner frames text between two divider lines, as printed by the
// console front end for greetings and farewells.
func (s Styles) RenderBanner(text string, width int) string {
	if width <= 0 {
		width = 48
	}
	rule := s.Divider.Render(strings.Repeat("=", width))
	return rule + "\n" + s.Banner.Render(text) + "\n" + rule
}
