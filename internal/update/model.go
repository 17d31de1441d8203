package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/views"
)

const (
	appTitle     = "tally"
	defaultWidth = 80
	chromeLines  = 4
	statusTTL    = 3 * time.Second
)

// Responder is the part of a session the chat window drives.
type Responder interface {
	Respond(ctx context.Context, line string) session.Reply
	Len() int
}

type StatusBar struct {
	Text    string
	IsError bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg clears the status bar unless a newer status replaced the
// one it was scheduled for.
type ClearStatusMsg struct {
	Seq int
}

type AppErrorMsg struct {
	Err error
}

type Model struct {
	Transcript  []views.Bubble
	Status      StatusBar
	HelpVisible bool
	Quitting    bool
	LastError   error
	Keys        KeyMap

	statusSeq int
	ctx       context.Context
	responder Responder
	styles    views.Styles
	width     int
	height    int
	input     textinput.Model
	viewport  viewport.Model
	helpModel help.Model
}

func NewModel(ctx context.Context, r Responder) Model {
	return NewModelWithStyles(ctx, r, views.DefaultStyles)
}

func NewModelWithStyles(ctx context.Context, r Responder, styles views.Styles) Model {
	in := textinput.New()
	in.Placeholder = "type a command, e.g. todo read book"
	in.Prompt = "> "
	in.Focus()

	m := Model{
		Transcript: []views.Bubble{{Speaker: views.SpeakerBot, Text: session.Greeting}},
		Keys:       DefaultKeyMap(),
		ctx:        ctx,
		responder:  r,
		styles:     styles,
		width:      defaultWidth,
		input:      in,
		viewport:   viewport.New(defaultWidth, 20),
		helpModel:  help.New(),
	}
	m.refreshTranscript()
	return m
}
