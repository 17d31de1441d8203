// Package console is the line-based front end: one command per input line,
// one reply block per command.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tally/internal/session"
	"github.com/sandeepkv93/tally/internal/views"
)

const maxLineBytes = 1 << 20

type Responder interface {
	Respond(ctx context.Context, line string) session.Reply
}

type Console struct {
	responder Responder
	in        io.Reader
	out       io.Writer
	styles    views.Styles
	width     int
}

func New(r Responder, in io.Reader, out io.Writer) *Console {
	return &Console{
		responder: r,
		in:        in,
		out:       out,
		styles:    views.NewStyles(lipgloss.NewRenderer(out)),
		width:     48,
	}
}

// Run greets, then answers lines until bye, end of input, or ctx is done.
// The farewell banner is printed in every case but cancellation.
func (c *Console) Run(ctx context.Context) error {
	if err := c.banner(session.Greeting); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		reply := c.responder.Respond(ctx, scanner.Text())
		if reply.Exit {
			return c.banner(reply.Text)
		}
		if err := c.print(reply); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return c.banner(session.Farewell)
}

func (c *Console) print(reply session.Reply) error {
	text := reply.Text
	if reply.IsError {
		text = c.styles.ErrorText.Render("Error: " + text)
	}
	_, err := fmt.Fprintln(c.out, text+"\n"+c.styles.Divider.Render(strings.Repeat("=", c.width)))
	return err
}

func (c *Console) banner(text string) error {
	_, err := fmt.Fprintln(c.out, c.styles.RenderBanner(text, c.width))
	return err
}
