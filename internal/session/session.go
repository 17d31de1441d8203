// Package session applies parsed commands to the task list and persists the
// result. Both front ends drive it one line at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/tally/internal/commands"
	"github.com/sandeepkv93/tally/internal/logging"
	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/storage"
	"github.com/sandeepkv93/tally/internal/tasklist"
)

const (
	Greeting = "Hello! I'm Tally.\nWhat can I do for you?"
	Farewell = "Bye. Hope to see you again soon!"
)

// Reply is the user-facing outcome of one input line. Changed is set when
// the list was mutated; SaveErr carries a failed save of that mutation.
type Reply struct {
	Text    string
	IsError bool
	Exit    bool
	Changed bool
	SaveErr error
}

type Session struct {
	store  storage.Store
	tasks  *tasklist.List
	logger *slog.Logger
}

func New(store storage.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{store: store, tasks: tasklist.New(nil), logger: logger}
}

// Load replaces the in-memory list with the store contents. Malformed lines
// are skipped and logged; only transport failures are returned.
func (s *Session) Load(ctx context.Context) (storage.DecodeResult, error) {
	res, err := s.store.Load(ctx)
	if err != nil {
		return storage.DecodeResult{}, err
	}
	s.tasks = tasklist.New(res.Tasks)
	for _, sk := range res.Skipped {
		s.logger.Warn("skipped stored line", "line", sk.Number, "reason", sk.Reason.Error())
	}
	s.logger.Info("tasks loaded", "tasks", len(res.Tasks), "skipped", len(res.Skipped))
	return res, nil
}

func (s *Session) Snapshot() tasklist.Snapshot {
	return s.tasks.Snapshot()
}

func (s *Session) Len() int {
	return s.tasks.Len()
}

// Respond parses and applies one input line. It never fails: every error
// becomes a reply with IsError set and the loop carries on.
func (s *Session) Respond(ctx context.Context, line string) Reply {
	cmd, err := commands.Parse(line)
	if err != nil {
		return s.errorReply(err)
	}
	s.logger.Debug("command", "type", string(cmd.Type))

	res, err := commands.Execute(cmd, s.handlers())
	if err != nil {
		return s.errorReply(err)
	}
	if !cmd.Type.Mutates() {
		return Reply{Text: res.Message, Exit: res.Exit}
	}
	// The mutation stays even when the save fails.
	if err := s.store.Save(ctx, s.tasks.Snapshot()); err != nil {
		s.logger.Warn("save failed", "command", string(cmd.Type), "err", err)
		return Reply{
			Text:    res.Message + "\n" + fmt.Sprintf("Task updated in memory, but saving failed: %v", err),
			IsError: true,
			Changed: true,
			SaveErr: err,
		}
	}
	return Reply{Text: res.Message, Changed: true}
}

func (s *Session) handlers() commands.Handlers {
	return commands.Handlers{
		Exit: func() (commands.Result, error) {
			return commands.Result{Message: Farewell, Exit: true}, nil
		},
		List: func() (commands.Result, error) {
			if s.tasks.Len() == 0 {
				return commands.Result{Message: tasklist.EmptyMessage}, nil
			}
			return commands.Result{Message: "Here are the tasks in your list:\n" + s.tasks.DisplayString()}, nil
		},
		Help: func() (commands.Result, error) {
			return commands.Result{Message: HelpText}, nil
		},
		Find: func(a commands.FindArgs) (commands.Result, error) {
			matches := s.tasks.Find(a.Keyword)
			if len(matches) == 0 {
				return commands.Result{Message: fmt.Sprintf("No matching tasks found for %q.", a.Keyword)}, nil
			}
			return commands.Result{Message: "Here are the matching tasks in your list:\n" + tasklist.Render(matches)}, nil
		},
		Mark: func(a commands.IndexArgs) (commands.Result, error) {
			if err := s.checkIndex(a.Index); err != nil {
				return commands.Result{}, err
			}
			t, err := s.tasks.Mark(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "Nice! I've marked this task as done:\n  " + t.String()}, nil
		},
		Unmark: func(a commands.IndexArgs) (commands.Result, error) {
			if err := s.checkIndex(a.Index); err != nil {
				return commands.Result{}, err
			}
			t, err := s.tasks.Unmark(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "OK, I've marked this task as not done yet:\n  " + t.String()}, nil
		},
		Delete: func(a commands.IndexArgs) (commands.Result, error) {
			if err := s.checkIndex(a.Index); err != nil {
				return commands.Result{}, err
			}
			t, err := s.tasks.Remove(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "Noted. I've removed this task:\n  " + t.String() + "\n" + countLine(s.tasks.Len())}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			s.tasks.Add(a.Task)
			return commands.Result{Message: "Got it. I've added this task:\n  " + a.Task.String() + "\n" + countLine(s.tasks.Len())}, nil
		},
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			var view []model.Task
			var title string
			switch a.By {
			case commands.SortEvents:
				view, title = s.tasks.EventsFirst(), "events first"
			default:
				view, title = s.tasks.DeadlinesFirst(), "deadlines first"
			}
			if len(view) == 0 {
				return commands.Result{Message: tasklist.EmptyMessage}, nil
			}
			return commands.Result{Message: "Here are your tasks, " + title + ":\n" + tasklist.Render(view)}, nil
		},
	}
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= s.tasks.Len() {
		return commands.IndexRangeError(s.tasks.Len())
	}
	return nil
}

func (s *Session) errorReply(err error) Reply {
	if errors.Is(err, commands.ErrIndexBelowRange) {
		err = commands.IndexRangeError(s.tasks.Len())
	}
	var ce *commands.CommandError
	if errors.As(err, &ce) {
		s.logger.Debug("command rejected", "code", string(ce.Code), "kind", string(ce.Kind()))
		return Reply{Text: ce.Message, IsError: true}
	}
	s.logger.Error("command failed", "err", err)
	return Reply{Text: "Something went wrong: " + err.Error(), IsError: true}
}

func countLine(n int) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Now you have %d %s in the list.", n, noun)
}

var HelpText = strings.Join([]string{
	"Here are the commands you can use:",
	"",
	"General",
	"  help                                  - Show this help",
	"  bye                                   - Exit",
	"",
	"Tasks",
	"  list                                  - List all tasks",
	"  todo <description>                    - Add a todo",
	"  deadline <desc> /by <when>            - Add a deadline",
	"  event <desc> /from <start> /to <end>  - Add an event",
	"",
	"Status and editing",
	"  mark <n>                              - Mark task n as done",
	"  unmark <n>                            - Mark task n as not done",
	"  delete <n>                            - Delete task n",
	"",
	"Search and views",
	"  find <keyword>                        - Find tasks containing the keyword",
	"  sort deadlines                        - Deadlines first, earliest due",
	"  sort events                           - Events first, earliest start",
	"",
	"Dates use " + model.DateTimeHint + ", e.g. " + model.DateTimeSample + ".",
}, "\n")
