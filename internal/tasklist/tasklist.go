// Package tasklist holds the ordered, in-memory task collection. Insertion
// order is both display order and storage order.
package tasklist

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/tally/internal/model"
)

var ErrIndexOutOfRange = errors.New("tasklist: index out of range")

const EmptyMessage = "No tasks in your list."

type List struct {
	tasks []model.Task
}

func New(tasks []model.Task) *List {
	return &List{tasks: slices.Clone(tasks)}
}

func (l *List) Len() int {
	return len(l.tasks)
}

func (l *List) Add(task model.Task) {
	l.tasks = append(l.tasks, task)
}

func (l *List) Get(index int) (model.Task, error) {
	if err := l.check(index); err != nil {
		return model.Task{}, err
	}
	return l.tasks[index], nil
}

func (l *List) Mark(index int) (model.Task, error) {
	return l.setDone(index, true)
}

func (l *List) Unmark(index int) (model.Task, error) {
	return l.setDone(index, false)
}

func (l *List) Remove(index int) (model.Task, error) {
	if err := l.check(index); err != nil {
		return model.Task{}, err
	}
	removed := l.tasks[index]
	l.tasks = slices.Delete(l.tasks, index, index+1)
	return removed, nil
}

// Find returns, in list order, the tasks whose description contains keyword
// ignoring case.
func (l *List) Find(keyword string) []model.Task {
	needle := strings.ToLower(keyword)
	out := make([]model.Task, 0)
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Snapshot copies the current tasks. Tasks are values, so later mutations of
// the list never reach a snapshot.
func (l *List) Snapshot() Snapshot {
	return Snapshot{tasks: slices.Clone(l.tasks)}
}

// DeadlinesFirst orders timed tasks by due time, then everything else in
// list order.
func (l *List) DeadlinesFirst() []model.Task {
	return kindFirst(l.tasks, model.KindTimed, func(t model.Task) int64 { return t.By.Unix() })
}

// EventsFirst orders ranged tasks by start time, then everything else in
// list order.
func (l *List) EventsFirst() []model.Task {
	return kindFirst(l.tasks, model.KindRanged, func(t model.Task) int64 { return t.From.Unix() })
}

func (l *List) DisplayString() string {
	return Render(l.tasks)
}

// Render numbers tasks from 1 using their display form.
func Render(tasks []model.Task) string {
	if len(tasks) == 0 {
		return EmptyMessage
	}
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, t))
	}
	return strings.Join(lines, "\n")
}

func (l *List) setDone(index int, done bool) (model.Task, error) {
	if err := l.check(index); err != nil {
		return model.Task{}, err
	}
	l.tasks[index].Done = done
	return l.tasks[index], nil
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(l.tasks))
	}
	return nil
}

func kindFirst(tasks []model.Task, kind model.Kind, key func(model.Task) int64) []model.Task {
	first := make([]model.Task, 0, len(tasks))
	rest := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Kind == kind {
			first = append(first, t)
		} else {
			rest = append(rest, t)
		}
	}
	slices.SortStableFunc(first, func(a, b model.Task) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
	return append(first, rest...)
}
