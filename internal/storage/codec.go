package storage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/tasklist"
)

var (
	ErrUnknownTag     = errors.New("storage: unknown task tag")
	ErrMissingFields  = errors.New("storage: too few fields for tag")
	ErrBadDescription = errors.New("storage: invalid description")
	ErrBadTimestamp   = errors.New("storage: invalid timestamp")
)

var fieldSeparator = regexp.MustCompile(`\s*\|\s*`)

// SkippedLine records a line Decode dropped. Number is 1-based.
type SkippedLine struct {
	Number int
	Line   string
	Reason error
}

type DecodeResult struct {
	Tasks   []model.Task
	Skipped []SkippedLine
}

// Encode produces one storage line per task, in order.
func Encode(snap tasklist.Snapshot) []string {
	out := make([]string, 0, snap.Len())
	for _, t := range snap.All() {
		out = append(out, t.StorageString())
	}
	return out
}

// Decode is best effort: blank lines are ignored and malformed lines are
// reported in Skipped, never returned as an error.
func Decode(lines []string) DecodeResult {
	res := DecodeResult{Tasks: make([]model.Task, 0, len(lines))}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		task, err := DecodeLine(line)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Number: i + 1, Line: raw, Reason: err})
			continue
		}
		res.Tasks = append(res.Tasks, task)
	}
	return res
}

func DecodeLine(line string) (model.Task, error) {
	parts := fieldSeparator.Split(strings.TrimSpace(line), -1)
	if len(parts) < 3 {
		return model.Task{}, fmt.Errorf("%w: got %d fields", ErrMissingFields, len(parts))
	}
	tag := model.Kind(parts[0])
	done := strings.EqualFold(parts[1], model.DoneToken)
	desc := parts[2]

	var (
		task model.Task
		err  error
	)
	switch tag {
	case model.KindPlain:
		task, err = model.NewPlain(desc)
	case model.KindTimed:
		if len(parts) < 4 {
			return model.Task{}, fmt.Errorf("%w: %s needs 4, got %d", ErrMissingFields, tag, len(parts))
		}
		by, perr := model.ParseDateTime(stripLabel(parts[3], "By"))
		if perr != nil {
			return model.Task{}, fmt.Errorf("%w: %w", ErrBadTimestamp, perr)
		}
		task, err = model.NewTimed(desc, by)
	case model.KindRanged:
		if len(parts) < 5 {
			return model.Task{}, fmt.Errorf("%w: %s needs 5, got %d", ErrMissingFields, tag, len(parts))
		}
		from, perr := model.ParseDateTime(stripLabel(parts[3], "From"))
		if perr != nil {
			return model.Task{}, fmt.Errorf("%w: %w", ErrBadTimestamp, perr)
		}
		to, perr := model.ParseDateTime(stripLabel(parts[4], "To"))
		if perr != nil {
			return model.Task{}, fmt.Errorf("%w: %w", ErrBadTimestamp, perr)
		}
		task, err = model.NewRanged(desc, from, to)
	default:
		return model.Task{}, fmt.Errorf("%w: %q", ErrUnknownTag, parts[0])
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrBadDescription, err)
	}
	task.Done = done
	return task, nil
}

// stripLabel removes a leading "Label" or "Label:" (any case) from v.
func stripLabel(v, label string) string {
	trimmed := strings.TrimSpace(v)
	if len(trimmed) >= len(label) && strings.EqualFold(trimmed[:len(label)], label) {
		rest := strings.TrimSpace(trimmed[len(label):])
		rest = strings.TrimPrefix(rest, ":")
		return strings.TrimSpace(rest)
	}
	return trimmed
}
