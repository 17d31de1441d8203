package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidKind        = errors.New("model: invalid task kind")
	ErrEmptyDescription   = errors.New("model: task description is required")
	ErrInvalidDescription = errors.New("model: task description contains a reserved character")
	ErrMissingTime        = errors.New("model: task time is required")
)

// Kind is the one-letter variant tag shared by the display and storage forms.
type Kind string

const (
	KindPlain  Kind = "T"
	KindTimed  Kind = "D"
	KindRanged Kind = "E"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindPlain, KindTimed, KindRanged:
		return true
	default:
		return false
	}
}

const (
	DoneToken    = "Done"
	NotDoneToken = "Not Done"

	storageSeparator = " | "
)

// Task is a value type. By is set only for KindTimed, From and To only for
// KindRanged; the zero time marks an absent timestamp.
type Task struct {
	Kind        Kind
	Description string
	Done        bool
	By          time.Time
	From        time.Time
	To          time.Time
}

func NewPlain(description string) (Task, error) {
	desc, err := normalizeDescription(description)
	if err != nil {
		return Task{}, err
	}
	return Task{Kind: KindPlain, Description: desc}, nil
}

func NewTimed(description string, by time.Time) (Task, error) {
	desc, err := normalizeDescription(description)
	if err != nil {
		return Task{}, err
	}
	if by.IsZero() {
		return Task{}, fmt.Errorf("%w: by", ErrMissingTime)
	}
	return Task{Kind: KindTimed, Description: desc, By: truncateMinute(by)}, nil
}

// NewRanged does not require from to precede to.
func NewRanged(description string, from, to time.Time) (Task, error) {
	desc, err := normalizeDescription(description)
	if err != nil {
		return Task{}, err
	}
	if from.IsZero() {
		return Task{}, fmt.Errorf("%w: from", ErrMissingTime)
	}
	if to.IsZero() {
		return Task{}, fmt.Errorf("%w: to", ErrMissingTime)
	}
	return Task{Kind: KindRanged, Description: desc, From: truncateMinute(from), To: truncateMinute(to)}, nil
}

func (t Task) Validate() error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if _, err := normalizeDescription(t.Description); err != nil {
		return err
	}
	switch t.Kind {
	case KindTimed:
		if t.By.IsZero() {
			return fmt.Errorf("%w: by", ErrMissingTime)
		}
	case KindRanged:
		if t.From.IsZero() {
			return fmt.Errorf("%w: from", ErrMissingTime)
		}
		if t.To.IsZero() {
			return fmt.Errorf("%w: to", ErrMissingTime)
		}
	}
	return nil
}

func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

func (t Task) StatusToken() string {
	if t.Done {
		return DoneToken
	}
	return NotDoneToken
}

// String renders the display form, e.g. "[D][ ] return book (by: Aug 28 2025 18:00)".
func (t Task) String() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Kind, t.StatusIcon(), t.Description)
	switch t.Kind {
	case KindTimed:
		return base + fmt.Sprintf(" (by: %s)", FormatDisplay(t.By))
	case KindRanged:
		return base + fmt.Sprintf(" (from: %s to: %s)", FormatDisplay(t.From), FormatDisplay(t.To))
	default:
		return base
	}
}

// StorageString renders the pipe-delimited persisted form.
func (t Task) StorageString() string {
	fields := []string{string(t.Kind), t.StatusToken(), t.Description}
	switch t.Kind {
	case KindTimed:
		fields = append(fields, "By: "+FormatDateTime(t.By))
	case KindRanged:
		fields = append(fields, "From: "+FormatDateTime(t.From), "To: "+FormatDateTime(t.To))
	}
	return strings.Join(fields, storageSeparator)
}

// Equal compares every field, timestamps by instant.
func (t Task) Equal(other Task) bool {
	return t.Kind == other.Kind &&
		t.Description == other.Description &&
		t.Done == other.Done &&
		t.By.Equal(other.By) &&
		t.From.Equal(other.From) &&
		t.To.Equal(other.To)
}

func normalizeDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", ErrEmptyDescription
	}
	if strings.ContainsAny(desc, "|\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDescription, desc)
	}
	return desc, nil
}

func truncateMinute(v time.Time) time.Time {
	return v.Truncate(time.Minute)
}
