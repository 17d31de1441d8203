package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tally/internal/model"
)

type Type string

const (
	TypeExit     Type = "bye"
	TypeList     Type = "list"
	TypeHelp     Type = "help"
	TypeFind     Type = "find"
	TypeMark     Type = "mark"
	TypeUnmark   Type = "unmark"
	TypeDelete   Type = "delete"
	TypeTodo     Type = "todo"
	TypeDeadline Type = "deadline"
	TypeEvent    Type = "event"
	TypeSort     Type = "sort"
)

// Mutates reports whether applying the command changes the task list.
func (t Type) Mutates() bool {
	switch t {
	case TypeMark, TypeUnmark, TypeDelete, TypeTodo, TypeDeadline, TypeEvent:
		return true
	default:
		return false
	}
}

type ErrorCode string

const (
	ErrCodeEmptyInput     ErrorCode = "empty_input"
	ErrCodeUnknownCommand ErrorCode = "unknown_command"
	ErrCodeInvalidFormat  ErrorCode = "invalid_format"
	ErrCodeInvalidValue   ErrorCode = "invalid_value"
	ErrCodeHandlerMissing ErrorCode = "handler_missing"
)

type ErrorKind string

const (
	KindFormat   ErrorKind = "format"
	KindValue    ErrorKind = "value"
	KindInternal ErrorKind = "internal"
)

type CommandError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) Kind() ErrorKind {
	switch e.Code {
	case ErrCodeInvalidValue:
		return KindValue
	case ErrCodeHandlerMissing:
		return KindInternal
	default:
		return KindFormat
	}
}

func formatError(message string) *CommandError {
	return &CommandError{Code: ErrCodeInvalidFormat, Message: message}
}

func valueError(message string, cause error) *CommandError {
	return &CommandError{Code: ErrCodeInvalidValue, Message: message, Err: cause}
}

type FindArgs struct {
	Keyword string
}

// IndexArgs carries a zero-based position.
type IndexArgs struct {
	Index int
}

type AddArgs struct {
	Task model.Task
}

type SortKey string

const (
	SortDeadlines SortKey = "deadlines"
	SortEvents    SortKey = "events"
)

type SortArgs struct {
	By SortKey
}

type Command struct {
	Type  Type
	Raw   string
	Find  *FindArgs
	Index *IndexArgs
	Add   *AddArgs
	Sort  *SortArgs
}

var (
	todoPattern     = regexp.MustCompile(`(?i)^todo\s+(.+)$`)
	deadlinePattern = regexp.MustCompile(`(?i)^deadline\s+(.+)\s+/by\s+(.+)$`)
	eventPattern    = regexp.MustCompile(`(?i)^event\s+(.+)\s+/from\s+(.+)\s+/to\s+(.+)$`)
	findPattern     = regexp.MustCompile(`(?i)^find\s+(.+)$`)
)

// ErrIndexBelowRange marks index commands whose number is below 1. The
// message is completed by the caller, which knows the list size.
var ErrIndexBelowRange = errors.New("commands: index below 1")

var dateTimeMessage = fmt.Sprintf("Invalid date/time. Use only %s, e.g. %s.", model.DateTimeHint, model.DateTimeSample)

// Parse turns one input line into a Command. It never touches the task list;
// add commands carry a freshly built task.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "Please type a command. Type \"help\" to see what is available."}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])

	switch Type(head) {
	case TypeExit, TypeList, TypeHelp:
		return parseBare(raw, Type(head), parts)
	case TypeFind:
		return parseFind(raw)
	case TypeMark, TypeUnmark, TypeDelete:
		return parseIndex(raw, Type(head), parts)
	case TypeTodo:
		return parseTodo(raw)
	case TypeDeadline:
		return parseDeadline(raw)
	case TypeEvent:
		return parseEvent(raw)
	case TypeSort:
		return parseSort(raw, parts)
	default:
		return Command{}, &CommandError{
			Code:    ErrCodeUnknownCommand,
			Message: fmt.Sprintf("Unknown command %q. Type \"help\" for available commands.", parts[0]),
		}
	}
}

func parseBare(raw string, typ Type, parts []string) (Command, error) {
	if len(parts) != 1 {
		return Command{}, formatError(fmt.Sprintf("%s takes no arguments. Usage: %s", typ, typ))
	}
	return Command{Type: typ, Raw: raw}, nil
}

func parseFind(raw string) (Command, error) {
	m := findPattern.FindStringSubmatch(raw)
	if m == nil {
		return Command{}, formatError("Invalid format for find. Usage: find <keyword>")
	}
	keyword := strings.TrimSpace(m[1])
	if keyword == "" {
		return Command{}, valueError("The keyword for find cannot be empty.", nil)
	}
	return Command{Type: TypeFind, Raw: raw, Find: &FindArgs{Keyword: keyword}}, nil
}

func parseIndex(raw string, typ Type, parts []string) (Command, error) {
	if len(parts) != 2 {
		return Command{}, formatError(fmt.Sprintf("Invalid input! Please provide a single task number. Usage: %s <n>", typ))
	}
	if strings.HasPrefix(parts[1], "+") {
		return Command{}, valueError("Invalid index! Task number must be a whole number.", nil)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return Command{}, valueError("Invalid index! Task number must be a whole number.", err)
	}
	// Checked before subtracting so the minimum int cannot wrap around.
	if n < 1 {
		return Command{}, valueError("Invalid index! Task numbers start at 1.", ErrIndexBelowRange)
	}
	return Command{Type: typ, Raw: raw, Index: &IndexArgs{Index: n - 1}}, nil
}

func parseTodo(raw string) (Command, error) {
	m := todoPattern.FindStringSubmatch(raw)
	if m == nil {
		return Command{}, formatError("Invalid format for todo. Usage: todo <description>")
	}
	task, err := model.NewPlain(m[1])
	if err != nil {
		return Command{}, descriptionError("todo", err)
	}
	return Command{Type: TypeTodo, Raw: raw, Add: &AddArgs{Task: task}}, nil
}

func parseDeadline(raw string) (Command, error) {
	m := deadlinePattern.FindStringSubmatch(raw)
	if m == nil {
		return Command{}, formatError(fmt.Sprintf("Invalid format for deadline. Usage: deadline <description> /by <%s>", model.DateTimeHint))
	}
	desc := strings.TrimSpace(m[1])
	byRaw := strings.TrimSpace(m[2])
	if desc == "" || byRaw == "" {
		return Command{}, valueError(fmt.Sprintf("A deadline requires <description> and /by <date time>. Example: deadline return book /by %s", model.DateTimeSample), model.ErrEmptyDescription)
	}
	by, err := model.ParseDateTime(byRaw)
	if err != nil {
		return Command{}, valueError(dateTimeMessage, err)
	}
	task, err := model.NewTimed(desc, by)
	if err != nil {
		return Command{}, descriptionError("deadline", err)
	}
	return Command{Type: TypeDeadline, Raw: raw, Add: &AddArgs{Task: task}}, nil
}

func parseEvent(raw string) (Command, error) {
	m := eventPattern.FindStringSubmatch(raw)
	if m == nil {
		return Command{}, formatError(fmt.Sprintf("Invalid format for event. Usage: event <description> /from <start> /to <end> (%s)", model.DateTimeHint))
	}
	desc := strings.TrimSpace(m[1])
	fromRaw := strings.TrimSpace(m[2])
	toRaw := strings.TrimSpace(m[3])
	if desc == "" || fromRaw == "" || toRaw == "" {
		return Command{}, valueError("An event requires a description, /from time, and /to time. Example: event meeting /from 28/8/2025 1800 /to 28/8/2025 2000", model.ErrEmptyDescription)
	}
	from, err := model.ParseDateTime(fromRaw)
	if err != nil {
		return Command{}, valueError(dateTimeMessage, err)
	}
	to, err := model.ParseDateTime(toRaw)
	if err != nil {
		return Command{}, valueError(dateTimeMessage, err)
	}
	task, err := model.NewRanged(desc, from, to)
	if err != nil {
		return Command{}, descriptionError("event", err)
	}
	return Command{Type: TypeEvent, Raw: raw, Add: &AddArgs{Task: task}}, nil
}

func parseSort(raw string, parts []string) (Command, error) {
	usage := "Usage: sort deadlines | sort events"
	if len(parts) != 2 {
		return Command{}, formatError("Invalid format for sort. " + usage)
	}
	switch strings.ToLower(parts[1]) {
	case "deadline", "deadlines":
		return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{By: SortDeadlines}}, nil
	case "event", "events":
		return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{By: SortEvents}}, nil
	default:
		return Command{}, valueError(fmt.Sprintf("Cannot sort by %q. %s", parts[1], usage), nil)
	}
}

// IndexRangeError reports an index that falls outside a list of size n.
func IndexRangeError(n int) *CommandError {
	return valueError(fmt.Sprintf("Invalid index! Please enter a number between 1 and %d", n), nil)
}

func descriptionError(verb string, err error) error {
	if errors.Is(err, model.ErrInvalidDescription) {
		return valueError(fmt.Sprintf("The description of a %s cannot contain '|' or line breaks.", verb), err)
	}
	return valueError(fmt.Sprintf("The description of a %s cannot be empty.", verb), err)
}
