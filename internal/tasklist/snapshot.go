package tasklist

import (
	"iter"
	"slices"

	"github.com/sandeepkv93/tally/internal/model"
)

// Snapshot is a frozen copy of a List handed to storage for encoding.
type Snapshot struct {
	tasks []model.Task
}

func NewSnapshot(tasks []model.Task) Snapshot {
	return Snapshot{tasks: slices.Clone(tasks)}
}

func (s Snapshot) Len() int {
	return len(s.tasks)
}

func (s Snapshot) At(i int) model.Task {
	return s.tasks[i]
}

func (s Snapshot) All() iter.Seq2[int, model.Task] {
	return slices.All(s.tasks)
}

// Tasks returns a copy; callers cannot reach the snapshot's backing array.
func (s Snapshot) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}
