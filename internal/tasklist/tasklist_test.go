package tasklist

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/tally/internal/model"
	"pgregory.net/rapid"
)

func at(t *testing.T, raw string) time.Time {
	t.Helper()
	v, err := model.ParseDateTime(raw)
	if err != nil {
		t.Fatalf("parse time %q: %v", raw, err)
	}
	return v
}

func sampleList(t *testing.T) *List {
	t.Helper()
	plain, err := model.NewPlain("read book")
	if err != nil {
		t.Fatalf("new plain: %v", err)
	}
	timed, err := model.NewTimed("return book", at(t, "28/8/2025 1800"))
	if err != nil {
		t.Fatalf("new timed: %v", err)
	}
	timed.Done = true
	ranged, err := model.NewRanged("meeting", at(t, "28/8/2025 0900"), at(t, "28/8/2025 1030"))
	if err != nil {
		t.Fatalf("new ranged: %v", err)
	}
	return New([]model.Task{plain, timed, ranged})
}

func TestAddAppendsWithoutDedup(t *testing.T) {
	l := New(nil)
	task, _ := model.NewPlain("same")
	l.Add(task)
	l.Add(task)
	if l.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", l.Len())
	}
	if got := l.DisplayString(); got != "1. [T][ ] same\n2. [T][ ] same" {
		t.Fatalf("unexpected display: %q", got)
	}
}

func TestMarkUnmarkRemove(t *testing.T) {
	l := sampleList(t)

	marked, err := l.Mark(0)
	if err != nil || !marked.Done {
		t.Fatalf("mark failed: %v %#v", err, marked)
	}
	unmarked, err := l.Unmark(1)
	if err != nil || unmarked.Done {
		t.Fatalf("unmark failed: %v %#v", err, unmarked)
	}
	got, _ := l.Get(1)
	if got.Done {
		t.Fatal("unmark should persist in list")
	}

	removed, err := l.Remove(0)
	if err != nil || removed.Description != "read book" {
		t.Fatalf("remove failed: %v %#v", err, removed)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 tasks after remove, got %d", l.Len())
	}
	first, _ := l.Get(0)
	if first.Description != "return book" {
		t.Fatalf("remove should shift later tasks, got %q", first.Description)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	l := sampleList(t)
	for _, idx := range []int{-1, 3, 10} {
		if _, err := l.Get(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("get %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
		if _, err := l.Mark(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("mark %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
		if _, err := l.Remove(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("remove %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if l.Len() != 3 {
		t.Fatalf("failed operations must not change the list, len=%d", l.Len())
	}
}

func TestFindIsCaseInsensitiveAndOrdered(t *testing.T) {
	l := sampleList(t)
	found := l.Find("BOOK")
	if len(found) != 2 || found[0].Description != "read book" || found[1].Description != "return book" {
		t.Fatalf("unexpected matches: %#v", found)
	}
	if none := l.Find("gym"); none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", none)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	l := sampleList(t)
	snap := l.Snapshot()
	if _, err := l.Mark(0); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := l.Remove(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if snap.Len() != 3 || snap.At(0).Done {
		t.Fatalf("snapshot changed after list mutation: %#v", snap.Tasks())
	}

	copied := snap.Tasks()
	copied[0].Description = "changed"
	if snap.At(0).Description != "read book" {
		t.Fatal("Tasks must return a copy")
	}

	count := 0
	for i, task := range snap.All() {
		if i != count || task.Description == "" {
			t.Fatalf("unexpected iteration at %d", i)
		}
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 iterations, got %d", count)
	}
}

func TestDisplayStringEmpty(t *testing.T) {
	if got := New(nil).DisplayString(); got != EmptyMessage {
		t.Fatalf("unexpected empty display: %q", got)
	}
}

func TestSortedViews(t *testing.T) {
	l := sampleList(t)
	early, _ := model.NewTimed("pay rent", at(t, "1/8/2025 0900"))
	l.Add(early)
	late, _ := model.NewRanged("conference", at(t, "1/9/2025 0900"), at(t, "2/9/2025 1700"))
	l.Add(late)

	deadlines := l.DeadlinesFirst()
	gotD := descriptions(deadlines)
	wantD := "pay rent,return book,read book,meeting,conference"
	if gotD != wantD {
		t.Fatalf("deadlines first = %s, want %s", gotD, wantD)
	}

	events := l.EventsFirst()
	gotE := descriptions(events)
	wantE := "meeting,conference,read book,return book,pay rent"
	if gotE != wantE {
		t.Fatalf("events first = %s, want %s", gotE, wantE)
	}

	first, _ := l.Get(0)
	if first.Description != "read book" {
		t.Fatal("sorted views must not reorder the list")
	}
}

func descriptions(tasks []model.Task) string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Description)
	}
	return strings.Join(out, ",")
}

func TestProperty_FindNeverMutates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z]{1,8}( [a-zA-Z]{1,8})?`), 0, 12).Draw(rt, "descs")
		l := New(nil)
		for _, w := range words {
			task, err := model.NewPlain(w)
			if err != nil {
				rt.Fatalf("new plain %q: %v", w, err)
			}
			l.Add(task)
		}
		before := l.DisplayString()
		keyword := rapid.StringMatching(`[a-zA-Z]{1,3}`).Draw(rt, "keyword")

		found := l.Find(keyword)

		if l.DisplayString() != before {
			rt.Fatalf("find mutated the list")
		}
		j := 0
		for _, w := range words {
			if strings.Contains(strings.ToLower(w), strings.ToLower(keyword)) {
				if j >= len(found) || found[j].Description != w {
					rt.Fatalf("match %q missing or out of order", w)
				}
				j++
			}
		}
		if j != len(found) {
			rt.Fatalf("found %d tasks, expected %d", len(found), j)
		}
	})
}
