package timeline

import (
	"github.com/google/btree"

	"github.com/Sumatoshi-tech/stepwise/pkg/interval"
)

// setDegree is the B-tree degree of node interval sets. Sets are usually
// small, so a low degree keeps clones cheap.
const setDegree = 4

// setEntry is one distinct interval and the number of times it was added.
type setEntry struct {
	iv    interval.Interval
	count int
}

func lessEntry(a, b setEntry) bool {
	return a.iv.Compare(b.iv) < 0
}

// intervalSet is an ordered multiset of intervals.
type intervalSet struct {
	tree *btree.BTreeG[setEntry]
}

func newIntervalSet() *intervalSet {
	return &intervalSet{tree: btree.NewG(setDegree, lessEntry)}
}

func (s *intervalSet) add(iv interval.Interval, count int) {
	entry, found := s.tree.Get(setEntry{iv: iv})
	if found {
		entry.count += count
	} else {
		entry = setEntry{iv: iv, count: count}
	}

	s.tree.ReplaceOrInsert(entry)
}

// remove drops every copy of iv and returns how many were held.
func (s *intervalSet) remove(iv interval.Interval) int {
	entry, found := s.tree.Delete(setEntry{iv: iv})
	if !found {
		return 0
	}

	return entry.count
}

func (s *intervalSet) has(iv interval.Interval) bool {
	return s.tree.Has(setEntry{iv: iv})
}

func (s *intervalSet) empty() bool {
	return s.tree.Len() == 0
}

// size counts copies, not distinct intervals.
func (s *intervalSet) size() int {
	total := 0

	s.each(func(_ interval.Interval, count int) {
		total += count
	})

	return total
}

func (s *intervalSet) each(fn func(iv interval.Interval, count int)) {
	s.tree.Ascend(func(entry setEntry) bool {
		fn(entry.iv, entry.count)

		return true
	})
}

// items expands the multiset into a sorted slice.
func (s *intervalSet) items() []interval.Interval {
	out := make([]interval.Interval, 0, s.tree.Len())

	s.each(func(iv interval.Interval, count int) {
		for range count {
			out = append(out, iv)
		}
	})

	return out
}

func (s *intervalSet) clone() *intervalSet {
	return &intervalSet{tree: s.tree.Clone()}
}

func (s *intervalSet) equal(other *intervalSet) bool {
	if s.tree.Len() != other.tree.Len() {
		return false
	}

	mine, theirs := s.entries(), other.entries()

	for i := range mine {
		if mine[i].count != theirs[i].count || !mine[i].iv.Equal(theirs[i].iv) {
			return false
		}
	}

	return true
}

func (s *intervalSet) entries() []setEntry {
	out := make([]setEntry, 0, s.tree.Len())

	s.tree.Ascend(func(entry setEntry) bool {
		out = append(out, entry)

		return true
	})

	return out
}
