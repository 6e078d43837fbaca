package resolver

import (
	"sort"

	"github.com/thornmere/menagerie-bot-discord/internal/events"
)

// Tree is one reported event with its causal children from the same pass
type Tree struct {
	Event    *events.Event
	Children []*Tree
}

// BuildForest arranges one pass's resolved events into a causal forest for
// reporting. Recurring timer events and their whole subtrees are dropped so
// reports stay about the interesting events; depth is bounded by maxDepth,
// with deeper events surfacing as roots.
func BuildForest(resolved []*events.Event, maxDepth int) []*Tree {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	evts := append([]*events.Event(nil), resolved...)
	sort.Slice(evts, func(i, j int) bool { return evts[i].Seq < evts[j].Seq })

	bySeq := make(map[int64]*events.Event, len(evts))
	for _, e := range evts {
		bySeq[e.Seq] = e
	}

	// An event under a recurring ancestor is part of the timer's routine work
	var underRecurring func(e *events.Event) bool
	underRecurring = func(e *events.Event) bool {
		if e.Type.Recurring() {
			return true
		}
		parent, ok := bySeq[e.ParentSeq]
		if !ok {
			return false
		}
		return underRecurring(parent)
	}

	depthOf := func(e *events.Event) int {
		depth := 0
		for {
			parent, ok := bySeq[e.ParentSeq]
			if !ok {
				return depth
			}
			depth++
			e = parent
		}
	}

	nodes := make(map[int64]*Tree)
	var forest []*Tree
	for _, e := range evts {
		if underRecurring(e) {
			continue
		}
		node := &Tree{Event: e}
		nodes[e.Seq] = node

		parent, inPass := nodes[e.ParentSeq]
		if inPass && depthOf(e) < maxDepth {
			parent.Children = append(parent.Children, node)
		} else {
			forest = append(forest, node)
		}
	}
	return forest
}
