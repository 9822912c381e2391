// Package listbacking provides the two interchangeable backing
// structures the config file's "list" key chooses between: a
// slice-based deque ("vecdeque") and a doubly linked list
// ("linkedlist"). internal/store talks to both only through the List
// interface, so it never branches on which one a given key's value
// holds.
package listbacking

// List is an ordered sequence of strings supporting push/pop at both
// ends — the shape backing the List value kind.
type List interface {
	Len() int
	PushFront(v string)
	PushBack(v string)
	PopFront() (string, bool)
	PopBack() (string, bool)
	// Range returns a copy of the elements from index start to stop,
	// inclusive, both already clamped into [0, Len()). Callers are
	// responsible for resolving negative indices and empty ranges before
	// calling Range.
	Range(start, stop int) []string
}

// Kind names which backing a new list should use.
type Kind int

const (
	VecDeque Kind = iota
	LinkedList
)

// New creates an empty List using the requested backing.
func New(k Kind) List {
	switch k {
	case LinkedList:
		return newLinked()
	default:
		return newDeque()
	}
}
