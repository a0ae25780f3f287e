package tabu

// Entry is an element that may be absent. The zero Entry is the "no element" sentinel and
// never matches a real element.
type Entry[E comparable] struct {
	Element E
	Valid   bool
}

func Some[E comparable](element E) Entry[E] {
	return Entry[E]{Element: element, Valid: true}
}

func None[E comparable]() Entry[E] {
	return Entry[E]{}
}

// tabuList is a fixed-length FIFO of 2*tenure entries. Each iteration pushes exactly two
// entries (the removed element, then the inserted one), so it holds the last tenure
// removals and the last tenure insertions.
type tabuList[E comparable] struct {
	entries []Entry[E]
	head    int // position of the oldest entry
}

func newTabuList[E comparable](tenure int) *tabuList[E] {
	return &tabuList[E]{
		entries: make([]Entry[E], 2*tenure), // Pre-filled with sentinels
	}
}

// Contains checks whether element is currently forbidden
func (list *tabuList[E]) Contains(element E) bool {
	for _, entry := range list.entries {
		if entry.Valid && entry.Element == element {
			return true
		}
	}
	return false
}

// Push evicts the oldest entry and appends entry as the newest one
func (list *tabuList[E]) Push(entry Entry[E]) {
	list.entries[list.head] = entry
	list.head = (list.head + 1) % len(list.entries)
}

func (list *tabuList[E]) Len() int {
	return len(list.entries)
}

// Entries returns the entries from oldest to newest
func (list *tabuList[E]) Entries() []Entry[E] {
	ordered := make([]Entry[E], 0, len(list.entries))
	ordered = append(ordered, list.entries[list.head:]...)
	return append(ordered, list.entries[:list.head]...)
}
