package collections

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// listNode is a single link in a LinkedList. Each node is owned by its predecessor,
// the first one by the list.
type listNode struct {
	value float64
	next  *listNode
}

// LinkedList is a singly linked list with head and tail references. Inserting and
// removing at the head and inserting at the tail are O(1); every other positional
// operation walks the list from the head.
// The zero value for a LinkedList is not ready to use; NewLinkedList must be called.
//
// LinkedList คือ singly linked list ที่เก็บตัวชี้ทั้ง head และ tail
type LinkedList struct {
	head      *listNode
	tail      *listNode // last node, not an owner
	count     int
	allocator nodeAllocator[listNode]
	cfg       *config
	destroyed bool
}

// NewLinkedList creates an empty list. Nodes come from a sync.Pool unless WithArena is given.
func NewLinkedList(opts ...Option) *LinkedList {
	cfg := newConfig(opts)
	return &LinkedList{
		allocator: newNodeAllocator(cfg, cfg.listAllocator),
		cfg:       cfg,
	}
}

func (l *LinkedList) check() error {
	if l == nil {
		return invalid(errNilContainer)
	}
	if l.destroyed {
		return invalid(errDestroyed)
	}
	return nil
}

// newNode allocates a node holding value. It fails when the list is at its node limit.
func (l *LinkedList) newNode(value float64) (*listNode, error) {
	if l.cfg.maxCapacity > 0 && l.count >= l.cfg.maxCapacity {
		return nil, fmt.Errorf("%w: node limit %d reached", ErrAllocation, l.cfg.maxCapacity)
	}
	n, err := l.allocator.Get()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	n.value = value
	n.next = nil
	return n, nil
}

// at returns the node at index, which must be in [0, count).
func (l *LinkedList) at(index int) *listNode {
	current := l.head
	for i := 0; i < index; i++ {
		current = current.next
	}
	return current
}

// InsertHead inserts value at the front of the list.
func (l *LinkedList) InsertHead(value float64) error {
	if err := l.check(); err != nil {
		return err
	}
	n, err := l.newNode(value)
	if err != nil {
		return fmt.Errorf("linked list insert head: %w", err)
	}
	n.next = l.head
	l.head = n
	if l.count == 0 {
		l.tail = n
	}
	l.count++
	return nil
}

// InsertTail appends value at the end of the list.
func (l *LinkedList) InsertTail(value float64) error {
	if err := l.check(); err != nil {
		return err
	}
	n, err := l.newNode(value)
	if err != nil {
		return fmt.Errorf("linked list insert tail: %w", err)
	}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.count++
	return nil
}

// InsertAt inserts value so that it ends up at position index. Valid indexes are
// [0, Len()]; index == Len() appends.
func (l *LinkedList) InsertAt(value float64, index int) error {
	if err := l.check(); err != nil {
		return err
	}
	if index < 0 || index > l.count {
		return fmt.Errorf("linked list insert at %d (size %d): %w", index, l.count, ErrIndexOutOfRange)
	}
	if index == l.count {
		return l.InsertTail(value)
	}
	if index == 0 {
		return l.InsertHead(value)
	}
	n, err := l.newNode(value)
	if err != nil {
		return fmt.Errorf("linked list insert at %d: %w", index, err)
	}
	previous := l.at(index - 1)
	n.next = previous.next
	previous.next = n
	l.count++
	return nil
}

// RemoveHead removes the first node and returns its value.
func (l *LinkedList) RemoveHead() (float64, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	if l.head == nil {
		return 0, fmt.Errorf("linked list remove head: %w", ErrEmpty)
	}
	removed := l.head
	l.head = removed.next
	l.count--
	if l.count == 0 {
		l.tail = nil
	}
	value := removed.value
	l.allocator.Put(removed)
	return value, nil
}

// RemoveTail removes the last node and returns its value. It walks the list to
// find the new tail.
func (l *LinkedList) RemoveTail() (float64, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	if l.count == 0 {
		return 0, fmt.Errorf("linked list remove tail: %w", ErrEmpty)
	}
	if l.count == 1 {
		return l.RemoveHead()
	}
	secondToLast := l.at(l.count - 2)
	removed := secondToLast.next
	secondToLast.next = nil
	l.tail = secondToLast
	l.count--
	value := removed.value
	l.allocator.Put(removed)
	return value, nil
}

// RemoveAt removes the node at index and returns its value. Valid indexes are [0, Len()).
func (l *LinkedList) RemoveAt(index int) (float64, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	if index < 0 || index >= l.count {
		return 0, fmt.Errorf("linked list remove at %d (size %d): %w", index, l.count, ErrIndexOutOfRange)
	}
	if index == l.count-1 {
		return l.RemoveTail()
	}
	if index == 0 {
		return l.RemoveHead()
	}
	previous := l.at(index - 1)
	removed := previous.next
	previous.next = removed.next
	l.count--
	value := removed.value
	l.allocator.Put(removed)
	return value, nil
}

// Get returns the value at index. Valid indexes are [0, Len()).
func (l *LinkedList) Get(index int) (float64, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	if index < 0 || index >= l.count {
		return 0, fmt.Errorf("linked list get %d (size %d): %w", index, l.count, ErrIndexOutOfRange)
	}
	return l.at(index).value, nil
}

// Len returns the number of nodes.
func (l *LinkedList) Len() int {
	if l.check() != nil {
		return 0
	}
	return l.count
}

// Range calls f for each value from head to tail. If f returns false, iteration
// stops. f must not mutate the list.
func (l *LinkedList) Range(f func(index int, value float64) bool) {
	if l.check() != nil {
		return
	}
	i := 0
	for current := l.head; current != nil; current = current.next {
		if !f(i, current.value) {
			return
		}
		i++
	}
}

// Values returns a copy of the list from head to tail.
func (l *LinkedList) Values() []float64 {
	if l.check() != nil {
		return nil
	}
	out := make([]float64, 0, l.count)
	l.Range(func(_ int, value float64) bool {
		out = append(out, value)
		return true
	})
	return out
}

// Destroy releases every node and the allocator behind them. Any further call
// fails with ErrInvalidArgument.
func (l *LinkedList) Destroy() error {
	if err := l.check(); err != nil {
		return err
	}
	if !reclaimsNodes(l.allocator) {
		current := l.head
		for current != nil {
			next := current.next
			l.allocator.Put(current)
			current = next
		}
	}
	l.allocator.Release()
	l.cfg.logger.Debug("linked list destroyed", zap.Int("nodes", l.count))
	l.head, l.tail, l.count = nil, nil, 0
	l.allocator = nil
	l.destroyed = true
	return nil
}

// Close is an alias for Destroy.
func (l *LinkedList) Close() error {
	return l.Destroy()
}

// Dump writes the list from head to tail, e.g. "List (size 2): [1.00] -> [2.00] -> NULL".
func (l *LinkedList) Dump(w io.Writer) error {
	if err := l.check(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "List (size %d): ", l.count)
	for current := l.head; current != nil; current = current.next {
		fmt.Fprintf(&b, "[%.2f] -> ", current.value)
	}
	b.WriteString("NULL\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (l *LinkedList) String() string {
	var b strings.Builder
	if err := l.Dump(&b); err != nil {
		return "<invalid linked list>"
	}
	return strings.TrimSuffix(b.String(), "\n")
}
