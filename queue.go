package collections

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Queue is a FIFO container backed by a circular buffer. Logical element i is
// stored at (head+i) mod capacity. When the buffer is full it doubles and the
// contents are linearized so that head is 0 again.
// The zero value for a Queue is not ready to use; NewQueue must be called.
//
// Queue คือคิวแบบ FIFO ที่ใช้ circular buffer
type Queue struct {
	elements []float64 // len(elements) is the capacity
	head     int
	count    int
	cfg      *config
}

// NewQueue creates an empty queue with DefaultCapacity unless WithCapacity is given.
func NewQueue(opts ...Option) *Queue {
	cfg := newConfig(opts)
	return &Queue{
		elements: make([]float64, cfg.capacity),
		cfg:      cfg,
	}
}

func (q *Queue) check() error {
	if q == nil {
		return invalid(errNilContainer)
	}
	if q.elements == nil {
		return invalid(errDestroyed)
	}
	return nil
}

// grow doubles the buffer, copying the live elements to indexes [0, count).
func (q *Queue) grow() error {
	oldCap := len(q.elements)
	newCap, err := q.cfg.grownCapacity(oldCap)
	if err != nil {
		return err
	}
	grown := make([]float64, newCap)
	for i := 0; i < q.count; i++ {
		grown[i] = q.elements[(q.head+i)%oldCap]
	}
	q.cfg.logger.Debug("queue grown",
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", newCap),
		zap.Int("old_head", q.head),
	)
	q.elements = grown
	q.head = 0
	return nil
}

// Enqueue appends value at the back of the queue.
func (q *Queue) Enqueue(value float64) error {
	if err := q.check(); err != nil {
		return err
	}
	if q.count == len(q.elements) {
		if err := q.grow(); err != nil {
			return fmt.Errorf("queue enqueue: %w", err)
		}
	}
	q.elements[(q.head+q.count)%len(q.elements)] = value
	q.count++
	return nil
}

// Dequeue removes and returns the value at the front of the queue.
func (q *Queue) Dequeue() (float64, error) {
	if err := q.check(); err != nil {
		return 0, err
	}
	if q.count == 0 {
		return 0, fmt.Errorf("queue dequeue: %w", ErrEmpty)
	}
	value := q.elements[q.head]
	q.head = (q.head + 1) % len(q.elements)
	q.count--
	return value, nil
}

// Peek returns the value at the front of the queue without removing it.
func (q *Queue) Peek() (float64, error) {
	if err := q.check(); err != nil {
		return 0, err
	}
	if q.count == 0 {
		return 0, fmt.Errorf("queue peek: %w", ErrEmpty)
	}
	return q.elements[q.head], nil
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	if q.check() != nil {
		return 0
	}
	return q.count
}

// Cap returns the capacity of the circular buffer.
func (q *Queue) Cap() int {
	if q.check() != nil {
		return 0
	}
	return len(q.elements)
}

// Values returns a copy of the queue from front to back.
func (q *Queue) Values() []float64 {
	if q.check() != nil {
		return nil
	}
	out := make([]float64, q.count)
	for i := range out {
		out[i] = q.elements[(q.head+i)%len(q.elements)]
	}
	return out
}

// Destroy releases the buffer. Any further call fails with ErrInvalidArgument.
func (q *Queue) Destroy() error {
	if err := q.check(); err != nil {
		return err
	}
	q.cfg.logger.Debug("queue destroyed", zap.Int("capacity", len(q.elements)))
	q.elements = nil
	q.head, q.count = 0, 0
	return nil
}

// Close is an alias for Destroy.
func (q *Queue) Close() error {
	return q.Destroy()
}

// Dump writes the queue from front to back, e.g. "Queue: [1.00, 2.00]".
func (q *Queue) Dump(w io.Writer) error {
	if err := q.check(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Queue: %s\n", formatValues(q.Values()))
	return err
}

func (q *Queue) String() string {
	var b strings.Builder
	if err := q.Dump(&b); err != nil {
		return "<invalid queue>"
	}
	return strings.TrimSuffix(b.String(), "\n")
}
