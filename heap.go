package collections

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Heap is a max-priority queue stored as a complete binary tree in an array:
// the children of index i are 2i+1 and 2i+2 and its parent is (i-1)/2. Every
// node is >= both of its children, so the maximum is always at index 0.
// The backing array doubles when full.
// The zero value for a Heap is not ready to use; NewHeap must be called.
//
// Heap คือ max-heap ที่เก็บข้อมูลในอาร์เรย์ ค่าที่มากที่สุดอยู่ที่ตำแหน่ง 0 เสมอ
type Heap struct {
	elements []float64 // len(elements) is the capacity
	count    int
	cfg      *config
}

// NewHeap creates an empty heap with DefaultCapacity unless WithCapacity is given.
func NewHeap(opts ...Option) *Heap {
	cfg := newConfig(opts)
	return &Heap{
		elements: make([]float64, cfg.capacity),
		cfg:      cfg,
	}
}

func (h *Heap) check() error {
	if h == nil {
		return invalid(errNilContainer)
	}
	if h.elements == nil {
		return invalid(errDestroyed)
	}
	return nil
}

// Insert adds value and sifts it up until its parent is not smaller.
// O(log n).
func (h *Heap) Insert(value float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if h.count == len(h.elements) {
		newCap, err := h.cfg.grownCapacity(len(h.elements))
		if err != nil {
			return fmt.Errorf("heap insert: %w", err)
		}
		grown := make([]float64, newCap)
		copy(grown, h.elements[:h.count])
		h.cfg.logger.Debug("heap grown",
			zap.Int("old_capacity", len(h.elements)),
			zap.Int("new_capacity", newCap),
		)
		h.elements = grown
	}
	h.elements[h.count] = value
	h.count++
	h.siftUp(h.count - 1)
	return nil
}

func (h *Heap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !(h.elements[i] > h.elements[parent]) {
			return
		}
		h.elements[i], h.elements[parent] = h.elements[parent], h.elements[i]
		i = parent
	}
}

func (h *Heap) siftDown(i int) {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < h.count && h.elements[left] > h.elements[largest] {
			largest = left
		}
		if right < h.count && h.elements[right] > h.elements[largest] {
			largest = right
		}
		if largest == i {
			return
		}
		h.elements[i], h.elements[largest] = h.elements[largest], h.elements[i]
		i = largest
	}
}

// Peek returns the maximum without removing it. O(1).
func (h *Heap) Peek() (float64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}
	if h.count == 0 {
		return 0, fmt.Errorf("heap peek: %w", ErrEmpty)
	}
	return h.elements[0], nil
}

// PopMax removes and returns the maximum. The last element takes the root's
// place and sifts down. O(log n).
func (h *Heap) PopMax() (float64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}
	if h.count == 0 {
		return 0, fmt.Errorf("heap pop max: %w", ErrEmpty)
	}
	root := h.elements[0]
	h.count--
	h.elements[0] = h.elements[h.count]
	h.siftDown(0)
	return root, nil
}

// Len returns the number of values in the heap.
func (h *Heap) Len() int {
	if h.check() != nil {
		return 0
	}
	return h.count
}

// Cap returns the capacity of the backing array.
func (h *Heap) Cap() int {
	if h.check() != nil {
		return 0
	}
	return len(h.elements)
}

// Values returns a copy of the heap in array order.
func (h *Heap) Values() []float64 {
	if h.check() != nil {
		return nil
	}
	return append([]float64(nil), h.elements[:h.count]...)
}

// Destroy releases the backing array. Any further call fails with ErrInvalidArgument.
func (h *Heap) Destroy() error {
	if err := h.check(); err != nil {
		return err
	}
	h.cfg.logger.Debug("heap destroyed", zap.Int("capacity", len(h.elements)))
	h.elements = nil
	h.count = 0
	return nil
}

// Close is an alias for Destroy.
func (h *Heap) Close() error {
	return h.Destroy()
}

// Dump writes the heap in array order, e.g. "Heap: [9.00, 4.00]".
func (h *Heap) Dump(w io.Writer) error {
	if err := h.check(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Heap: %s\n", formatValues(h.elements[:h.count]))
	return err
}

func (h *Heap) String() string {
	var b strings.Builder
	if err := h.Dump(&b); err != nil {
		return "<invalid heap>"
	}
	return strings.TrimSuffix(b.String(), "\n")
}
