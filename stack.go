package collections

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Stack is a LIFO container backed by a dynamic array that doubles when full.
// The zero value for a Stack is not ready to use; NewStack must be called.
// Stack คือโครงสร้างแบบ LIFO ที่ขยายขนาดเป็นสองเท่าเมื่อเต็ม
type Stack struct {
	elements []float64 // len(elements) is the capacity
	count    int
	cfg      *config
}

// NewStack creates an empty stack with DefaultCapacity unless WithCapacity is given.
func NewStack(opts ...Option) *Stack {
	cfg := newConfig(opts)
	return &Stack{
		elements: make([]float64, cfg.capacity),
		cfg:      cfg,
	}
}

func (s *Stack) check() error {
	if s == nil {
		return invalid(errNilContainer)
	}
	if s.elements == nil {
		return invalid(errDestroyed)
	}
	return nil
}

// Push places value on top of the stack, doubling the capacity first if the stack is full.
func (s *Stack) Push(value float64) error {
	if err := s.check(); err != nil {
		return err
	}
	if s.count == len(s.elements) {
		newCap, err := s.cfg.grownCapacity(len(s.elements))
		if err != nil {
			return fmt.Errorf("stack push: %w", err)
		}
		grown := make([]float64, newCap)
		copy(grown, s.elements[:s.count])
		s.cfg.logger.Debug("stack grown",
			zap.Int("old_capacity", len(s.elements)),
			zap.Int("new_capacity", newCap),
		)
		s.elements = grown
	}
	s.elements[s.count] = value
	s.count++
	return nil
}

// Pop removes and returns the most recently pushed value.
func (s *Stack) Pop() (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if s.count == 0 {
		return 0, fmt.Errorf("stack pop: %w", ErrEmpty)
	}
	s.count--
	return s.elements[s.count], nil
}

// Peek returns the most recently pushed value without removing it.
func (s *Stack) Peek() (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if s.count == 0 {
		return 0, fmt.Errorf("stack peek: %w", ErrEmpty)
	}
	return s.elements[s.count-1], nil
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	if s.check() != nil {
		return 0
	}
	return s.count
}

// Cap returns the capacity of the backing array. It never shrinks.
func (s *Stack) Cap() int {
	if s.check() != nil {
		return 0
	}
	return len(s.elements)
}

// Values returns a copy of the stack from bottom to top.
func (s *Stack) Values() []float64 {
	if s.check() != nil {
		return nil
	}
	return append([]float64(nil), s.elements[:s.count]...)
}

// Destroy releases the backing array. Any further call fails with ErrInvalidArgument.
func (s *Stack) Destroy() error {
	if err := s.check(); err != nil {
		return err
	}
	s.cfg.logger.Debug("stack destroyed", zap.Int("capacity", len(s.elements)))
	s.elements = nil
	s.count = 0
	return nil
}

// Close is an alias for Destroy.
func (s *Stack) Close() error {
	return s.Destroy()
}

// Dump writes the stack from bottom to top, e.g. "Values in current stack: [1.00, 2.00]".
func (s *Stack) Dump(w io.Writer) error {
	if err := s.check(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Values in current stack: %s\n", formatValues(s.elements[:s.count]))
	return err
}

func (s *Stack) String() string {
	var b strings.Builder
	if err := s.Dump(&b); err != nil {
		return "<invalid stack>"
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// formatValues renders values as "[1.00, 2.00]".
func formatValues(values []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.2f", v)
	}
	b.WriteByte(']')
	return b.String()
}
