package cli

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/INLOpen/collections"
)

// Result describes one workload run.
type Result struct {
	Structure string
	Items     int
	Duration  time.Duration
	// Capacity is the backing capacity reached before teardown: elements for the
	// stack, queue and heap, buckets for the hash table, nodes for the list.
	Capacity int
}

// NsPerOp returns the mean duration of one insert/remove pair.
func (r Result) NsPerOp() float64 {
	if r.Items == 0 {
		return 0
	}
	return float64(r.Duration.Nanoseconds()) / float64(r.Items)
}

type workload func(items int, opts []collections.Option) (int, error)

var workloads = map[string]workload{
	"stack":      stackWorkload,
	"queue":      queueWorkload,
	"linkedlist": linkedListWorkload,
	"hashtable":  hashTableWorkload,
	"heap":       heapWorkload,
}

// Names returns the known workload names in sorted order.
func Names() []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run fills the named container with items values, drains it and destroys it.
func Run(name string, items int, logger *zap.Logger, opts ...collections.Option) (Result, error) {
	w, ok := workloads[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown structure %q, expected one of %v", name, Names())
	}
	opts = append([]collections.Option{collections.WithLogger(logger)}, opts...)

	start := time.Now()
	capacity, err := w(items, opts)
	if err != nil {
		return Result{}, fmt.Errorf("%s workload: %w", name, err)
	}
	return Result{
		Structure: name,
		Items:     items,
		Duration:  time.Since(start),
		Capacity:  capacity,
	}, nil
}

func stackWorkload(items int, opts []collections.Option) (int, error) {
	s := collections.NewStack(opts...)
	defer s.Close()
	for i := 0; i < items; i++ {
		if err := s.Push(float64(i)); err != nil {
			return 0, err
		}
	}
	capacity := s.Cap()
	for s.Len() > 0 {
		if _, err := s.Pop(); err != nil {
			return 0, err
		}
	}
	return capacity, nil
}

func queueWorkload(items int, opts []collections.Option) (int, error) {
	q := collections.NewQueue(opts...)
	defer q.Close()
	// Keep the buffer wrapped while it grows.
	for i := 0; i < items; i++ {
		if err := q.Enqueue(float64(i)); err != nil {
			return 0, err
		}
		if i%4 == 0 {
			if _, err := q.Dequeue(); err != nil {
				return 0, err
			}
		}
	}
	capacity := q.Cap()
	for q.Len() > 0 {
		if _, err := q.Dequeue(); err != nil {
			return 0, err
		}
	}
	return capacity, nil
}

func linkedListWorkload(items int, opts []collections.Option) (int, error) {
	l := collections.NewLinkedList(opts...)
	defer l.Close()
	for i := 0; i < items; i++ {
		var err error
		if i%2 == 0 {
			err = l.InsertHead(float64(i))
		} else {
			err = l.InsertTail(float64(i))
		}
		if err != nil {
			return 0, err
		}
	}
	peak := l.Len()
	for l.Len() > 0 {
		if _, err := l.RemoveHead(); err != nil {
			return 0, err
		}
	}
	return peak, nil
}

func hashTableWorkload(items int, opts []collections.Option) (int, error) {
	h := collections.NewHashTable(opts...)
	defer h.Close()
	for i := 0; i < items; i++ {
		if err := h.Insert(strconv.Itoa(i), float64(i)); err != nil {
			return 0, err
		}
	}
	capacity := h.Cap()
	for i := 0; i < items; i++ {
		if err := h.Delete(strconv.Itoa(i)); err != nil {
			return 0, err
		}
	}
	return capacity, nil
}

func heapWorkload(items int, opts []collections.Option) (int, error) {
	h := collections.NewHeap(opts...)
	defer h.Close()
	for i := 0; i < items; i++ {
		// Spread values so sift-up does real work.
		if err := h.Insert(float64((i * 7919) % (items + 1))); err != nil {
			return 0, err
		}
	}
	capacity := h.Cap()
	for h.Len() > 0 {
		if _, err := h.PopMax(); err != nil {
			return 0, err
		}
	}
	return capacity, nil
}
