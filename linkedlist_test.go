package collections

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
	"github.com/stretchr/testify/require"
)

func TestLinkedList(t *testing.T) {
	for _, setup := range getTestSetups() {
		t.Run(setup.name, func(t *testing.T) {
			l := NewLinkedList(setup.opts...)
			defer l.Close()

			require.NoError(t, l.InsertTail(2))
			require.NoError(t, l.InsertHead(1))
			require.NoError(t, l.InsertTail(4))
			require.NoError(t, l.InsertAt(3, 2))
			require.NoError(t, l.InsertAt(0, 0))
			require.NoError(t, l.InsertAt(5, l.Len()))
			require.Equal(t, []float64{0, 1, 2, 3, 4, 5}, l.Values())

			v, err := l.RemoveHead()
			require.NoError(t, err)
			require.Equal(t, 0.0, v)

			v, err = l.RemoveTail()
			require.NoError(t, err)
			require.Equal(t, 5.0, v)

			v, err = l.RemoveAt(1)
			require.NoError(t, err)
			require.Equal(t, 2.0, v)
			require.Equal(t, []float64{1, 3, 4}, l.Values())

			// Tail must still be correct after removals in the middle and at the end.
			require.NoError(t, l.InsertTail(9))
			require.Equal(t, []float64{1, 3, 4, 9}, l.Values())
		})
	}
}

func TestLinkedList_InsertAtThenGet(t *testing.T) {
	for _, setup := range getTestSetups() {
		t.Run(setup.name, func(t *testing.T) {
			l := NewLinkedList(setup.opts...)
			defer l.Close()

			for i := 0; i < 5; i++ {
				require.NoError(t, l.InsertTail(float64(i)))
			}
			for i := 0; i <= l.Len(); i++ {
				value := 100 + float64(i)
				require.NoError(t, l.InsertAt(value, i))
				got, err := l.Get(i)
				require.NoError(t, err)
				require.Equal(t, value, got, "index %d", i)
				_, err = l.RemoveAt(i)
				require.NoError(t, err)
			}

			err := l.InsertAt(1, l.Len()+1)
			require.ErrorIs(t, err, ErrIndexOutOfRange)
			require.ErrorIs(t, l.InsertAt(1, -1), ErrIndexOutOfRange)
			require.Equal(t, 5, l.Len())
		})
	}
}

func TestLinkedList_EmptyAndBounds(t *testing.T) {
	l := NewLinkedList()
	defer l.Close()

	_, err := l.RemoveHead()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = l.RemoveTail()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = l.RemoveAt(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.Get(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	// index == size on an empty list appends.
	require.NoError(t, l.InsertAt(7, 0))
	require.Same(t, l.head, l.tail)

	_, err = l.RemoveAt(1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	v, err := l.RemoveAt(0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
	require.Nil(t, l.head)
	require.Nil(t, l.tail)
}

func TestLinkedList_TailInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	l := NewLinkedList()
	defer l.Close()

	for i := 0; i < 2000; i++ {
		switch r.IntN(6) {
		case 0:
			_ = l.InsertHead(r.Float64())
		case 1:
			_ = l.InsertTail(r.Float64())
		case 2:
			_ = l.InsertAt(r.Float64(), r.IntN(l.Len()+1))
		case 3:
			_, _ = l.RemoveHead()
		case 4:
			_, _ = l.RemoveTail()
		case 5:
			if l.Len() > 0 {
				_, _ = l.RemoveAt(r.IntN(l.Len()))
			}
		}

		// Following next from head exactly count times reaches nil, and tail is the last node.
		var last *listNode
		current := l.head
		for j := 0; j < l.count; j++ {
			require.NotNil(t, current)
			last = current
			current = current.next
		}
		require.Nil(t, current)
		require.Same(t, last, l.tail)
	}
}

func TestLinkedList_MatchesReference(t *testing.T) {
	for _, setup := range getTestSetups() {
		t.Run(setup.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(9, 10))
			l := NewLinkedList(setup.opts...)
			defer l.Close()
			ref := singlylinkedlist.New()

			for i := 0; i < 3000; i++ {
				switch r.IntN(3) {
				case 0, 1:
					index := r.IntN(ref.Size() + 1)
					v := r.Float64()
					require.NoError(t, l.InsertAt(v, index))
					ref.Insert(index, v)
				case 2:
					if ref.Size() == 0 {
						continue
					}
					index := r.IntN(ref.Size())
					want, _ := ref.Get(index)
					got, err := l.RemoveAt(index)
					require.NoError(t, err)
					require.Equal(t, want, got)
					ref.Remove(index)
				}
			}

			want := make([]float64, 0, ref.Size())
			for _, v := range ref.Values() {
				want = append(want, v.(float64))
			}
			require.Equal(t, want, l.Values())
		})
	}
}

func TestLinkedList_Range(t *testing.T) {
	l := NewLinkedList()
	defer l.Close()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.InsertTail(float64(i)))
	}

	var seen []int
	l.Range(func(index int, value float64) bool {
		seen = append(seen, index)
		return value < 2
	})
	require.Equal(t, []int{0, 1, 2}, seen)
}

func TestLinkedList_DestroyReleasesEveryNode(t *testing.T) {
	tracker := newTrackingAllocator[listNode]()
	l := NewLinkedList(withListAllocator(tracker))

	for i := 0; i < 50; i++ {
		require.NoError(t, l.InsertTail(float64(i)))
	}
	for i := 0; i < 10; i++ {
		_, err := l.RemoveAt(i)
		require.NoError(t, err)
	}
	require.Equal(t, 40, len(tracker.live))

	require.NoError(t, l.Destroy())
	tracker.assertBalanced(t)
	require.Equal(t, 1, tracker.releases)

	require.ErrorIs(t, l.Destroy(), ErrInvalidArgument)
	tracker.assertBalanced(t)
	require.ErrorIs(t, l.InsertHead(1), ErrInvalidArgument)
}

func TestLinkedList_AllocationFailure(t *testing.T) {
	tracker := newTrackingAllocator[listNode]()
	tracker.failAfter = 2
	l := NewLinkedList(withListAllocator(tracker))
	defer l.Close()

	require.NoError(t, l.InsertTail(1))
	require.NoError(t, l.InsertTail(2))
	err := l.InsertAt(3, 1)
	require.ErrorIs(t, err, ErrAllocation)
	require.True(t, errors.Is(err, errInjected))
	require.Equal(t, []float64{1, 2}, l.Values())

	limited := NewLinkedList(WithMaxCapacity(1))
	defer limited.Close()
	require.NoError(t, limited.InsertHead(1))
	require.ErrorIs(t, limited.InsertHead(2), ErrAllocation)
	require.Equal(t, 1, limited.Len())
}

func TestLinkedList_Dump(t *testing.T) {
	l := NewLinkedList()
	defer l.Close()
	require.Equal(t, "List (size 0): NULL", l.String())

	require.NoError(t, l.InsertTail(1))
	require.NoError(t, l.InsertTail(2))
	require.Equal(t, "List (size 2): [1.00] -> [2.00] -> NULL", l.String())
}
