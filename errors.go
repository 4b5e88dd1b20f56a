package collections

import (
	"errors"
	"fmt"
)

// Errors returned by the containers. They are sentinels: callers match them with
// errors.Is, and call sites wrap them with extra context (index, key, capacity).
//
// ข้อผิดพลาดทั้งหมดของแพ็กเกจ ใช้ errors.Is ในการตรวจสอบ
var (
	// ErrEmpty is returned by pop, peek, dequeue and remove operations on an empty container.
	ErrEmpty = errors.New("collections: container is empty")
	// ErrIndexOutOfRange is returned by positional linked list operations.
	ErrIndexOutOfRange = errors.New("collections: index out of range")
	// ErrNotFound is returned by hash table lookups and deletes of an absent key.
	ErrNotFound = errors.New("collections: key not found")
	// ErrAllocation is returned when backing storage cannot grow. The container is left unchanged.
	ErrAllocation = errors.New("collections: allocation failed")
	// ErrInvalidArgument is returned for nil or destroyed containers.
	ErrInvalidArgument = errors.New("collections: invalid argument")
)

var (
	errNilContainer = errors.New("container is nil")
	errDestroyed    = errors.New("container has been destroyed")
)

// invalid builds the ErrInvalidArgument error for a nil or destroyed container.
func invalid(reason error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, reason)
}
