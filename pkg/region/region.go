package region

import (
	"fmt"
)

// MaxSize is the largest region a program may declare, 16 MiB.
const MaxSize = 1 << 24

var ErrInvalidSize = fmt.Errorf("region size must be between 1 and %d", MaxSize)

// Region is a fixed-size circular byte tape with a cursor.
type Region struct {
	name    string
	bytes   []byte
	pointer int
	borrow  int // >0 shared holders, -1 exclusive holder, 0 free
}

// New creates a zeroed region of size cells with the cursor at 0
func New(name string, size int) (*Region, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("region %q of %d cells: %w", name, size, ErrInvalidSize)
	}

	return &Region{
		name:  name,
		bytes: make([]byte, size),
	}, nil
}

func (r *Region) Name() string {
	return r.name
}

// Len returns the number of cells
func (r *Region) Len() int {
	return len(r.bytes)
}

// Cursor returns the current address
func (r *Region) Cursor() int {
	return r.pointer
}

// Bytes returns a copy of the tape contents
func (r *Region) Bytes() []byte {
	return append([]byte(nil), r.bytes...)
}

// Get returns the value of the current cell
func (r *Region) Get() byte {
	return r.bytes[r.pointer]
}

// Set overwrites the current cell
func (r *Region) Set(v byte) {
	r.bytes[r.pointer] = v
}

// Increment adds one to the current cell, wrapping 255 to 0
func (r *Region) Increment() {
	r.bytes[r.pointer]++
}

// Decrement subtracts one from the current cell, wrapping 0 to 255
func (r *Region) Decrement() {
	r.bytes[r.pointer]--
}

// MoveRight advances the cursor, wrapping past the last cell to 0
func (r *Region) MoveRight() {
	if r.pointer == len(r.bytes)-1 {
		r.pointer = 0
	} else {
		r.pointer++
	}
}

// MoveLeft retreats the cursor, wrapping past 0 to the last cell
func (r *Region) MoveLeft() {
	if r.pointer == 0 {
		r.pointer = len(r.bytes) - 1
	} else {
		r.pointer--
	}
}

// Jump moves the cursor to target when it is in bounds, otherwise to fallback.
// An out-of-bounds fallback leaves the cursor where it is. It reports whether
// target was taken.
func (r *Region) Jump(target, fallback int) bool {
	if r.inBounds(target) {
		r.pointer = target
		return true
	}

	if r.inBounds(fallback) {
		r.pointer = fallback
	}
	return false
}

func (r *Region) inBounds(addr int) bool {
	return addr >= 0 && addr < len(r.bytes)
}

func (r *Region) String() string {
	return fmt.Sprintf("%s[%d]@%d", r.name, len(r.bytes), r.pointer)
}
