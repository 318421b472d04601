package region_test

import (
	"cae/pkg/region"
	"errors"
	"testing"
)

func newRegion(t *testing.T, size int) *region.Region {
	t.Helper()
	r, err := region.New("main", size)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return r
}

func TestNewRejectsBadSizes(t *testing.T) {
	for _, size := range []int{0, -3, region.MaxSize + 1, 9000000000000000000} {
		if _, err := region.New("r", size); !errors.Is(err, region.ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestNewAcceptsMaxSize(t *testing.T) {
	if r := newRegion(t, region.MaxSize); r.Len() != region.MaxSize {
		t.Errorf("expected %d cells, got %d", region.MaxSize, r.Len())
	}
}

func TestMoveWrapsAround(t *testing.T) {
	for _, size := range []int{1, 2, 7, 256} {
		r := newRegion(t, size)
		r.Jump(size/2, 0)
		start := r.Cursor()

		for range size {
			r.MoveRight()
		}
		if r.Cursor() != start {
			t.Errorf("size %d: %d moves right ended at %d, expected %d", size, size, r.Cursor(), start)
		}

		for range size {
			r.MoveLeft()
		}
		if r.Cursor() != start {
			t.Errorf("size %d: %d moves left ended at %d, expected %d", size, size, r.Cursor(), start)
		}
	}
}

func TestMoveEdges(t *testing.T) {
	r := newRegion(t, 3)

	r.MoveLeft()
	if r.Cursor() != 2 {
		t.Errorf("left from 0: expected 2, got %d", r.Cursor())
	}

	r.MoveRight()
	if r.Cursor() != 0 {
		t.Errorf("right from last: expected 0, got %d", r.Cursor())
	}
}

func TestIncrementDecrementIdentity(t *testing.T) {
	r := newRegion(t, 1)

	for v := 0; v < 256; v++ {
		r.Set(byte(v))
		r.Increment()
		r.Decrement()
		if got := r.Get(); got != byte(v) {
			t.Errorf("inc/dec of %d gave %d", v, got)
		}

		r.Decrement()
		r.Increment()
		if got := r.Get(); got != byte(v) {
			t.Errorf("dec/inc of %d gave %d", v, got)
		}
	}
}

func TestByteWraparound(t *testing.T) {
	r := newRegion(t, 1)

	r.Set(255)
	r.Increment()
	if r.Get() != 0 {
		t.Errorf("255+1: expected 0, got %d", r.Get())
	}

	r.Decrement()
	if r.Get() != 255 {
		t.Errorf("0-1: expected 255, got %d", r.Get())
	}
}

func TestCellsAreIndependent(t *testing.T) {
	r := newRegion(t, 3)
	r.Set(7)
	r.MoveRight()
	r.Set(9)

	if got := r.Bytes(); got[0] != 7 || got[1] != 9 || got[2] != 0 {
		t.Errorf("unexpected tape %v", got)
	}
}

func TestJump(t *testing.T) {
	r := newRegion(t, 4)

	if !r.Jump(3, 0) || r.Cursor() != 3 {
		t.Errorf("in-bounds jump: cursor %d", r.Cursor())
	}

	if r.Jump(4, 1) || r.Cursor() != 1 {
		t.Errorf("out-of-bounds jump should fall back to 1, cursor %d", r.Cursor())
	}

	if r.Jump(-1, 9) || r.Cursor() != 1 {
		t.Errorf("invalid fallback should keep cursor at 1, got %d", r.Cursor())
	}
}

func TestExclusiveBlocksEverything(t *testing.T) {
	r := newRegion(t, 1)

	release, ok := r.TryAcquire()
	if !ok {
		t.Fatal("first exclusive acquisition failed")
	}

	if _, ok := r.TryAcquire(); ok {
		t.Error("second exclusive acquisition succeeded")
	}
	if _, ok := r.TryAcquireShared(); ok {
		t.Error("shared acquisition succeeded while held exclusively")
	}

	release()
	if r.Held() {
		t.Error("region still held after release")
	}
}

func TestSharedAllowsShared(t *testing.T) {
	r := newRegion(t, 1)

	first, ok := r.TryAcquireShared()
	if !ok {
		t.Fatal("shared acquisition failed")
	}
	second, ok := r.TryAcquireShared()
	if !ok {
		t.Fatal("second shared acquisition failed")
	}

	if _, ok := r.TryAcquire(); ok {
		t.Error("exclusive acquisition succeeded while shared")
	}

	first()
	second()
	if _, ok := r.TryAcquire(); !ok {
		t.Error("exclusive acquisition failed after all releases")
	}
}
