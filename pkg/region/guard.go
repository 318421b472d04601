package region

// Acquisition is not a lock: execution is single-threaded, and a failed
// attempt means the region is already held further up the same call chain.

// TryAcquire takes exclusive access to r. It fails while any other holder,
// shared or exclusive, is active. release must be called exactly once.
func (r *Region) TryAcquire() (release func(), ok bool) {
	if r.borrow != 0 {
		return nil, false
	}

	r.borrow = -1
	return func() { r.borrow = 0 }, true
}

// TryAcquireShared takes shared access to r. It fails only while r is held
// exclusively. release must be called exactly once.
func (r *Region) TryAcquireShared() (release func(), ok bool) {
	if r.borrow < 0 {
		return nil, false
	}

	r.borrow++
	return func() { r.borrow-- }, true
}

// Held reports whether any acquisition of r is outstanding
func (r *Region) Held() bool {
	return r.borrow != 0
}
