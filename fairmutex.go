package vtcore

import "sync"

// fairMutex is a pair of locks (data + next-slot lease) that keeps a
// high-throughput PTY-reader producer from starving an occasional-access
// renderer consumer, per the fair-mutex design this module's concurrency
// section is grounded on.
//
// LockRenderer and LockReaderFair both take the lease, then the data lock,
// then release the lease, so at most one of them is queued on the data
// lock at a time. TryLockReader skips the lease entirely. The lease is held
// only while the data lock is being acquired; no operation here holds it
// across a reader's I/O.
type fairMutex struct {
	data  sync.Mutex
	lease sync.Mutex
}

// LockReaderFair acquires the data lock for the reader side through the
// lease, queueing behind a renderer that already holds the lease. It is the
// blocking fallback for when TryLockReader fails.
func (m *fairMutex) LockReaderFair() {
	m.lease.Lock()
	m.data.Lock()
	m.lease.Unlock()
}

// TryLockReader attempts the data lock without going through the lease,
// for the common case where the renderer is not contending.
func (m *fairMutex) TryLockReader() bool {
	return m.data.TryLock()
}

// LockRenderer always goes through the lease, guaranteeing it cannot be
// starved by a reader that keeps retrying TryLockReader in a loop.
func (m *fairMutex) LockRenderer() {
	m.lease.Lock()
	m.data.Lock()
	m.lease.Unlock()
}

// Unlock releases the data lock. Both reader and renderer call this after
// their critical section.
func (m *fairMutex) Unlock() { m.data.Unlock() }
