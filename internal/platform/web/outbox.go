package web

import (
	"sync"
	"sync/atomic"
)

// Outbox buffers encoded frames for one connection's writer.
// Send never blocks: when the buffer is full the oldest frame is dropped.
type Outbox struct {
	id       uint64
	frames   chan []byte
	done     chan struct{}
	doneOnce sync.Once
	dropped  atomic.Uint64
}

// NewOutbox creates an outbox holding up to size frames.
func NewOutbox(id uint64, size int) *Outbox {
	if size < 1 {
		size = 64
	}
	return &Outbox{
		id:     id,
		frames: make(chan []byte, size),
		done:   make(chan struct{}),
	}
}

// ID returns the connection identifier.
func (o *Outbox) ID() uint64 {
	return o.id
}

// Send queues a frame. Frames sent after Close are discarded.
func (o *Outbox) Send(frame []byte) {
	select {
	case <-o.done:
		return
	default:
	}

	select {
	case o.frames <- frame:
		return
	default:
	}

	// Full: drop the oldest and retry once.
	select {
	case <-o.frames:
		o.dropped.Add(1)
	default:
	}
	select {
	case o.frames <- frame:
	default:
		o.dropped.Add(1)
	}
}

// Frames is read by the connection writer.
func (o *Outbox) Frames() <-chan []byte {
	return o.frames
}

// Dropped reports how many frames were discarded because the client was slow.
func (o *Outbox) Dropped() uint64 {
	return o.dropped.Load()
}

// Done closes when the outbox is closed.
func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

// Close marks the outbox as done. Safe to call multiple times.
func (o *Outbox) Close() {
	o.doneOnce.Do(func() {
		close(o.done)
	})
}

// Sessions tracks live connections.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[uint64]*Outbox
	nextID   atomic.Uint64
}

// NewSessions creates an empty session set.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[uint64]*Outbox)}
}

// Open registers a new outbox and returns it.
func (s *Sessions) Open(size int) *Outbox {
	o := NewOutbox(s.nextID.Add(1), size)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[o.ID()] = o
	return o
}

// Remove closes and forgets the outbox.
func (s *Sessions) Remove(o *Outbox) {
	o.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, o.ID())
}

// Count returns the number of live sessions.
func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CloseAll closes every live outbox.
func (s *Sessions) CloseAll() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.sessions {
		o.Close()
	}
}
