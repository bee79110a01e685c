package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(o *Outbox) []string {
	var out []string
	for {
		select {
		case f := <-o.Frames():
			out = append(out, string(f))
		default:
			return out
		}
	}
}

func TestOutboxDropsOldest(t *testing.T) {
	o := NewOutbox(1, 2)
	o.Send([]byte("a"))
	o.Send([]byte("b"))
	o.Send([]byte("c"))

	assert.Equal(t, []string{"b", "c"}, drain(o))
	assert.Equal(t, uint64(1), o.Dropped())
}

func TestOutboxDiscardsAfterClose(t *testing.T) {
	o := NewOutbox(1, 4)
	o.Close()
	o.Close()
	o.Send([]byte("late"))

	assert.Empty(t, drain(o))
	select {
	case <-o.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestOutboxDefaultSize(t *testing.T) {
	o := NewOutbox(1, 0)
	assert.Equal(t, 64, cap(o.frames))
}

func TestSessionsTrackOpenOutboxes(t *testing.T) {
	s := NewSessions()
	a := s.Open(4)
	b := s.Open(4)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, s.Count())

	s.Remove(a)
	assert.Equal(t, 1, s.Count())
	select {
	case <-a.Done():
	default:
		t.Fatal("removed outbox should be closed")
	}

	s.CloseAll()
	select {
	case <-b.Done():
	default:
		t.Fatal("CloseAll should close every outbox")
	}
}
