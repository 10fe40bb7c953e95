package p2p

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestSwarm() *Swarm {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSwarm(logger)
}

func TestSwarm_ResizeGrow(t *testing.T) {
	s := newTestSwarm()

	s.Resize(12, 100)
	if s.Size() != 12 {
		t.Fatalf("size = %d, want 12", s.Size())
	}

	for _, peer := range s.Members() {
		if !strings.HasPrefix(peer.ID(), "AIAlgoNode-") {
			t.Errorf("peer id %q has wrong form", peer.ID())
		}
		if peer.JoinedHeight() != 100 {
			t.Errorf("peer joined at %d, want 100", peer.JoinedHeight())
		}
	}
}

func TestSwarm_ResizeShrink(t *testing.T) {
	s := newTestSwarm()

	s.Resize(20, 100)
	first := s.Members()[0]

	s.Resize(5, 101)
	if s.Size() != 5 {
		t.Fatalf("size = %d, want 5", s.Size())
	}

	// Oldest members drop first.
	for _, peer := range s.Members() {
		if peer == first {
			t.Error("oldest peer survived the shrink")
		}
	}
}

func TestSwarm_ResizeTouches(t *testing.T) {
	s := newTestSwarm()

	s.Resize(3, 100)
	s.Resize(3, 107)

	for _, peer := range s.Members() {
		if peer.LastSeen() != 107 {
			t.Errorf("peer last seen %d, want 107", peer.LastSeen())
		}
	}
}

func TestSwarm_MembersCopy(t *testing.T) {
	s := newTestSwarm()
	s.Resize(4, 100)

	members := s.Members()
	members[0] = nil

	if s.Members()[0] == nil {
		t.Error("Members exposed internal storage")
	}
}

func TestSwarm_ResizeNegative(t *testing.T) {
	s := newTestSwarm()
	s.Resize(4, 100)

	s.Resize(-1, 101)
	if s.Size() != 0 {
		t.Errorf("size after negative resize = %d, want 0", s.Size())
	}
}
