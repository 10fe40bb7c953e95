package p2p

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Swarm is the simulated peer roster. The cycle worker resizes it to the
// engine's peer count every block; joins and drops are cosmetic and
// never influence the race.
type Swarm struct {
	mu    sync.RWMutex
	peers []*Peer
	log   *logrus.Logger
}

func NewSwarm(log *logrus.Logger) *Swarm {
	return &Swarm{
		peers: make([]*Peer, 0),
		log:   log,
	}
}

// Resize grows or shrinks the roster to n members. New members join at
// the given height; the oldest members drop first.
func (s *Swarm) Resize(n int, height uint64) {
	if n < 0 {
		n = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.peers) < n {
		peer := newPeer(height)
		s.peers = append(s.peers, peer)
		s.log.WithField("peer", peer.ID()).Debug("Peer joined the swarm")
	}

	for len(s.peers) > n {
		dropped := s.peers[0]
		s.peers = s.peers[1:]
		s.log.WithField("peer", dropped.ID()).Debug("Peer left the swarm")
	}

	for _, peer := range s.peers {
		peer.touch(height)
	}
}

func (s *Swarm) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.peers)
}

func (s *Swarm) Members() []*Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Peer, len(s.peers))
	copy(out, s.peers)
	return out
}
