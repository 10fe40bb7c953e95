package p2p

import (
	"fmt"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/utils"
)

// Peer is one simulated competitor node. It carries no transport; the
// roster only exists so the node has something to report about the
// network it pretends to race against.
type Peer struct {
	id       string // AIAlgoNode-<n>
	joined   uint64 // block height at join time
	lastSeen uint64
}

func newPeer(height uint64) *Peer {
	return &Peer{
		id:       fmt.Sprintf("AIAlgoNode-%d", utils.SecureRandomInt(1000, 9999)),
		joined:   height,
		lastSeen: height,
	}
}

func (p *Peer) ID() string {
	return p.id
}

func (p *Peer) JoinedHeight() uint64 {
	return p.joined
}

func (p *Peer) LastSeen() uint64 {
	return p.lastSeen
}

func (p *Peer) touch(height uint64) {
	p.lastSeen = height
}
