package consensus

import (
	"context"
	"time"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
)

// Outcome is the verdict of one block cycle's race.
type Outcome uint8

const (
	OutcomeWin Outcome = iota
	OutcomeLoss
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Engine drives the simulated proof-of-A.I. cycle: the randomized model
// that shapes each cycle and the two competing timed operations. Solve
// and Observe honor ctx cancellation and return promptly once cancelled.
type Engine interface {
	NextDifficulty(previous float64) float64
	NextPeerCount() int
	LuckModifier() float64
	NewBlockHash() common.Hash

	SolveLatency(difficulty float64) time.Duration
	ObserveLatency(difficulty float64) time.Duration

	// Solve is the local A.I. attempt; it yields the proof token.
	Solve(ctx context.Context, difficulty float64) (string, error)
	// Observe waits for the simulated peer network to mint first.
	Observe(ctx context.Context, difficulty float64) error
}
