package poaia

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
)

const proofPrefix = "AI_Solution_Proof_"

// Consensus is the Proof of A.I. Algorithm engine: the randomized model
// that shapes every cycle plus the two timed operations the cycle races.
// All draws come from one seeded source, serialized under a mutex, so a
// fixed seed replays the same simulation.
type Consensus struct {
	cfg  params.AIEngine
	feed *journal.Journal

	mu  sync.Mutex
	rng *rand.Rand
}

// InitConsensus builds the engine. A zero seed draws one from the clock.
func InitConsensus(cfg params.AIEngine, seed int64, feed *journal.Journal) *Consensus {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Consensus{
		cfg:  cfg,
		feed: feed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NextDifficulty applies the per-block swirl to the previous difficulty.
// A fresh chain (difficulty <= 0) starts from the base; the result never
// drops below the floor.
func (c *Consensus) NextDifficulty(previous float64) float64 {
	current := previous
	if current <= 0 {
		current = c.cfg.BaseDifficulty
	}

	difficulty := current + c.uniform(-c.cfg.DifficultySwirl, c.cfg.DifficultySwirl)
	if difficulty < c.cfg.MinDifficulty {
		difficulty = c.cfg.MinDifficulty
	}

	return difficulty
}

// NextPeerCount simulates network volatility.
func (c *Consensus) NextPeerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return params.MinPeers + c.rng.Intn(params.MaxPeers-params.MinPeers+1)
}

// LuckModifier draws the per-win bonus/penalty factor.
func (c *Consensus) LuckModifier() float64 {
	return c.uniform(-params.LuckFactorMax, params.LuckFactorMax)
}

// SolveLatency is the simulated time the local A.I. needs to defeat the
// encryption swirl at the given difficulty.
func (c *Consensus) SolveLatency(difficulty float64) time.Duration {
	units := difficulty/100 + c.uniform(1, 3)
	return time.Duration(units * float64(c.cfg.Unit))
}

// ObserveLatency is the simulated time until a peer-minted block would be
// received and validated.
func (c *Consensus) ObserveLatency(difficulty float64) time.Duration {
	units := difficulty/150 + c.uniform(0.5, 2.0)
	return time.Duration(units * float64(c.cfg.Unit))
}

// NewProof mints an opaque solution token.
func (c *Consensus) NewProof() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fmt.Sprintf("%s%X", proofPrefix, c.rng.Uint64())
}

// NewBlockHash draws a fresh 256-bit value. It is not derived from
// anything; the simulation only displays it.
func (c *Consensus) NewBlockHash() common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf [common.HashLen]byte
	c.rng.Read(buf[:])
	return common.BytesToHash(buf[:])
}

// Solve is the local node's attempt at the block. It waits out the solve
// latency unless ctx cancels first, then yields the proof token.
func (c *Consensus) Solve(ctx context.Context, difficulty float64) (string, error) {
	if difficulty < 0 {
		return "", ErrNegativeDifficulty
	}

	c.feed.Warn("Starting AI block resolution (Diff: %.2f)...", difficulty)

	if err := c.wait(ctx, c.SolveLatency(difficulty)); err != nil {
		return "", err
	}

	proof := c.NewProof()
	short := proof
	if len(short) > 20 {
		short = short[:20]
	}
	c.feed.Info("AI Proof of Solution received: %s...", short)
	return proof, nil
}

// Observe watches the simulated peer network; returning nil means the
// network reached consensus on someone else's block.
func (c *Consensus) Observe(ctx context.Context, difficulty float64) error {
	if difficulty < 0 {
		return ErrNegativeDifficulty
	}

	latency := c.ObserveLatency(difficulty)
	c.feed.Info("P2P Monitor running (Latency check: %.2fs)...", latency.Seconds())

	return c.wait(ctx, latency)
}

func (c *Consensus) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Consensus) uniform(min, max float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return min + c.rng.Float64()*(max-min)
}
