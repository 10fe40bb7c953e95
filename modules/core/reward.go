package core

import (
	"fmt"
	"time"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core/consensus"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
)

const stampLayout = "2006-01-02 15:04:05"

// Mint records one won block. It travels over the feed bus for the
// archive and any other collaborator; the core itself stores nothing.
type Mint struct {
	Height     uint64      `json:"height"`
	Winner     string      `json:"winner"`
	Proof      string      `json:"proof"`
	Difficulty float64     `json:"difficulty"`
	BaseReward float64     `json:"base_reward"`
	Luck       float64     `json:"luck"`
	Reward     float64     `json:"reward"`
	Balance    float64     `json:"balance"`
	Hash       common.Hash `json:"hash"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Allocator turns a race win into a ledger transition and the mint
// notification set. It never fails; every input is internally produced.
type Allocator struct {
	ledger *Ledger
	engine consensus.Engine
	chain  *params.ChainParams
	feed   *journal.Journal
}

func NewAllocator(ledger *Ledger, engine consensus.Engine, chain *params.ChainParams, feed *journal.Journal) *Allocator {
	return &Allocator{
		ledger: ledger,
		engine: engine,
		chain:  chain,
		feed:   feed,
	}
}

// Distribute credits the winner for a block solved at the given
// difficulty. The base reward is fixed; difficulty buys time-to-win, not
// reward size. Luck swings the payout either way.
func (a *Allocator) Distribute(winner string, difficulty float64, proof string) *Mint {
	base := a.chain.AIEngine.BaseReward
	luck := a.engine.LuckModifier()
	reward := base * (1 + luck)
	hash := a.engine.NewBlockHash()

	height, balance := a.ledger.applyMint(reward, difficulty, hash)

	mint := &Mint{
		Height:     height,
		Winner:     winner,
		Proof:      proof,
		Difficulty: difficulty,
		BaseReward: base,
		Luck:       luck,
		Reward:     reward,
		Balance:    balance,
		Hash:       hash,
		Timestamp:  time.Now(),
	}

	symbol := a.chain.Symbol
	a.feed.Info("*** BLOCK MINTED: #%d ***", height)
	a.feed.Warn("Node: %s won with Difficulty: %.2f", winner, difficulty)
	a.feed.Warn("Base Reward: %g %s | Luck Modifier: %+.2f (%s)", base, symbol, luck, symbol)
	a.feed.Info("Final Reward Allocated: %.4f %s. New Balance: %.2f %s", reward, symbol, balance, symbol)

	a.stamp(mint)
	a.feed.Publish(journal.TopicMint, mint)

	return mint
}

// stamp emits the conclusive-measurement metadata for the minted block:
// timestamp, hex and binary excerpts of the hash, a plaintext descriptor
// and the simulated file reference. Informational only.
func (a *Allocator) stamp(mint *Mint) {
	ts := mint.Timestamp.Format(stampLayout)
	hexData := excerpt(mint.Hash.Hex(), 10)
	binData := excerpt(mint.Hash.Binary(), 10)
	plain := fmt.Sprintf("Block %d by %s", mint.Height, mint.Winner)
	ref := fmt.Sprintf("Ref-%d-%s.mccos", mint.Height, ts)

	a.feed.Info("Stamped Metadata: Time=%s, Bit=%s, Hex=%s, Text=%s", ts, binData, hexData, plain)
	a.feed.Info("File Reference: %s (Simulated File Stamping)", ref)
}

func excerpt(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
