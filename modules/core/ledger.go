package core

import (
	"sync"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
)

// Ledger is the node's mutable chain state. One instance lives for the
// whole process; the cycle worker is its only writer during a run, and
// every mutation is a single guarded transition. Display readers take
// Snapshot copies.
type Ledger struct {
	mu sync.RWMutex

	height     uint64
	difficulty float64
	peerCount  int
	balance    float64
	lastHash   common.Hash

	nodeID string
	wallet common.Address
}

// Snapshot is an immutable copy of the ledger for display refresh.
type Snapshot struct {
	Height     uint64
	Difficulty float64
	PeerCount  int
	Balance    float64
	LastHash   common.Hash
	NodeID     string
	Wallet     common.Address
}

// InitLedger seeds the chain state. The difficulty starts at zero and
// only moves once the first block is minted.
func InitLedger(chainParams *params.ChainParams, nodeID string, wallet common.Address) *Ledger {
	return &Ledger{
		height:    chainParams.SeedHeight,
		peerCount: 12,
		nodeID:    nodeID,
		wallet:    wallet,
	}
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Snapshot{
		Height:     l.height,
		Difficulty: l.difficulty,
		PeerCount:  l.peerCount,
		Balance:    l.balance,
		LastHash:   l.lastHash,
		NodeID:     l.nodeID,
		Wallet:     l.wallet,
	}
}

func (l *Ledger) Height() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.height
}

func (l *Ledger) Difficulty() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.difficulty
}

func (l *Ledger) PeerCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.peerCount
}

func (l *Ledger) Balance() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balance
}

func (l *Ledger) LastHash() common.Hash {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.lastHash
}

func (l *Ledger) NodeID() string {
	return l.nodeID
}

func (l *Ledger) Wallet() common.Address {
	return l.wallet
}

// SetPeerCount commits the per-cycle roster size. Display-only field, no
// invariant coupling.
func (l *Ledger) SetPeerCount(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.peerCount = n
}

// Debit withdraws amount from the balance as one guarded transition.
func (l *Ledger) Debit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > l.balance {
		return ErrInsufficientBalance
	}

	l.balance -= amount
	return nil
}

// Credit deposits amount back into the balance.
func (l *Ledger) Credit(amount float64) {
	if amount <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance += amount
}

// applyMint commits a won block: the reward, the height bump, the
// winning difficulty and the fresh block hash land together. Returns the
// new height and balance.
func (l *Ledger) applyMint(reward, difficulty float64, hash common.Hash) (uint64, float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance += reward
	l.height++
	l.difficulty = difficulty
	l.lastHash = hash

	return l.height, l.balance
}
