package miner

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core/consensus"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/p2p"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
)

// Status is the worker's lifecycle state.
type Status uint8

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopping
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Worker runs the block cycle on its own goroutine: difficulty update,
// peer refresh, the solve-versus-network race, reward handling, then the
// inter-block wait. Only one cycle is ever in flight; the ledger is
// written from this goroutine alone.
type Worker struct {
	miner     *Miner
	engine    consensus.Engine
	ledger    *core.Ledger
	allocator *core.Allocator
	swarm     *p2p.Swarm
	config    *params.ChainParams
	feed      *journal.Journal
	log       *logrus.Logger

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(miner *Miner, engine consensus.Engine, ledger *core.Ledger, allocator *core.Allocator, swarm *p2p.Swarm, config *params.ChainParams, feed *journal.Journal, log *logrus.Logger) *Worker {
	return &Worker{
		miner:     miner,
		engine:    engine,
		ledger:    ledger,
		allocator: allocator,
		swarm:     swarm,
		config:    config,
		feed:      feed,
		log:       log,
	}
}

func (w *Worker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.status
}

// Start spawns the cycle loop. Calling it on a running worker is a
// no-op; a worker still winding down refuses the start as well and must
// be restarted after it reaches Stopped.
func (w *Worker) Start() {
	w.mu.Lock()
	switch w.status {
	case StatusRunning:
		w.mu.Unlock()
		w.feed.Warn("Algorithm is already running.")
		return
	case StatusStopping:
		w.mu.Unlock()
		w.feed.Warn("Engine is still stopping; start request ignored.")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.status = StatusRunning
	w.cancel = cancel
	w.mu.Unlock()

	w.log.WithField("node_id", w.miner.ID()).Info("AI engine worker starting")
	w.feed.Info("Async AI Engine started at: %s", time.Now().Format("15:04:05"))

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop cancels the in-flight race or sleep, waits for the loop to drain
// and leaves the worker in Stopped. Safe to call repeatedly; only the
// first call on a running worker emits the stop notification.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.status != StatusRunning {
		w.mu.Unlock()
		return
	}
	w.status = StatusStopping
	cancel := w.cancel
	w.mu.Unlock()

	w.feed.Error("Async AI Engine received STOP command.")
	cancel()
	w.wg.Wait()

	w.mu.Lock()
	w.status = StatusStopped
	w.cancel = nil
	w.mu.Unlock()

	w.log.WithField("node_id", w.miner.ID()).Info("AI engine worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		// The prospective difficulty is not committed here; only a win
		// moves the ledger's difficulty forward.
		difficulty := w.engine.NextDifficulty(w.ledger.Difficulty())

		peers := w.engine.NextPeerCount()
		w.ledger.SetPeerCount(peers)
		if w.swarm != nil {
			w.swarm.Resize(peers, w.ledger.Height())
		}

		w.feed.Warn("[CYCLE START] New Block Cycle #%d initiated.", w.ledger.Height()+1)
		w.feed.Warn("Difficulty set to: %.2f", difficulty)

		outcome, proof := consensus.RunRace(ctx, w.engine, difficulty, w.feed)
		switch outcome {
		case consensus.OutcomeWin:
			w.allocator.Distribute(w.miner.ID(), difficulty, proof)
		case consensus.OutcomeLoss:
			// The race already reported the loss; nothing moves.
		case consensus.OutcomeAborted:
			return
		}

		w.feed.Warn("Block cycle complete. Waiting %s for next mint...", w.config.BlockInterval())
		if !w.sleep(ctx) {
			return
		}
	}
}

// sleep waits out the inter-block interval; false means the wait was
// cancelled.
func (w *Worker) sleep(ctx context.Context) bool {
	timer := time.NewTimer(w.config.BlockInterval())
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
