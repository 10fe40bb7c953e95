package miner

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/p2p"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/utils"
)

// stubEngine fixes the race's timing so each test decides who wins.
type stubEngine struct {
	solveDelay   time.Duration
	observeDelay time.Duration
}

func (e *stubEngine) NextDifficulty(previous float64) float64 {
	if previous <= 0 {
		return 100
	}
	return previous + 1
}

func (e *stubEngine) NextPeerCount() int { return 15 }

func (e *stubEngine) LuckModifier() float64 { return 0.1 }

func (e *stubEngine) NewBlockHash() common.Hash {
	return common.BytesToHash(utils.SecureRandomBytes(common.HashLen))
}

func (e *stubEngine) SolveLatency(difficulty float64) time.Duration { return e.solveDelay }

func (e *stubEngine) ObserveLatency(difficulty float64) time.Duration { return e.observeDelay }

func (e *stubEngine) Solve(ctx context.Context, difficulty float64) (string, error) {
	select {
	case <-time.After(e.solveDelay):
		return "stub-proof", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (e *stubEngine) Observe(ctx context.Context, difficulty float64) error {
	select {
	case <-time.After(e.observeDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type stubWallet struct{ addr common.Address }

func (w *stubWallet) Address() common.Address { return w.addr }

func (w *stubWallet) Sign(digest common.Hash) ([]byte, error) { return make([]byte, 64), nil }

func newTestWorker(solveDelay, observeDelay time.Duration) (*Worker, *core.Ledger, *journal.Journal) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	feed := journal.New(logger)

	chain := *params.AIAlgo
	chain.AIEngine.Unit = time.Millisecond
	chain.AIEngine.Interval = 1

	engine := &stubEngine{solveDelay: solveDelay, observeDelay: observeDelay}
	m := NewMiner(&stubWallet{addr: common.BytesToAddress([]byte{0x01})})
	ledger := core.InitLedger(&chain, m.ID(), m.Address())
	allocator := core.NewAllocator(ledger, engine, &chain, feed)
	swarm := p2p.NewSwarm(logger)

	return NewWorker(m, engine, ledger, allocator, swarm, &chain, feed, logger), ledger, feed
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out after %v waiting for %s", timeout, what)
}

func countEntries(feed *journal.Journal, substr string) int {
	n := 0
	for _, e := range feed.Entries() {
		if strings.Contains(e.Message, substr) {
			n++
		}
	}
	return n
}

func TestWorker_AlwaysWin(t *testing.T) {
	w, ledger, feed := newTestWorker(time.Millisecond, 500*time.Millisecond)
	initial := ledger.Snapshot()

	w.Start()
	waitFor(t, 5*time.Second, "three minted blocks", func() bool {
		return ledger.Height() >= initial.Height+3
	})
	w.Stop()

	final := ledger.Snapshot()
	wins := final.Height - initial.Height

	if int(wins) != countEntries(feed, "BLOCK MINTED") {
		t.Errorf("height advanced %d but %d mint notifications", wins, countEntries(feed, "BLOCK MINTED"))
	}
	if final.Balance < float64(wins)*5.0*0.85 {
		t.Errorf("balance %v too low for %d wins", final.Balance, wins)
	}
	if final.Difficulty < 50.0 {
		t.Errorf("committed difficulty %v below floor", final.Difficulty)
	}
	if !final.LastHash.IsValid() {
		t.Error("last hash never replaced despite wins")
	}
}

func TestWorker_AlwaysLose(t *testing.T) {
	w, ledger, feed := newTestWorker(500*time.Millisecond, time.Millisecond)
	initial := ledger.Snapshot()

	w.Start()
	waitFor(t, 5*time.Second, "three lost cycles", func() bool {
		return countEntries(feed, "NETWORK LOSS") >= 3
	})
	w.Stop()

	final := ledger.Snapshot()
	if final.Height != initial.Height {
		t.Errorf("height moved on losses: %d -> %d", initial.Height, final.Height)
	}
	if final.Difficulty != initial.Difficulty {
		t.Errorf("difficulty moved on losses: %v -> %v", initial.Difficulty, final.Difficulty)
	}
	if final.Balance != initial.Balance {
		t.Errorf("balance moved on losses: %v -> %v", initial.Balance, final.Balance)
	}
	if countEntries(feed, "BLOCK MINTED") != 0 {
		t.Error("mint notification emitted without a win")
	}
}

func TestWorker_StopDuringRace(t *testing.T) {
	w, ledger, feed := newTestWorker(10*time.Second, 10*time.Second)
	initial := ledger.Snapshot()

	w.Start()
	waitFor(t, time.Second, "first cycle to start", func() bool {
		return countEntries(feed, "[CYCLE START]") >= 1
	})

	begin := time.Now()
	w.Stop()
	if elapsed := time.Since(begin); elapsed > time.Second {
		t.Errorf("Stop took %v, want prompt cancellation", elapsed)
	}

	if w.Status() != StatusStopped {
		t.Errorf("status = %s, want stopped", w.Status())
	}
	if countEntries(feed, "cancelled") == 0 {
		t.Error("no cancellation notification")
	}
	if countEntries(feed, "BLOCK MINTED") != 0 {
		t.Error("reward emitted for an aborted cycle")
	}

	final := ledger.Snapshot()
	if final.Height != initial.Height || final.Balance != initial.Balance || final.Difficulty != initial.Difficulty {
		t.Errorf("aborted run mutated state: %+v -> %+v", initial, final)
	}

	// No further cycle may start after the stop.
	cycles := countEntries(feed, "[CYCLE START]")
	time.Sleep(50 * time.Millisecond)
	if countEntries(feed, "[CYCLE START]") != cycles {
		t.Error("a new cycle started after Stop")
	}
}

func TestWorker_StopIdempotent(t *testing.T) {
	w, _, feed := newTestWorker(10*time.Second, 10*time.Second)

	w.Stop() // not running yet, must be a no-op
	if countEntries(feed, "STOP command") != 0 {
		t.Error("stop notification emitted for an idle worker")
	}

	w.Start()
	w.Stop()
	w.Stop()
	w.Stop()

	if got := countEntries(feed, "STOP command"); got != 1 {
		t.Errorf("stop notifications = %d, want 1", got)
	}
	if w.Status() != StatusStopped {
		t.Errorf("status = %s, want stopped", w.Status())
	}
}

func TestWorker_StartWhileRunning(t *testing.T) {
	w, _, feed := newTestWorker(10*time.Second, 10*time.Second)

	w.Start()
	defer w.Stop()

	w.Start()
	if got := countEntries(feed, "Async AI Engine started"); got != 1 {
		t.Errorf("start notifications = %d, want 1", got)
	}
	if countEntries(feed, "already running") != 1 {
		t.Error("second Start did not warn")
	}
	if w.Status() != StatusRunning {
		t.Errorf("status = %s, want running", w.Status())
	}
}

func TestWorker_RestartAfterStop(t *testing.T) {
	w, ledger, _ := newTestWorker(time.Millisecond, 500*time.Millisecond)

	w.Start()
	waitFor(t, 5*time.Second, "a first win", func() bool {
		return ledger.Balance() > 0
	})
	w.Stop()
	height := ledger.Height()

	w.Start()
	if w.Status() != StatusRunning {
		t.Fatalf("status after restart = %s, want running", w.Status())
	}
	waitFor(t, 5*time.Second, "a win after restart", func() bool {
		return ledger.Height() > height
	})
	w.Stop()
}
