package console

import (
	"context"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
)

type stateReader interface {
	Snapshot() core.Snapshot
}

// Console is the terminal stand-in for the original status window. It
// mirrors the journal feed color-coded and redraws a status line at its
// own cadence; the core never waits on it.
type Console struct {
	feed     *journal.Journal
	state    stateReader
	symbol   string
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func New(feed *journal.Journal, state stateReader, symbol string, interval time.Duration) *Console {
	if interval <= 0 {
		interval = time.Second
	}

	return &Console{
		feed:     feed,
		state:    state,
		symbol:   symbol,
		interval: interval,
	}
}

// Banner renders the startup panel.
func (c *Console) Banner() {
	snap := c.state.Snapshot()

	pterm.DefaultBox.
		WithTitle("Proof of A.I. Algorithm").
		WithTitleTopCenter().
		Println(pterm.Sprintf(
			"Node:   %s\nWallet: %s\nBlock:  #%d\nSymbol: %s",
			snap.NodeID, snap.Wallet, snap.Height, c.symbol,
		))
}

// Start subscribes to the feed and launches the status refresher.
func (c *Console) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return nil
	}

	if err := c.feed.Subscribe(c.render); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go c.refresh(ctx)
	return nil
}

func (c *Console) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	c.wg.Wait()
	c.feed.Unsubscribe(c.render)
}

func (c *Console) render(e journal.Entry) {
	style := pterm.NewStyle(pterm.FgCyan)
	switch e.Severity {
	case journal.SeverityWarn:
		style = pterm.NewStyle(pterm.FgYellow)
	case journal.SeverityError:
		style = pterm.NewStyle(pterm.FgRed)
	}

	style.Printfln("[%s] %s", e.Timestamp.Format("15:04:05"), e.Message)
}

func (c *Console) refresh(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := c.state.Snapshot()
			pterm.NewStyle(pterm.FgGray).Printfln(
				"STATUS | Block: #%d | Peers: %d | Balance: %.2f %s | Difficulty: %.2f",
				snap.Height, snap.PeerCount, snap.Balance, c.symbol, snap.Difficulty,
			)
		}
	}
}
