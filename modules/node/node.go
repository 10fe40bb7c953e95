package node

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core/transfer"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/miner"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
)

// Node is the application boundary of the simulator. Everything inbound
// goes through it (credential, start, stop, send); everything outbound
// leaves through the journal feed or a ledger snapshot.
type Node struct {
	ledger *core.Ledger
	worker *miner.Worker
	miner  *miner.Miner
	chain  *params.ChainParams
	feed   *journal.Journal
	log    *logrus.Logger

	mu     sync.RWMutex
	apiKey string
}

func New(ledger *core.Ledger, worker *miner.Worker, m *miner.Miner, chain *params.ChainParams, feed *journal.Journal, log *logrus.Logger) *Node {
	n := &Node{
		ledger: ledger,
		worker: worker,
		miner:  m,
		chain:  chain,
		feed:   feed,
		log:    log,
	}

	n.feed.Info("Node ID: %s initialized.", m.ID())
	return n
}

// ConfigureCredential stores the A.I. service key. The key is never
// validated against any real service; only emptiness is rejected.
func (n *Node) ConfigureCredential(key string) error {
	if key == "" {
		n.feed.Error("ERROR: API Key field is empty.")
		return ErrEmptyCredential
	}

	n.mu.Lock()
	n.apiKey = key
	n.mu.Unlock()

	n.feed.Info("AI API Key Loaded. Client ready for block solving.")
	return nil
}

// Start launches the block cycle worker. Refused without a credential.
func (n *Node) Start() error {
	n.mu.RLock()
	key := n.apiKey
	n.mu.RUnlock()

	if key == "" {
		n.feed.Error("ERROR: Cannot start. No API Key loaded.")
		return ErrNoCredential
	}

	n.feed.Info("*** A.I. ALGORITHM STARTED: Competing for Block Reward ***")
	n.worker.Start()
	return nil
}

func (n *Node) Stop() {
	n.worker.Stop()
}

// Snapshot exposes the display fields; safe from any goroutine.
func (n *Node) Snapshot() core.Snapshot {
	return n.ledger.Snapshot()
}

func (n *Node) Journal() *journal.Journal {
	return n.feed
}

// Send debits the balance and emits a signed transfer record. The debit
// and the validation are one guarded ledger transition; a rejected
// amount leaves the balance untouched.
func (n *Node) Send(to common.Address, amount float64) (*transfer.Transfer, error) {
	if err := n.ledger.Debit(amount); err != nil {
		n.feed.Error("TRANSACTION REJECTED: %v", err)
		return nil, err
	}

	record := transfer.New(n.miner.Address(), to, amount, n.chain.Symbol)
	record, err := n.miner.SignTransfer(record)
	if err != nil {
		// The debit already happened; the simulation has no settlement
		// layer to fail against, so a signing fault is refunded.
		n.ledger.Credit(amount)
		n.feed.Error("TRANSACTION REJECTED: %v", err)
		return nil, err
	}

	n.feed.Info("TRANSACTION: Sent %.4f %s to %.15s...", amount, n.chain.Symbol, to.String())
	n.feed.Publish(journal.TopicTransfer, record)

	n.log.WithField("transfer", record.ID).Info("Transfer signed and published")
	return record, nil
}
