package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/archive"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/console"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core/consensus/poaia"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/miner"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/node"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/p2p"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/params"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/wallet"
)

type options struct {
	key          string
	interval     uint64
	seed         int64
	dataDir      string
	keystore     string
	passphrase   string
	export       string
	exportFormat string
	logFile      string
	verbose      bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cfg := params.LoadConfig()

	cmd := &cobra.Command{
		Use:   "aianode",
		Short: "Single-node Proof of A.I. Algorithm blockchain simulator",
		Long: "aianode runs one simulated participant of the Proof of A.I. Algorithm " +
			"chain: a periodic block cycle races a local solve against the peer " +
			"network and credits randomized rewards to the node's wallet.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.key, "key", "", "A.I. service credential (falls back to AIA_API_KEY)")
	cmd.Flags().Uint64Var(&opts.interval, "interval", 0, "block interval in time units (0 keeps the chain default)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for the engine (0 draws from entropy)")
	cmd.Flags().StringVar(&opts.dataDir, "data", cfg.DataDir, "archive directory (empty disables the archive)")
	cmd.Flags().StringVar(&opts.keystore, "keystore", "", "wallet keystore file (created when missing)")
	cmd.Flags().StringVar(&opts.passphrase, "passphrase", "", "keystore passphrase")
	cmd.Flags().StringVar(&opts.export, "export", "", "journal dump path written on shutdown")
	cmd.Flags().StringVar(&opts.exportFormat, "export-format", cfg.ExportFormat, "journal dump format (json|csv)")
	cmd.Flags().StringVar(&opts.logFile, "log", cfg.LogFile, "operational log file")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "mirror the operational log to stderr")

	return cmd
}

func run(opts *options) error {
	logger := newLogger(opts)

	chain := *params.AIAlgo
	if opts.interval > 0 {
		chain.AIEngine.Interval = opts.interval
	}

	feed := journal.New(logger)

	w, err := openWallet(opts)
	if err != nil {
		return err
	}

	m := miner.NewMiner(w)
	ledger := core.InitLedger(&chain, m.ID(), w.Address())
	engine := poaia.InitConsensus(chain.AIEngine, opts.seed, feed)
	allocator := core.NewAllocator(ledger, engine, &chain, feed)
	swarm := p2p.NewSwarm(logger)
	worker := miner.NewWorker(m, engine, ledger, allocator, swarm, &chain, feed, logger)
	nd := node.New(ledger, worker, m, &chain, feed, logger)

	if opts.dataDir != "" {
		store, err := archive.Init(opts.dataDir, logger)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		if err := store.Attach(feed); err != nil {
			return fmt.Errorf("attach archive: %w", err)
		}
	}

	cfg := params.LoadConfig()
	term := console.New(feed, nd, chain.Symbol, time.Duration(cfg.StatusInterval)*time.Second)
	term.Banner()
	if err := term.Start(); err != nil {
		return fmt.Errorf("start console: %w", err)
	}

	key := opts.key
	if key == "" {
		key = os.Getenv("AIA_API_KEY")
	}
	if err := nd.ConfigureCredential(key); err != nil {
		term.Stop()
		return err
	}
	if err := nd.Start(); err != nil {
		term.Stop()
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	logger.Info("Shutting down node...")

	nd.Stop()
	term.Stop()

	if opts.export != "" {
		path := opts.export
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, journal.DefaultExportName(time.Now())+"."+opts.exportFormat)
		}
		if err := feed.Save(path, opts.exportFormat); err != nil {
			logger.Errorf("Journal export failed: %v", err)
		} else {
			logger.WithField("path", path).Info("Journal exported")
		}
	}

	logger.Info("Node terminated")
	return nil
}

func newLogger(opts *options) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var out io.Writer = &lumberjack.Logger{
		Filename:   opts.logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}
	if opts.verbose {
		out = io.MultiWriter(os.Stderr, out)
	}
	logger.SetOutput(out)

	return logger
}

func openWallet(opts *options) (*wallet.Wallet, error) {
	if opts.keystore == "" {
		return wallet.New(), nil
	}

	if _, err := os.Stat(opts.keystore); err == nil {
		w, err := wallet.Load(opts.keystore, []byte(opts.passphrase))
		if err != nil {
			return nil, fmt.Errorf("unlock keystore: %w", err)
		}
		return w, nil
	}

	w := wallet.New()
	if err := w.Save(opts.keystore, []byte(opts.passphrase)); err != nil {
		return nil, fmt.Errorf("create keystore: %w", err)
	}
	return w, nil
}
