package consensus

import (
	"context"
	"errors"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/journal"
)

type solveResult struct {
	proof string
	err   error
}

// RunRace pits the local solve against the simulated peer network and
// reports whichever finishes first. Both operations start at the same
// instant; the loser is cancelled and not awaited beyond best effort.
// Internal faults map to a loss, a stop request maps to an abort, and a
// tie goes to the local solver.
func RunRace(ctx context.Context, engine Engine, difficulty float64, feed *journal.Journal) (Outcome, string) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	solveCh := make(chan solveResult, 1)
	observeCh := make(chan error, 1)

	go func() {
		proof, err := engine.Solve(raceCtx, difficulty)
		solveCh <- solveResult{proof: proof, err: err}
	}()

	go func() {
		observeCh <- engine.Observe(raceCtx, difficulty)
	}()

	return arbitrate(ctx, solveCh, observeCh, feed)
}

func arbitrate(ctx context.Context, solveCh <-chan solveResult, observeCh <-chan error, feed *journal.Journal) (Outcome, string) {
	select {
	case res := <-solveCh:
		if res.err != nil {
			if cancelled(res.err) {
				return abortRace(feed)
			}
			feed.Error("AI engine fault during block resolution: %v", res.err)
			return OutcomeLoss, ""
		}
		return winRace(res.proof, feed)

	case err := <-observeCh:
		if err != nil {
			if cancelled(err) {
				return abortRace(feed)
			}
			feed.Error("Peer consensus monitor fault: %v", err)
			return OutcomeLoss, ""
		}
		// The peer signal landed first, but the local proof may have
		// arrived in the same instant; the tie goes to our node.
		select {
		case res := <-solveCh:
			if res.err == nil {
				return winRace(res.proof, feed)
			}
		default:
		}
		feed.Error("NETWORK LOSS: Another peer minted the block first.")
		return OutcomeLoss, ""

	case <-ctx.Done():
		return abortRace(feed)
	}
}

func winRace(proof string, feed *journal.Journal) (Outcome, string) {
	feed.Info("LOCAL AI WIN: Proof of Algorithm achieved first!")
	return OutcomeWin, proof
}

func abortRace(feed *journal.Journal) (Outcome, string) {
	feed.Error("AI Competition cancelled due to engine stop.")
	return OutcomeAborted, ""
}

func cancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
