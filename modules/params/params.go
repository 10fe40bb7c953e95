package params

import (
	"time"
)

var (
	MinPeers      = 10
	MaxPeers      = 30
	LuckFactorMax = 0.15
)

var (
	DefaultConfig = &Config{
		DataDir:        ".aialgo",
		LogFile:        "aialgo.log",
		StatusInterval: 1,
		ExportFormat:   "json",
	}

	AIAlgo = &ChainParams{
		ChainID:    8913,
		Symbol:     "%AIA%",
		SeedHeight: 12345,
		AIEngine: AIEngine{
			BaseDifficulty:  100.0,
			MinDifficulty:   50.0,
			DifficultySwirl: 50.0,
			BaseReward:      5.0,
			Interval:        5,
			Unit:            time.Second,
		},
	}
)

type ChainParams struct {
	ChainID    uint64
	Symbol     string
	SeedHeight uint64
	AIEngine   AIEngine
}

// AIEngine holds the tunables of the simulated proof-of-A.I. engine.
// Interval counts in Unit steps; tests shrink Unit to keep cycles fast.
type AIEngine struct {
	BaseDifficulty  float64
	MinDifficulty   float64
	DifficultySwirl float64
	BaseReward      float64
	Interval        uint64
	Unit            time.Duration
}

func (e *AIEngine) String() string {
	return "poaia_engine"
}

func (p *ChainParams) BlockInterval() time.Duration {
	return time.Duration(p.AIEngine.Interval) * p.AIEngine.Unit
}
