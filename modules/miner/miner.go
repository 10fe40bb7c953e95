package miner

import (
	"fmt"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/core/transfer"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/utils"
)

type wallet interface {
	Address() common.Address
	Sign(digest common.Hash) ([]byte, error)
}

// Miner is the node's competing identity: the AIAlgoNode id the engine
// races under plus the wallet that collects and spends its rewards.
type Miner struct {
	id     string
	wallet wallet
}

func NewMiner(w wallet) *Miner {
	return &Miner{
		id:     fmt.Sprintf("AIAlgoNode-%d", utils.SecureRandomInt(1000, 9999)),
		wallet: w,
	}
}

func (m *Miner) ID() string {
	return m.id
}

func (m *Miner) Address() common.Address {
	return m.wallet.Address()
}

// SignTransfer seals an outbound payment with the wallet key.
func (m *Miner) SignTransfer(t *transfer.Transfer) (*transfer.Transfer, error) {
	digest, err := t.Digest()
	if err != nil {
		return nil, err
	}

	signature, err := m.wallet.Sign(digest)
	if err != nil {
		return nil, err
	}

	return t.SignTransfer(signature), nil
}
