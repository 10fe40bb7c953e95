package transfer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/crypto"
)

// Transfer is a signed outbound payment record. The node debits the
// ledger, signs the record with the wallet key and hands it to the bus;
// nothing in the simulation ever settles it remotely.
type Transfer struct {
	ID        string         `json:"id"`
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	Amount    float64        `json:"amount"`
	Symbol    string         `json:"symbol"`
	Timestamp uint64         `json:"timestamp"`
	Signature []byte         `json:"signature"`
}

func New(from, to common.Address, amount float64, symbol string) *Transfer {
	return &Transfer{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Amount:    amount,
		Symbol:    symbol,
		Timestamp: uint64(time.Now().Unix()),
	}
}

// Digest hashes the record without its signature.
func (t *Transfer) Digest() (common.Hash, error) {
	temp := struct {
		ID        string         `json:"id"`
		From      common.Address `json:"from"`
		To        common.Address `json:"to"`
		Amount    float64        `json:"amount"`
		Symbol    string         `json:"symbol"`
		Timestamp uint64         `json:"timestamp"`
	}{
		ID:        t.ID,
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		Symbol:    t.Symbol,
		Timestamp: t.Timestamp,
	}

	b, err := json.Marshal(&temp)
	if err != nil {
		return common.Hash{}, err
	}

	return common.BytesToHash(crypto.Pm256(b)), nil
}

// SignTransfer attaches the signature and returns the same record.
func (t *Transfer) SignTransfer(signature []byte) *Transfer {
	t.Signature = signature
	return t
}

func (t *Transfer) Signed() bool {
	return len(t.Signature) == 64
}
