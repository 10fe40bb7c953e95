package wallet

import (
	"math/big"

	pec256 "github.com/polarysfoundation/pec-256"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/crypto"
)

// Wallet holds the node's single keypair. The address is derived from
// the public key digest and rendered in the AIA-QTL form.
type Wallet struct {
	priv    pec256.PrivKey
	pub     pec256.PubKey
	address common.Address
}

// New draws a fresh keypair.
func New() *Wallet {
	priv, pub := crypto.GenerateKey()

	return &Wallet{
		priv:    priv,
		pub:     pub,
		address: crypto.PubKeyToAddress(pub),
	}
}

func (w *Wallet) Address() common.Address {
	return w.address
}

func (w *Wallet) PubKey() pec256.PubKey {
	return w.pub
}

// Sign produces a 64-byte r||s signature over the digest.
func (w *Wallet) Sign(digest common.Hash) ([]byte, error) {
	r, s, err := crypto.Sign(digest, w.priv)
	if err != nil {
		return nil, err
	}

	signature := make([]byte, 64)
	r.FillBytes(signature[:32])
	s.FillBytes(signature[32:])

	return signature, nil
}

// Verify checks an r||s signature against this wallet's public key.
func (w *Wallet) Verify(digest common.Hash, signature []byte) (bool, error) {
	if len(signature) != 64 {
		return false, ErrInvalidSignature
	}

	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:])

	return crypto.Verify(digest, r, s, w.pub)
}
