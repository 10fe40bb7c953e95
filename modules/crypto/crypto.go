package crypto

import (
	"log"
	"math/big"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	pec256 "github.com/polarysfoundation/pec-256"
	pm256 "github.com/polarysfoundation/pm-256"
)

var c = pec256.PEC256()

func Pm256(b []byte) []byte {
	buf := make([]byte, 32)
	h := pm256.New256()
	h.Write(b)
	h.Sum(buf[:0])

	return buf
}

func GenerateKey() (pec256.PrivKey, pec256.PubKey) {
	priv, pub, _, err := c.GenerateKeyPair()
	if err != nil {
		log.Printf("error generating keys: %v", err)
		panic("error creating new keypair")
	}

	return priv, pub
}

func Sign(data common.Hash, priv pec256.PrivKey) (*big.Int, *big.Int, error) {
	return c.Sign(data.Bytes(), priv.BigInt())
}

func Verify(data common.Hash, r, s *big.Int, pub pec256.PubKey) (bool, error) {
	return c.Verify(data[:], r, s, pub.BigInt())
}

func GetPubKey(priv pec256.PrivKey) pec256.PubKey {
	pub, _ := c.GetPubKey(priv)

	if !c.IsValidPubKey(pub.BigInt()) {
		panic("invalid pubkey")
	}

	return pub
}

// PubKeyToAddress derives the wallet address from the leading bytes of
// the public key digest.
func PubKeyToAddress(pub pec256.PubKey) common.Address {
	b := pub.Bytes()

	return common.BytesToAddress(Pm256(b)[:common.AddrLen])
}
