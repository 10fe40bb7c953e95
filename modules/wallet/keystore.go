package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	pec256 "github.com/polarysfoundation/pec-256"
	"golang.org/x/crypto/scrypt"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/crypto"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/utils"
)

const keystoreVersion = 1

// scrypt parameters, interactive-login strength.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

type keystoreFile struct {
	Version int          `json:"version"`
	Address string       `json:"address"`
	Crypto  cryptoParams `json:"crypto"`
}

type cryptoParams struct {
	Cipher     string `json:"cipher"`
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Salt       string `json:"salt"`
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
}

// Save writes the private key to path, sealed with an scrypt-derived
// AES-256-GCM key.
func (w *Wallet) Save(path string, passphrase []byte) error {
	if len(passphrase) == 0 {
		return ErrEmptyPassphrase
	}

	salt := utils.SecureRandomBytes(common.KeyLen)
	sealKey, err := deriveKey(passphrase, salt, scryptN, scryptR, scryptP)
	if err != nil {
		return err
	}

	gcm, err := newGCM(sealKey)
	if err != nil {
		return err
	}

	nonce := utils.SecureRandomBytes(gcm.NonceSize())

	plain := make([]byte, common.KeyLen)
	w.priv.BigInt().FillBytes(plain)
	sealed := gcm.Seal(nil, nonce, plain, nil)

	file := keystoreFile{
		Version: keystoreVersion,
		Address: w.address.String(),
		Crypto: cryptoParams{
			Cipher:     "aes-256-gcm",
			Ciphertext: common.EncodeToHex(sealed),
			Nonce:      common.EncodeToHex(nonce),
			Salt:       common.EncodeToHex(salt),
			N:          scryptN,
			R:          scryptR,
			P:          scryptP,
		},
	}

	b, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode keystore: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create keystore dir: %w", err)
		}
	}

	return os.WriteFile(path, b, 0o600)
}

// Load opens a keystore file and unlocks it with the passphrase.
func Load(path string, passphrase []byte) (*Wallet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}

	var file keystoreFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, ErrCorruptKeystore
	}
	if file.Version != keystoreVersion {
		return nil, ErrUnknownKeystore
	}

	salt := common.Decode(file.Crypto.Salt)
	nonce := common.Decode(file.Crypto.Nonce)
	sealed := common.Decode(file.Crypto.Ciphertext)
	if len(salt) == 0 || len(nonce) == 0 || len(sealed) == 0 {
		return nil, ErrCorruptKeystore
	}

	sealKey, err := deriveKey(passphrase, salt, file.Crypto.N, file.Crypto.R, file.Crypto.P)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(sealKey)
	if err != nil {
		return nil, err
	}

	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrBadPassphrase
	}

	priv := pec256.BytesToPrivKey(plain)
	pub := crypto.GetPubKey(priv)
	address := crypto.PubKeyToAddress(pub)

	if address.String() != file.Address {
		return nil, ErrAddressMismatch
	}

	return &Wallet{
		priv:    priv,
		pub:     pub,
		address: address,
	}, nil
}

func deriveKey(passphrase, salt []byte, n, r, p int) (common.Key, error) {
	b, err := scrypt.Key(passphrase, salt, n, r, p, common.KeyLen)
	if err != nil {
		return common.Key{}, fmt.Errorf("derive keystore key: %w", err)
	}

	return common.BytesToKey(b), nil
}

func newGCM(key common.Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return gcm, nil
}
