package wallet

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/common"
	"github.com/NakamotoBurrardInlet/ProofOfAIAlgorithmBlockchainRewardSystem/modules/crypto"
)

func TestNew_AddressForm(t *testing.T) {
	w := New()

	addr := w.Address().String()
	if !strings.HasPrefix(addr, common.AddrPrefix) {
		t.Errorf("address %q missing prefix %q", addr, common.AddrPrefix)
	}
	if len(addr) != len(common.AddrPrefix)+common.AddrLen*2 {
		t.Errorf("address %q has length %d", addr, len(addr))
	}
	hexPart := addr[len(common.AddrPrefix):]
	if hexPart != strings.ToUpper(hexPart) {
		t.Errorf("address hex %q is not uppercase", hexPart)
	}
}

func TestNew_AddressMatchesPubKey(t *testing.T) {
	w := New()

	if got := crypto.PubKeyToAddress(w.PubKey()); got != w.Address() {
		t.Errorf("address %s not derived from pubkey (want %s)", w.Address(), got)
	}
}

func TestSignVerify(t *testing.T) {
	w := New()
	digest := common.BytesToHash(crypto.Pm256([]byte("payload")))

	sig, err := w.Sign(digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("signature length = %d, want 64", len(sig))
	}

	ok, err := w.Verify(digest, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("signature did not verify")
	}
}

func TestVerify_BadLength(t *testing.T) {
	w := New()
	digest := common.BytesToHash([]byte{0x01})

	if _, err := w.Verify(digest, []byte{0x01, 0x02}); err != ErrInvalidSignature {
		t.Errorf("Verify short sig = %v, want ErrInvalidSignature", err)
	}
}

func TestKeystore_RoundTrip(t *testing.T) {
	w := New()
	path := filepath.Join(t.TempDir(), "keys", "node.json")

	if err := w.Save(path, []byte("hunter2")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Address() != w.Address() {
		t.Errorf("loaded address %s, want %s", loaded.Address(), w.Address())
	}

	// The restored key must still sign for the same identity.
	digest := common.BytesToHash(crypto.Pm256([]byte("after reload")))
	sig, err := loaded.Sign(digest)
	if err != nil {
		t.Fatalf("Sign after load: %v", err)
	}
	if ok, err := w.Verify(digest, sig); err != nil || !ok {
		t.Errorf("original wallet rejects restored key's signature (ok=%v, err=%v)", ok, err)
	}
}

func TestKeystore_WrongPassphrase(t *testing.T) {
	w := New()
	path := filepath.Join(t.TempDir(), "node.json")

	if err := w.Save(path, []byte("correct")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Load(path, []byte("wrong")); err != ErrBadPassphrase {
		t.Errorf("Load with wrong passphrase = %v, want ErrBadPassphrase", err)
	}
}

func TestKeystore_EmptyPassphrase(t *testing.T) {
	w := New()
	path := filepath.Join(t.TempDir(), "node.json")

	if err := w.Save(path, nil); err != ErrEmptyPassphrase {
		t.Errorf("Save with empty passphrase = %v, want ErrEmptyPassphrase", err)
	}
}
