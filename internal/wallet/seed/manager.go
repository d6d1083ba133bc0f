package seed

import (
	"crypto/sha512"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512)
const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64
)

type manager struct {
	mu   sync.RWMutex
	seed []byte
}

// NewManager creates a new seed Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{}
}

func (m *manager) Initialize(mnemonic string, passphrase string) error {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return ErrInvalidMnemonic
	}

	seed := pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+passphrase),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.seed)
	m.seed = seed

	return nil
}

func (m *manager) Seed() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.seed == nil {
		return nil, ErrNotInitialized
	}

	seedCopy := make([]byte, len(m.seed))
	copy(seedCopy, m.seed)
	return seedCopy, nil
}

func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.seed != nil
}

func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.seed)
	m.seed = nil
}
