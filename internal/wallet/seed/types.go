package seed

import "github.com/pkg/errors"

var (
	// ErrInvalidMnemonic is returned when the mnemonic fails BIP39 checksum validation
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrNotInitialized is returned when the seed is requested before Initialize
	ErrNotInitialized = errors.New("seed not initialized")
)

// Manager holds the BIP39 seed the keyring derives signing keys from
type Manager interface {
	// Initialize validates the mnemonic and derives the seed (called at startup)
	Initialize(mnemonic string, passphrase string) error

	// Seed returns a copy of the seed, the caller must clear it after use
	Seed() ([]byte, error)

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
