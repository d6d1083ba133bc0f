package keystore

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrKeystoreExists   = errors.New("keystore already exists")
	ErrKeystoreNotFound = errors.New("keystore not found")
	ErrInvalidPassword  = errors.New("invalid password: MAC mismatch")
)

// Service stores a mnemonic encrypted with a password in a keystore v3 file
type Service interface {
	// Create encrypts mnemonic with password and writes it to path.
	// It never overwrites an existing file.
	Create(ctx context.Context, path string, mnemonic string, password string) error

	// Load decrypts the mnemonic stored at path
	Load(ctx context.Context, path string, password string) (string, error)

	// Exists checks if a keystore file exists at path
	Exists(path string) (bool, error)
}

// KeystoreJSON is the keystore v3 file layout, the mnemonic takes the place of the private key
//
//nolint:revive // KeystoreJSON is the standard name for Ethereum keystore JSON structure
type KeystoreJSON struct {
	Version int        `json:"version"`
	ID      string     `json:"id"`
	Crypto  CryptoJSON `json:"crypto"`
}

type CryptoJSON struct {
	Cipher       string           `json:"cipher"`
	Ciphertext   string           `json:"ciphertext"`
	CipherParams CipherParamsJSON `json:"cipherparams"`
	KDF          string           `json:"kdf"`
	KDFParams    ScryptParamsJSON `json:"kdfparams"`
	MAC          string           `json:"mac"`
}

type CipherParamsJSON struct {
	IV string `json:"iv"`
}

type ScryptParamsJSON struct {
	ScryptParams
	Salt string `json:"salt"`
}

// ScryptParams defines scrypt KDF parameters
type ScryptParams struct {
	DKLen int `json:"dklen"` // Derived key length (32 bytes)
	N     int `json:"n"`     // CPU/memory cost parameter (262144)
	R     int `json:"r"`     // Block size parameter (8)
	P     int `json:"p"`     // Parallelization parameter (1)
}

// DefaultScryptParams returns default scrypt parameters for Ethereum keystore v3
func DefaultScryptParams() *ScryptParams {
	return &ScryptParams{DKLen: 32, N: 1 << 18, R: 8, P: 1}
}

// LightScryptParams returns cheap scrypt parameters, only meant for tests
func LightScryptParams() *ScryptParams {
	return &ScryptParams{DKLen: 32, N: 1 << 12, R: 8, P: 1}
}
