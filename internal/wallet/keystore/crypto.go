package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	cipherAES128CTR = "aes-128-ctr"
	kdfScrypt       = "scrypt"

	saltLength   = 32
	aesKeyLength = 16
)

// seal encrypts plaintext with a key derived from password:
// the first half of the scrypt output keys AES-128-CTR, the second half the MAC.
func seal(plaintext []byte, password string, params ScryptParams) (*CryptoJSON, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	defer clear(derivedKey)

	ciphertext, err := aesCTR(derivedKey[:aesKeyLength], iv, plaintext)
	if err != nil {
		return nil, err
	}

	return &CryptoJSON{
		Cipher:       cipherAES128CTR,
		Ciphertext:   hex.EncodeToString(ciphertext),
		CipherParams: CipherParamsJSON{IV: hex.EncodeToString(iv)},
		KDF:          kdfScrypt,
		KDFParams: ScryptParamsJSON{
			ScryptParams: params,
			Salt:         hex.EncodeToString(salt),
		},
		MAC: hex.EncodeToString(mac(derivedKey, ciphertext)),
	}, nil
}

// open verifies the MAC and decrypts the ciphertext
func open(c *CryptoJSON, password string) ([]byte, error) {
	if c.KDF != kdfScrypt || c.Cipher != cipherAES128CTR {
		return nil, errors.Errorf("unsupported keystore kdf %q or cipher %q", c.KDF, c.Cipher)
	}
	if c.KDFParams.DKLen < 2*aesKeyLength {
		return nil, errors.Errorf("keystore dklen %d is too short", c.KDFParams.DKLen)
	}

	var salt, iv, ciphertext, expectedMAC []byte
	for _, field := range []struct {
		name  string
		value string
		out   *[]byte
	}{
		{"salt", c.KDFParams.Salt, &salt},
		{"iv", c.CipherParams.IV, &iv},
		{"ciphertext", c.Ciphertext, &ciphertext},
		{"mac", c.MAC, &expectedMAC},
	} {
		decoded, err := hex.DecodeString(field.value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", field.name)
		}
		*field.out = decoded
	}

	params := c.KDFParams.ScryptParams
	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	defer clear(derivedKey)

	if subtle.ConstantTimeCompare(mac(derivedKey, ciphertext), expectedMAC) != 1 {
		return nil, ErrInvalidPassword
	}

	return aesCTR(derivedKey[:aesKeyLength], iv, ciphertext)
}

// aesCTR encrypts or decrypts, CTR mode is symmetric
func aesCTR(key []byte, iv []byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	if len(iv) != block.BlockSize() {
		return nil, errors.Errorf("invalid IV length %d", len(iv))
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)

	return out, nil
}

// mac is keccak256(derivedKey[16:32] || ciphertext)
func mac(derivedKey []byte, ciphertext []byte) []byte {
	return crypto.Keccak256(derivedKey[aesKeyLength:2*aesKeyLength], ciphertext)
}
