package keyring

import (
	"context"
	"crypto/ecdsa"
	"maps"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

const signatureLength = 64

type keySigner struct {
	keys map[string]*ecdsa.PrivateKey
}

// NewKeySigner creates a Keyring over a fixed set of named private keys.
// Keys are selected by KeySelector.KeyName; an empty name selects the only key
// when exactly one is configured.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewKeySigner(keys map[string]*ecdsa.PrivateKey) Keyring {
	return &keySigner{keys: maps.Clone(keys)}
}

// ParseKeys converts hex encoded private keys (with or without 0x prefix)
func ParseKeys(hexKeys map[string]string) (map[string]*ecdsa.PrivateKey, error) {
	keys := make(map[string]*ecdsa.PrivateKey, len(hexKeys))
	for name, hexKey := range hexKeys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid private key %q", name)
		}
		keys[name] = key
	}
	return keys, nil
}

func (s *keySigner) SignDigest(_ context.Context, digest common.Hash, key signer.KeySelector) ([]byte, error) {
	privateKey, err := s.lookup(key)
	if err != nil {
		return nil, err
	}

	return signDigest(digest, privateKey)
}

func (s *keySigner) Address(_ context.Context, key signer.KeySelector) (common.Address, error) {
	privateKey, err := s.lookup(key)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey), nil
}

func (s *keySigner) lookup(key signer.KeySelector) (*ecdsa.PrivateKey, error) {
	if key.KeyName == "" && len(s.keys) == 1 {
		name := slices.Collect(maps.Keys(s.keys))[0]
		return s.keys[name], nil
	}

	privateKey, ok := s.keys[key.KeyName]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKey, "%q", key.KeyName)
	}

	return privateKey, nil
}

// signDigest returns r||s, dropping the recovery id
func signDigest(digest common.Hash, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(digest.Bytes(), privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign digest")
	}

	return sig[:signatureLength], nil
}
