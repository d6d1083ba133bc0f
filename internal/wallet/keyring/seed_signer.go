package keyring

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/address"
	"github/chapool/go-txsigner/internal/wallet/seed"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

type seedSigner struct {
	seedManager    seed.Manager
	addressService address.Service
	defaultPath    string
}

// NewSeedSigner creates a Keyring deriving keys from the managed seed at
// KeySelector.DerivationPath, or at defaultPath when the selector has none.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSeedSigner(seedManager seed.Manager, addressService address.Service, defaultPath string) Keyring {
	if defaultPath == "" {
		defaultPath = address.DefaultPath
	}

	return &seedSigner{
		seedManager:    seedManager,
		addressService: addressService,
		defaultPath:    defaultPath,
	}
}

func (s *seedSigner) SignDigest(ctx context.Context, digest common.Hash, key signer.KeySelector) ([]byte, error) {
	privateKey, err := s.derivePrivateKey(ctx, key)
	if err != nil {
		return nil, err
	}
	defer clear(privateKey)

	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}
	defer ecdsaPrivateKey.D.SetInt64(0)

	return signDigest(digest, ecdsaPrivateKey)
}

func (s *seedSigner) Address(ctx context.Context, key signer.KeySelector) (common.Address, error) {
	masterSeed, err := s.seedManager.Seed()
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to get seed")
	}
	defer clear(masterSeed)

	return s.addressService.DeriveAddress(ctx, masterSeed, s.path(key))
}

// derivePrivateKey derives the private key for key
// WARNING: Caller must clear the private key after use
func (s *seedSigner) derivePrivateKey(ctx context.Context, key signer.KeySelector) ([]byte, error) {
	masterSeed, err := s.seedManager.Seed()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get seed")
	}
	defer clear(masterSeed)

	privateKey, err := s.addressService.DerivePrivateKey(ctx, masterSeed, s.path(key))
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive private key")
	}

	return privateKey, nil
}

func (s *seedSigner) path(key signer.KeySelector) string {
	if key.DerivationPath != "" {
		return key.DerivationPath
	}
	return s.defaultPath
}
