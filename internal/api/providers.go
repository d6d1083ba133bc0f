package api

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/metrics"
	"github/chapool/go-txsigner/internal/wallet/address"
	"github/chapool/go-txsigner/internal/wallet/keyring"
	"github/chapool/go-txsigner/internal/wallet/keystore"
	"github/chapool/go-txsigner/internal/wallet/recovery"
	"github/chapool/go-txsigner/internal/wallet/seed"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirement for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NoTest is used as the variadic testing.T argument of providers outside of tests
func NoTest() []*testing.T {
	return nil
}

// NewClock returns the wall clock, or a mock clock fixed at 2024-01-01 in tests
//
//nolint:ireturn
func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if !useMock {
		clock = time2.DefaultClock
	} else {
		clock = time2.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	}

	return clock
}

// NewKeystore returns the keystore service with the default scrypt parameters
//
//nolint:ireturn
func NewKeystore() keystore.Service {
	return keystore.NewService(nil)
}

// NewSeedManager returns a seed manager initialized from the configured mnemonic,
// or from the mnemonic stored in the configured keystore file.
//
//nolint:ireturn
func NewSeedManager(cfg config.Server, keystoreService keystore.Service) (seed.Manager, error) {
	seedManager := seed.NewManager()

	mnemonic := cfg.Signer.Mnemonic
	if mnemonic == "" && cfg.Signer.KeystorePath != "" {
		var err error
		mnemonic, err = keystoreService.Load(context.Background(), cfg.Signer.KeystorePath, cfg.Signer.KeystorePassword)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load keystore")
		}
		log.Info().Str("keystorePath", cfg.Signer.KeystorePath).Msg("Mnemonic loaded from keystore")
	}

	if mnemonic == "" {
		return seedManager, nil
	}

	if err := seedManager.Initialize(mnemonic, cfg.Signer.Passphrase); err != nil {
		return nil, errors.Wrap(err, "failed to initialize seed")
	}

	return seedManager, nil
}

// NewKeyring returns the seed backed keyring when a mnemonic is configured,
// otherwise a keyring over the configured private keys.
//
//nolint:ireturn
func NewKeyring(cfg config.Server, seedManager seed.Manager, addressService address.Service) (keyring.Keyring, error) {
	if seedManager.IsInitialized() {
		log.Info().Str("derivationPath", cfg.Signer.DerivationPath).Msg("Using seed keyring")
		return keyring.NewSeedSigner(seedManager, addressService, cfg.Signer.DerivationPath), nil
	}

	keys, err := keyring.ParseKeys(cfg.Signer.PrivateKeys)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private keys")
	}

	if len(keys) == 0 {
		log.Warn().Msg("No mnemonic or private keys configured, signing requests will fail")
	} else {
		log.Info().Strs("keyNames", cfg.Signer.KeyNames).Msg("Using private key keyring")
	}

	return keyring.NewKeySigner(keys), nil
}

// NewSigner wires the keyring into the signing service
//
//nolint:ireturn
func NewSigner(keys keyring.Keyring, recoverer recovery.Recoverer, metrics *metrics.Service, clock time2.Clock) (signer.Service, error) {
	return signer.NewService(keys, recoverer, metrics, clock)
}
