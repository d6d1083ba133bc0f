package keystore

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/util"
)

const (
	keystoreVersion  = 3
	keystoreFileMode = 0o600
)

type service struct {
	params *ScryptParams
}

// NewService creates a keystore Service encrypting with params, or with
// DefaultScryptParams when params is nil.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(params *ScryptParams) Service {
	if params == nil {
		params = DefaultScryptParams()
	}

	return &service{
		params: params,
	}
}

func (s *service) Create(ctx context.Context, path string, mnemonic string, password string) error {
	log := util.LogFromContext(ctx).With().Str("path", path).Logger()

	// Check if keystore already exists
	exists, err := s.Exists(path)
	if err != nil {
		return errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return ErrKeystoreExists
	}

	// Encrypt mnemonic
	sealed, err := seal([]byte(mnemonic), password, *s.params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt mnemonic")
		return errors.Wrap(err, "failed to encrypt mnemonic")
	}

	keystoreJSON := &KeystoreJSON{
		Version: keystoreVersion,
		ID:      uuid.New().String(),
		Crypto:  *sealed,
	}

	raw, err := json.MarshalIndent(keystoreJSON, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal keystore JSON")
	}

	// O_EXCL, a concurrent Create must not clobber the file
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, keystoreFileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrKeystoreExists
		}
		return errors.Wrap(err, "failed to create keystore file")
	}

	if _, err := file.Write(raw); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "failed to write keystore file")
	}

	if err := file.Close(); err != nil {
		return errors.Wrap(err, "failed to close keystore file")
	}

	log.Info().Str("id", keystoreJSON.ID).Msg("Keystore created")

	return nil
}

func (s *service) Load(ctx context.Context, path string, password string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrKeystoreNotFound
		}
		return "", errors.Wrap(err, "failed to read keystore file")
	}

	var keystoreJSON KeystoreJSON
	if err := json.Unmarshal(raw, &keystoreJSON); err != nil {
		return "", errors.Wrap(err, "failed to parse keystore JSON")
	}

	if keystoreJSON.Version != keystoreVersion {
		return "", errors.Errorf("unsupported keystore version %d", keystoreJSON.Version)
	}

	mnemonic, err := open(&keystoreJSON.Crypto, password)
	if err != nil {
		util.LogFromContext(ctx).Debug().Err(err).Str("path", path).Msg("Failed to decrypt keystore")
		return "", err
	}

	return string(mnemonic), nil
}

func (s *service) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrap(err, "failed to stat keystore file")
}
