package address

import (
	"context"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

const privateKeyLength = 32

func (s *service) DeriveAddress(ctx context.Context, seed []byte, path string) (common.Address, error) {
	privateKey, err := s.DerivePrivateKey(ctx, seed, path)
	if err != nil {
		return common.Address{}, err
	}
	defer clear(privateKey)

	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (s *service) DerivePrivateKey(_ context.Context, seed []byte, path string) ([]byte, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, err
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	// bip32 may return keys shorter than 32 bytes
	return common.LeftPadBytes(key.Key, privateKeyLength), nil
}

// parseBIP44Path parses a BIP32 path string into child indices
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parseBIP44Path(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if parts[0] != "m" {
		return nil, errors.Wrapf(ErrInvalidPath, "%q must start with m", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "%q: invalid segment %q", path, part)
		}

		child := uint32(index)
		if hardened {
			child += bip32.FirstHardenedChild
		}

		indices = append(indices, child)
	}

	return indices, nil
}
