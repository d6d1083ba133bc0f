// Package keyring provides local RawSigner implementations backed by a BIP39
// seed or by a fixed set of private keys.
package keyring

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

// ErrUnknownKey is returned when a KeySelector does not name an available key
var ErrUnknownKey = errors.New("unknown key")

// Keyring is a RawSigner that can also report the address of a key
type Keyring interface {
	signer.RawSigner

	// Address returns the address of the selected key
	Address(ctx context.Context, key signer.KeySelector) (common.Address, error)
}
