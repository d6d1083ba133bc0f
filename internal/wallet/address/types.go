package address

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// DefaultPath is the first account of the standard Ethereum BIP44 branch
const DefaultPath = "m/44'/60'/0'/0/0"

// ErrInvalidPath is returned for a derivation path that is not of the form m/a'/b/...
var ErrInvalidPath = errors.New("invalid derivation path")

// Service derives Ethereum keys and addresses from a BIP39 seed
type Service interface {
	// DeriveAddress derives the address at the BIP32 path
	DeriveAddress(ctx context.Context, seed []byte, path string) (common.Address, error)

	// DerivePrivateKey derives the 32-byte private key at the BIP32 path
	// WARNING: Caller must clear the private key after use
	DerivePrivateKey(ctx context.Context, seed []byte, path string) ([]byte, error)

	// BIP44Path returns the path of the account at addressIndex: m/44'/60'/0'/0/{index}
	BIP44Path(addressIndex uint32) string
}
