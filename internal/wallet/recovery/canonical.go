package recovery

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

var (
	secp256k1N     = crypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

// Normalize returns a copy of the 64-byte signature with s in the lower half
// of the curve order, and whether s was changed. Signatures of other lengths
// are returned unchanged.
func Normalize(sig []byte) ([]byte, bool) {
	out := make([]byte, len(sig))
	copy(out, sig)

	if len(sig) != signatureLength {
		return out, false
	}

	s := new(big.Int).SetBytes(sig[32:])
	if s.Cmp(secp256k1HalfN) <= 0 {
		return out, false
	}

	s.Sub(secp256k1N, s)
	s.FillBytes(out[32:])
	return out, true
}
