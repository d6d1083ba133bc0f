package recovery_test

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/recovery"
)

var testDigest = crypto.Keccak256Hash([]byte("recovery test digest"))

// signWithParity searches for a key whose signature over digest has the wanted recovery id
func signWithParity(t *testing.T, digest common.Hash, parity byte) (*ecdsa.PrivateKey, []byte) {
	t.Helper()

	for i := 0; i < 256; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		sig, err := crypto.Sign(digest.Bytes(), key)
		require.NoError(t, err)

		if sig[64] == parity {
			return key, sig[:64]
		}
	}

	t.Fatalf("no signature with parity %d found", parity)
	return nil, nil
}

type recoverFunc func(digest common.Hash, sig []byte, parity byte) (common.Address, error)

func (f recoverFunc) RecoverAddress(digest common.Hash, sig []byte, parity byte) (common.Address, error) {
	return f(digest, sig, parity)
}

func TestResolveParity(t *testing.T) {
	for _, parity := range []byte{0, 1} {
		key, sig := signWithParity(t, testDigest, parity)

		recid, err := recovery.Resolve(recovery.NewRecoverer(), testDigest, sig, crypto.PubkeyToAddress(key.PublicKey))
		require.NoError(t, err)
		assert.Equal(t, parity, recid)
	}
}

func TestResolveMismatch(t *testing.T) {
	_, sig := signWithParity(t, testDigest, 0)

	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	_, err = recovery.Resolve(recovery.NewRecoverer(), testDigest, sig, crypto.PubkeyToAddress(other.PublicKey))
	assert.ErrorIs(t, err, recovery.ErrRecoveryMismatch)
}

func TestResolveTriesParityZeroFirst(t *testing.T) {
	from := common.HexToAddress("0x0000000000000000000000000000000000000001")
	var tried []byte

	// both parities recover to from
	recid, err := recovery.Resolve(recoverFunc(func(_ common.Hash, _ []byte, parity byte) (common.Address, error) {
		tried = append(tried, parity)
		return from, nil
	}), testDigest, make([]byte, 64), from)
	require.NoError(t, err)
	assert.Equal(t, byte(0), recid)
	assert.Equal(t, []byte{0}, tried)
}

func TestResolveRecoveryErrorIsNonMatch(t *testing.T) {
	from := common.HexToAddress("0x0000000000000000000000000000000000000001")

	recid, err := recovery.Resolve(recoverFunc(func(_ common.Hash, _ []byte, parity byte) (common.Address, error) {
		if parity == 0 {
			return common.Address{}, errors.New("boom")
		}
		return from, nil
	}), testDigest, make([]byte, 64), from)
	require.NoError(t, err)
	assert.Equal(t, byte(1), recid)

	// one parity recovers to someone else, the other fails
	_, err = recovery.Resolve(recoverFunc(func(_ common.Hash, _ []byte, parity byte) (common.Address, error) {
		if parity == 0 {
			return common.HexToAddress("0x02"), nil
		}
		return common.Address{}, recovery.ErrInvalidSignature
	}), testDigest, make([]byte, 64), from)
	assert.ErrorIs(t, err, recovery.ErrRecoveryMismatch)
}

func TestResolveInvalidSignature(t *testing.T) {
	from := common.HexToAddress("0x0000000000000000000000000000000000000001")

	// r = s = 0
	_, err := recovery.Resolve(recovery.NewRecoverer(), testDigest, make([]byte, 64), from)
	assert.ErrorIs(t, err, recovery.ErrInvalidSignature)
}

func TestRecoverAddressRejectsInput(t *testing.T) {
	key, sig := signWithParity(t, testDigest, 0)
	rec := recovery.NewRecoverer()

	addr, err := rec.RecoverAddress(testDigest, sig, 0)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)

	tests := []struct {
		name   string
		digest common.Hash
		sig    []byte
		parity byte
	}{
		{"empty digest", common.Hash{}, sig, 0},
		{"short signature", testDigest, sig[:63], 0},
		{"long signature", testDigest, append(append([]byte{}, sig...), 0x00), 0},
		{"parity out of range", testDigest, sig, 2},
		{"zero r", testDigest, append(make([]byte, 32), sig[32:]...), 0},
		{"r above order", testDigest, append(crypto.S256().Params().N.FillBytes(make([]byte, 32)), sig[32:]...), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rec.RecoverAddress(tt.digest, tt.sig, tt.parity)
			assert.ErrorIs(t, err, recovery.ErrInvalidSignature)
		})
	}
}

func TestNormalize(t *testing.T) {
	key, low := signWithParity(t, testDigest, 0)

	out, changed := recovery.Normalize(low)
	assert.False(t, changed)
	assert.Equal(t, low, out)

	// flip s into the upper half of the order
	n := crypto.S256().Params().N
	s := new(big.Int).SetBytes(low[32:])
	high := append(append([]byte{}, low[:32]...), new(big.Int).Sub(n, s).FillBytes(make([]byte, 32))...)

	out, changed = recovery.Normalize(high)
	assert.True(t, changed)
	assert.Equal(t, low, out)
	assert.NotEqual(t, low, high, "input must not be modified")

	recid, err := recovery.Resolve(recovery.NewRecoverer(), testDigest, out, crypto.PubkeyToAddress(key.PublicKey))
	require.NoError(t, err)
	assert.Equal(t, byte(0), recid)

	short := []byte{0x01}
	out, changed = recovery.Normalize(short)
	assert.False(t, changed)
	assert.Equal(t, short, out)
}
