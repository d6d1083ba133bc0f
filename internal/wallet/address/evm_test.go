package address_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/address"
	"github/chapool/go-txsigner/internal/wallet/seed"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testSeed(t *testing.T) []byte {
	t.Helper()

	m := seed.NewManager()
	require.NoError(t, m.Initialize(testMnemonic, ""))

	s, err := m.Seed()
	require.NoError(t, err)
	return s
}

func TestDeriveAddress(t *testing.T) {
	svc := address.NewService()

	addr, err := svc.DeriveAddress(t.Context(), testSeed(t), address.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94"), addr)
}

func TestDerivePrivateKeyMatchesAddress(t *testing.T) {
	svc := address.NewService()
	s := testSeed(t)

	for i := uint32(0); i < 5; i++ {
		path := svc.BIP44Path(i)

		privateKey, err := svc.DerivePrivateKey(t.Context(), s, path)
		require.NoError(t, err)
		require.Len(t, privateKey, 32)

		key, err := crypto.ToECDSA(privateKey)
		require.NoError(t, err)

		addr, err := svc.DeriveAddress(t.Context(), s, path)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr, path)
	}
}

func TestBIP44Path(t *testing.T) {
	svc := address.NewService()
	assert.Equal(t, address.DefaultPath, svc.BIP44Path(0))
	assert.Equal(t, "m/44'/60'/0'/0/17", svc.BIP44Path(17))
}

func TestDeriveRejectsInvalidPath(t *testing.T) {
	svc := address.NewService()
	s := testSeed(t)

	for _, path := range []string{
		"",
		"44'/60'/0'/0/0",
		"m/44'/60'/x/0/0",
		"m/44'//0",
		"m/2147483648",
		"m/-1",
	} {
		_, err := svc.DeriveAddress(t.Context(), s, path)
		assert.ErrorIs(t, err, address.ErrInvalidPath, path)
	}
}

func TestDeriveAcceptsHardenedNotation(t *testing.T) {
	svc := address.NewService()
	s := testSeed(t)

	apostrophe, err := svc.DeriveAddress(t.Context(), s, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	h, err := svc.DeriveAddress(t.Context(), s, "m/44h/60h/0h/0/0")
	require.NoError(t, err)

	assert.Equal(t, apostrophe, h)
}
