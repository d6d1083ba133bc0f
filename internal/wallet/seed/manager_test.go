package seed_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/seed"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestManagerLifecycle(t *testing.T) {
	m := seed.NewManager()
	assert.False(t, m.IsInitialized())

	_, err := m.Seed()
	assert.ErrorIs(t, err, seed.ErrNotInitialized)

	require.NoError(t, m.Initialize(testMnemonic, ""))
	assert.True(t, m.IsInitialized())

	s, err := m.Seed()
	require.NoError(t, err)

	// BIP39 reference vector for the all-abandon mnemonic with an empty passphrase
	assert.Equal(t,
		"0x5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		hexutil.Encode(s))

	// callers get a copy
	s[0] = 0xff
	again, err := m.Seed()
	require.NoError(t, err)
	assert.Equal(t, byte(0x5e), again[0])

	m.Clear()
	assert.False(t, m.IsInitialized())
	_, err = m.Seed()
	assert.ErrorIs(t, err, seed.ErrNotInitialized)
}

func TestManagerPassphraseChangesSeed(t *testing.T) {
	a, b := seed.NewManager(), seed.NewManager()
	require.NoError(t, a.Initialize(testMnemonic, ""))
	require.NoError(t, b.Initialize(testMnemonic, "TREZOR"))

	seedA, err := a.Seed()
	require.NoError(t, err)
	seedB, err := b.Seed()
	require.NoError(t, err)

	assert.NotEqual(t, seedA, seedB)
}

func TestManagerNormalizesWhitespace(t *testing.T) {
	a, b := seed.NewManager(), seed.NewManager()
	require.NoError(t, a.Initialize(testMnemonic, ""))
	require.NoError(t, b.Initialize("  abandon abandon abandon abandon abandon abandon\n abandon abandon abandon abandon abandon   about ", ""))

	seedA, err := a.Seed()
	require.NoError(t, err)
	seedB, err := b.Seed()
	require.NoError(t, err)

	assert.Equal(t, seedA, seedB)
}

func TestManagerRejectsInvalidMnemonic(t *testing.T) {
	m := seed.NewManager()

	// bad checksum
	err := m.Initialize("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", "")
	assert.ErrorIs(t, err, seed.ErrInvalidMnemonic)

	err = m.Initialize("not a mnemonic", "")
	assert.ErrorIs(t, err, seed.ErrInvalidMnemonic)

	assert.False(t, m.IsInitialized())
}
