package signer_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/wallet/recovery"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

func TestHashMessage(t *testing.T) {
	expected := crypto.Keccak256Hash([]byte("\x19Ethereum Signed Message:\n5hello"))
	assert.Equal(t, expected, signer.HashMessage([]byte("hello")))

	empty := crypto.Keccak256Hash([]byte("\x19Ethereum Signed Message:\n0"))
	assert.Equal(t, empty, signer.HashMessage(nil))
}

func TestSignMessage(t *testing.T) {
	key := eip155Key(t)
	from := crypto.PubkeyToAddress(key.PublicKey)
	svc, _ := newService(t, &fakeSigner{sign: keySignerFn(key)})

	message := []byte("sign in to example.org")
	signed, err := svc.SignMessage(t.Context(), message, from, signer.KeySelector{KeyName: "hot"})
	require.NoError(t, err)

	assert.Equal(t, signer.HashMessage(message), signed.MessageHash)
	assert.Contains(t, []uint64{27, 28}, signed.V)
	require.Len(t, signed.Signature, 65)
	assert.Equal(t, byte(signed.V), signed.Signature[64])
	assert.Equal(t, signed.R.Bytes(), []byte(signed.Signature[:32]))
	assert.Equal(t, signed.S.Bytes(), []byte(signed.Signature[32:64]))

	// the 65 byte form recovers with the usual v - 27 convention
	sig := append([]byte{}, signed.Signature...)
	sig[64] -= 27
	publicKey, err := crypto.SigToPub(signed.MessageHash.Bytes(), sig)
	require.NoError(t, err)
	assert.Equal(t, from, crypto.PubkeyToAddress(*publicKey))
}

func TestSignMessageRecoveryMismatch(t *testing.T) {
	svc, _ := newService(t, &fakeSigner{sign: keySignerFn(eip155Key(t))})

	signed, err := svc.SignMessage(t.Context(), []byte("hello"), common.HexToAddress("0x01"), signer.KeySelector{})
	assert.Nil(t, signed)
	assert.ErrorIs(t, err, recovery.ErrRecoveryMismatch)

	var stageErr *signer.Error
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, signer.HashMessage([]byte("hello")), stageErr.MessageHash)
}

func TestSignMessageSigningFailed(t *testing.T) {
	reason := errors.New("rejected by operator")
	svc, _ := newService(t, &fakeSigner{sign: func(common.Hash) ([]byte, error) { return nil, reason }})

	_, err := svc.SignMessage(t.Context(), []byte("hello"), common.HexToAddress("0x01"), signer.KeySelector{})

	var failed *signer.SigningFailedError
	require.True(t, errors.As(err, &failed))
	assert.ErrorIs(t, err, reason)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "built", signer.StageBuilt.String())
	assert.Equal(t, "hashed", signer.StageHashed.String())
	assert.Equal(t, "awaiting_signature", signer.StageAwaitingSignature.String())
	assert.Equal(t, "recovery_resolved", signer.StageRecoveryResolved.String())
	assert.Equal(t, "finalized", signer.StageFinalized.String())
	assert.Equal(t, "unknown", signer.Stage(42).String())
}
