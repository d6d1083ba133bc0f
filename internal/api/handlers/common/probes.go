package common

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/wallet/keyring"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

const probeKeyName = "probe"

// message hash of the EIP-155 example transaction on chain 1
var probeMessageHash = common.HexToHash("0xdaf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53")

func probeParams() transaction.Params {
	to := common.HexToAddress("0x3535353535353535353535353535353535353535")
	return transaction.Params{
		To:       &to,
		Nonce:    uint256.NewInt(9),
		Gas:      uint256.NewInt(21000),
		GasPrice: uint256.NewInt(20_000_000_000),
		Value:    uint256.NewInt(1_000_000_000_000_000_000),
	}
}

// ProbeReadiness checks that all server components are initialized and the
// encoder reproduces the EIP-155 example message hash.
func ProbeReadiness(_ context.Context, s *api.Server) error {
	if !s.Ready() {
		return errors.New("server is not fully initialized")
	}

	hash, err := s.Signer.HashTransaction(probeParams(), 1)
	if err != nil {
		return errors.Wrap(err, "failed to hash probe transaction")
	}

	if hash != probeMessageHash {
		return errors.Errorf("probe transaction hashed to %s, expected %s", hash.Hex(), probeMessageHash.Hex())
	}

	return nil
}

// ProbeLiveness runs ProbeReadiness and a complete sign cycle with a throwaway
// key through the server's recoverer.
func ProbeLiveness(ctx context.Context, s *api.Server) error {
	if err := ProbeReadiness(ctx, s); err != nil {
		return err
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return errors.Wrap(err, "failed to generate probe key")
	}

	svc, err := signer.NewService(keyring.NewKeySigner(map[string]*ecdsa.PrivateKey{probeKeyName: key}), s.Recoverer, nil, s.Clock)
	if err != nil {
		return errors.Wrap(err, "failed to create probe signer")
	}

	signed, err := svc.SignTransaction(ctx, probeParams(), crypto.PubkeyToAddress(key.PublicKey), signer.KeySelector{KeyName: probeKeyName}, 1)
	if err != nil {
		return errors.Wrap(err, "failed to sign probe transaction")
	}

	if signed.V != 37 && signed.V != 38 {
		return errors.Errorf("probe transaction signed with v=%d", signed.V)
	}

	return nil
}
