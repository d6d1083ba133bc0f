package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/test"
	"github/chapool/go-txsigner/internal/util/command"
	"github/chapool/go-txsigner/internal/wallet/signer"
)

func TestWithServer(t *testing.T) {
	ctx := t.Context()

	var testError = errors.New("test error")

	cfg := test.DefaultTestServerConfig()
	resultErr := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		require.True(t, s.Ready())

		from, err := s.Keyring.Address(ctx, signer.KeySelector{})
		require.NoError(t, err)
		assert.Equal(t, test.TestAddress, from.Hex())

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestWithServerInitError(t *testing.T) {
	cfg := test.DefaultTestServerConfig()
	cfg.Signer.Mnemonic = "not a valid mnemonic"

	called := false
	err := command.WithServer(t.Context(), cfg, func(_ context.Context, _ *api.Server) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}

func TestNewSubcommandGroup(t *testing.T) {
	sub := &cobra.Command{Use: "child", RunE: func(_ *cobra.Command, _ []string) error { return nil }}
	group := command.NewSubcommandGroup("parent", sub)

	assert.Equal(t, "parent", group.Use)
	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "child", group.Commands()[0].Use)
}
