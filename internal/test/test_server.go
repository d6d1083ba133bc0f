package test

import (
	"context"
	"testing"
	"time"

	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/router"
	"github/chapool/go-txsigner/internal/config"
)

// TestMnemonic is the BIP39 all-abandon test mnemonic, its first account is TestAddress
const TestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// TestAddress is the address at m/44'/60'/0'/0/0 of TestMnemonic
const TestAddress = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

// WithTestServer returns a fresh Server instance signing with TestMnemonic
// and a mock clock. The server is shut down after closure returns.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestServerConfig(), closure)
}

// WithTestServerConfigurable returns a fresh Server instance for cfg
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s := NewTestServer(t, cfg)

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}

// DefaultTestServerConfig returns the ENV based config with the test signing setup applied
func DefaultTestServerConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Logger.PrettyPrintConsole = false
	cfg.Signer.Mnemonic = TestMnemonic
	cfg.Signer.Passphrase = ""
	cfg.Signer.DerivationPath = "m/44'/60'/0'/0/0"
	cfg.Signer.DefaultChainID = 1
	cfg.Management.EnableMetrics = true

	return cfg
}

// NewTestServer returns an initialized Server with its router attached
func NewTestServer(t *testing.T, cfg config.Server) *api.Server {
	t.Helper()

	s, err := api.InitNewTestServer(cfg, t)
	if err != nil {
		t.Fatalf("Failed to init test server: %v", err)
	}

	if err := router.Init(s); err != nil {
		t.Fatalf("Failed to init router: %v", err)
	}

	return s
}
