//go:build wireinject

package api

import (
	"testing"

	"github.com/google/wire"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/metrics"
	"github/chapool/go-txsigner/internal/wallet/address"
	"github/chapool/go-txsigner/internal/wallet/recovery"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	metrics.New,
	NewClock,
	NewKeystore,
	NewSeedManager,
	address.NewService,
	NewKeyring,
	recovery.NewRecoverer,
	NewSigner,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NoTest)
	return new(Server), nil
}

// InitNewTestServer returns a new Server instance using a mock clock.
// All the other components are initialized via go wire according to the configuration.
func InitNewTestServer(
	_ config.Server,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
