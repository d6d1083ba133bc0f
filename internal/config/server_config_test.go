package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-txsigner/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestServiceConfigDoesNotPrintSecrets(t *testing.T) {
	t.Setenv("SERVER_SIGNER_MNEMONIC", "secret words")
	t.Setenv("SERVER_SIGNER_PASSPHRASE", "secret passphrase")
	t.Setenv("SERVER_SIGNER_PRIVATE_KEYS", "hot=0x4646464646464646464646464646464646464646464646464646464646464646")
	t.Setenv("SERVER_SIGNER_KEYSTORE_PATH", "/keys/keystore.json")
	t.Setenv("SERVER_SIGNER_KEYSTORE_PASSWORD", "secret password")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, "/keys/keystore.json", cfg.Signer.KeystorePath)
	assert.Equal(t, "secret password", cfg.Signer.KeystorePassword)
	assert.Equal(t, "secret words", cfg.Signer.Mnemonic)
	assert.Equal(t, "secret passphrase", cfg.Signer.Passphrase)
	assert.Equal(t, []string{"hot"}, cfg.Signer.KeyNames)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "4646")
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, ":8080", cfg.Echo.ListenAddress)
	assert.True(t, cfg.Echo.EnableRequestIDMiddleware)
	assert.Equal(t, zerolog.InfoLevel, cfg.Logger.Level)
	assert.Equal(t, 4*time.Second, cfg.Management.ReadinessTimeout)
	assert.Equal(t, uint64(1), cfg.Signer.DefaultChainID)
	assert.Equal(t, "m/44'/60'/0'/0/0", cfg.Signer.DerivationPath)
	assert.Empty(t, cfg.Signer.PrivateKeys)
}

func TestServiceConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ECHO_LISTEN_ADDRESS", ":9090")
	t.Setenv("SERVER_LOGGER_LEVEL", "debug")
	t.Setenv("SERVER_MANAGEMENT_READINESS_TIMEOUT", "1500ms")
	t.Setenv("SERVER_SIGNER_DEFAULT_CHAIN_ID", "137")
	t.Setenv("SERVER_SIGNER_PRIVATE_KEYS", "a=0x01 b=0x02 malformed")

	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, ":9090", cfg.Echo.ListenAddress)
	assert.Equal(t, zerolog.DebugLevel, cfg.Logger.Level)
	assert.Equal(t, 1500*time.Millisecond, cfg.Management.ReadinessTimeout)
	assert.Equal(t, uint64(137), cfg.Signer.DefaultChainID)
	assert.Equal(t, map[string]string{"a": "0x01", "b": "0x02"}, cfg.Signer.PrivateKeys)
	assert.ElementsMatch(t, []string{"a", "b"}, cfg.Signer.KeyNames)
}

func TestServiceConfigInvalidLevelFallsBack(t *testing.T) {
	t.Setenv("SERVER_LOGGER_LEVEL", "loud")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, zerolog.InfoLevel, cfg.Logger.Level)
}

func TestDotEnvLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.local")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_ECHO_LISTEN_ADDRESS=:7070\nSERVER_SIGNER_DEFAULT_CHAIN_ID=5\n"), 0o600))

	envs := map[string]string{}
	err := config.DotEnvLoad(path, func(key string, value string) error {
		envs[key] = value
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SERVER_ECHO_LISTEN_ADDRESS":     ":7070",
		"SERVER_SIGNER_DEFAULT_CHAIN_ID": "5",
	}, envs)

	err = config.DotEnvLoad(filepath.Join(t.TempDir(), "missing"), func(string, string) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}
