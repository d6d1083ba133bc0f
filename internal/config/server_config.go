package config

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BodyLimit                      string
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

type Management struct {
	ReadinessTimeout time.Duration
	LivenessTimeout  time.Duration
	ProbeBaseURL     string
	EnableMetrics    bool
	ProcessMetrics   bool
}

type Signer struct {
	DefaultChainID uint64
	DerivationPath string
	Mnemonic       string            `json:"-"`
	Passphrase     string            `json:"-"`
	PrivateKeys    map[string]string `json:"-"` // key name -> hex private key
	// KeyNames lists the configured private key names without exposing the keys
	KeyNames []string

	// KeystorePath points to a keystore v3 file holding the encrypted mnemonic, used when Mnemonic is empty
	KeystorePath     string
	KeystorePassword string `json:"-"`
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management Management
	Signer     Signer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in the working directory can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. a signing mnemonic) and applying them modifies the process
	// global "os.Env" state.
	if !testing.Testing() {
		DotEnvTryLoad(".env.local", os.Setenv)
	}

	v := newViper()

	privateKeys := parsePrivateKeys(v.GetStringSlice("server.signer.private_keys"))
	keyNames := make([]string, 0, len(privateKeys))
	for name := range privateKeys {
		keyNames = append(keyNames, name)
	}
	slices.Sort(keyNames)

	return Server{
		Echo: EchoServer{
			Debug:                          v.GetBool("server.echo.debug"),
			ListenAddress:                  v.GetString("server.echo.listen_address"),
			HideInternalServerErrorDetails: v.GetBool("server.echo.hide_internal_server_error_details"),
			BodyLimit:                      v.GetString("server.echo.body_limit"),
			EnableRecoverMiddleware:        v.GetBool("server.echo.enable_recover_middleware"),
			EnableRequestIDMiddleware:      v.GetBool("server.echo.enable_request_id_middleware"),
			EnableLoggerMiddleware:         v.GetBool("server.echo.enable_logger_middleware"),
		},
		Logger: LoggerServer{
			Level:              parseLevel(v.GetString("server.logger.level"), zerolog.InfoLevel),
			RequestLevel:       parseLevel(v.GetString("server.logger.request_level"), zerolog.InfoLevel),
			PrettyPrintConsole: v.GetBool("server.logger.pretty_print_console"),
		},
		Management: Management{
			ReadinessTimeout: v.GetDuration("server.management.readiness_timeout"),
			LivenessTimeout:  v.GetDuration("server.management.liveness_timeout"),
			ProbeBaseURL:     v.GetString("server.management.probe_base_url"),
			EnableMetrics:    v.GetBool("server.management.enable_metrics"),
			ProcessMetrics:   v.GetBool("server.management.process_metrics"),
		},
		Signer: Signer{
			DefaultChainID:   v.GetUint64("server.signer.default_chain_id"),
			DerivationPath:   v.GetString("server.signer.derivation_path"),
			Mnemonic:         v.GetString("server.signer.mnemonic"),
			Passphrase:       v.GetString("server.signer.passphrase"),
			PrivateKeys:      privateKeys,
			KeyNames:         keyNames,
			KeystorePath:     v.GetString("server.signer.keystore_path"),
			KeystorePassword: v.GetString("server.signer.keystore_password"),
		},
	}
}

// newViper binds every config key to its ENV variable, e.g.
// server.echo.listen_address -> SERVER_ECHO_LISTEN_ADDRESS
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.echo.debug", false)
	v.SetDefault("server.echo.listen_address", ":8080")
	v.SetDefault("server.echo.hide_internal_server_error_details", true)
	v.SetDefault("server.echo.body_limit", "1M")
	v.SetDefault("server.echo.enable_recover_middleware", true)
	v.SetDefault("server.echo.enable_request_id_middleware", true)
	v.SetDefault("server.echo.enable_logger_middleware", true)

	v.SetDefault("server.logger.level", zerolog.InfoLevel.String())
	v.SetDefault("server.logger.request_level", zerolog.InfoLevel.String())
	v.SetDefault("server.logger.pretty_print_console", false)

	v.SetDefault("server.management.readiness_timeout", 4*time.Second)
	v.SetDefault("server.management.liveness_timeout", 9*time.Second)
	v.SetDefault("server.management.probe_base_url", "http://127.0.0.1:8080")
	v.SetDefault("server.management.enable_metrics", true)
	v.SetDefault("server.management.process_metrics", true)

	v.SetDefault("server.signer.default_chain_id", 1)
	v.SetDefault("server.signer.derivation_path", "m/44'/60'/0'/0/0")
	v.SetDefault("server.signer.mnemonic", "")
	v.SetDefault("server.signer.passphrase", "")
	v.SetDefault("server.signer.private_keys", []string{})
	v.SetDefault("server.signer.keystore_path", "")
	v.SetDefault("server.signer.keystore_password", "")

	return v
}

func parseLevel(value string, fallback zerolog.Level) zerolog.Level {
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		log.Warn().Err(err).Str("level", value).Msg("Invalid log level, using fallback")
		return fallback
	}
	return level
}

// parsePrivateKeys parses "name=0xhex" entries
func parsePrivateKeys(entries []string) map[string]string {
	keys := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, key, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || name == "" || key == "" {
			log.Warn().Str("entry", name).Msg("Ignoring malformed private key entry, expected name=hex")
			continue
		}
		keys[name] = key
	}
	return keys
}
