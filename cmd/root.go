package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/cmd/env"
	"github/chapool/go-txsigner/cmd/hash"
	"github/chapool/go-txsigner/cmd/keystore"
	"github/chapool/go-txsigner/cmd/probe"
	"github/chapool/go-txsigner/cmd/server"
	"github/chapool/go-txsigner/cmd/sign"
	"github/chapool/go-txsigner/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Signs legacy (EIP-155), access list (EIP-2930) and fee market (EIP-1559)
Ethereum transactions and EIP-191 personal messages.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		env.New(),
		hash.New(),
		keystore.New(),
		probe.New(),
		server.New(),
		sign.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
