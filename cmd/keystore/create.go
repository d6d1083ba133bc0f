package keystore

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/command"
	"github/chapool/go-txsigner/internal/util/prompt"
	"github/chapool/go-txsigner/internal/wallet/address"
	"github/chapool/go-txsigner/internal/wallet/keystore"
	"github/chapool/go-txsigner/internal/wallet/seed"
)

const (
	outputFlag   string = "output"
	generateFlag string = "generate"

	// 256 bits of entropy, 24 words
	entropyBits = 256
)

func newCreate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Encrypts a mnemonic into a keystore file",
		Long: `Encrypts a mnemonic into a keystore v3 file

The mnemonic and the keystore password are read from the terminal.
With --generate a new 24 word mnemonic is created and printed once.
Point SERVER_SIGNER_KEYSTORE_PATH to the file to sign with it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := cmd.Flags().GetString(outputFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", outputFlag)
			}

			generate, err := cmd.Flags().GetBool(generateFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", generateFlag)
			}

			cfg := config.DefaultServiceConfigFromEnv()
			command.ConfigureLogger(cfg.Logger)

			return runCreate(cmd.Context(), cfg, prompt.Stdin(), output, generate)
		},
	}

	cmd.Flags().StringP(outputFlag, "o", "keystore.json", "Path of the keystore file to create.")
	cmd.Flags().Bool(generateFlag, false, "Generate a new mnemonic instead of reading one.")

	return cmd
}

func runCreate(ctx context.Context, cfg config.Server, terminal *prompt.Terminal, output string, generate bool) error {
	if !terminal.IsTerminal() {
		return prompt.ErrNotATerminal
	}

	var mnemonic string
	if generate {
		entropy, err := bip39.NewEntropy(entropyBits)
		if err != nil {
			return errors.Wrap(err, "failed to generate entropy")
		}

		mnemonic, err = bip39.NewMnemonic(entropy)
		if err != nil {
			return errors.Wrap(err, "failed to generate mnemonic")
		}

		fmt.Fprintf(terminal.Out, "Write down the new mnemonic, it is not shown again:\n\n%s\n\n", mnemonic)
	} else {
		var err error
		mnemonic, err = terminal.Secret("Mnemonic: ")
		if err != nil {
			return err
		}
	}

	// validate before encrypting and report the first address for reference
	seedManager := seed.NewManager()
	if err := seedManager.Initialize(mnemonic, cfg.Signer.Passphrase); err != nil {
		return errors.Wrap(err, "invalid mnemonic")
	}
	defer seedManager.Clear()

	password, err := terminal.ConfirmedSecret("Keystore password: ")
	if err != nil {
		return err
	}

	if err := keystore.NewService(nil).Create(ctx, output, mnemonic, password); err != nil {
		return err
	}

	masterSeed, err := seedManager.Seed()
	if err != nil {
		return errors.Wrap(err, "failed to get seed")
	}
	defer clear(masterSeed)

	addr, err := address.NewService().DeriveAddress(ctx, masterSeed, cfg.Signer.DerivationPath)
	if err != nil {
		return errors.Wrap(err, "failed to derive address")
	}

	log.Info().Str("output", output).Str("address", addr.Hex()).Str("derivationPath", cfg.Signer.DerivationPath).Msg("Keystore created")
	fmt.Fprintf(os.Stdout, "%s\n", addr.Hex())

	return nil
}
