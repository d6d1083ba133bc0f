package sign

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util/command"
	"github/chapool/go-txsigner/internal/util/prompt"
	"github/chapool/go-txsigner/internal/wallet/transaction"
	"golang.org/x/sync/errgroup"
)

const (
	inputFlag            string = "input"
	outputFlag           string = "output"
	promptPassphraseFlag string = "prompt-passphrase"
	concurrencyFlag      string = "concurrency"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Signs unsigned transactions offline",
		Long: `Signs unsigned transactions offline

Every input file holds the same JSON body as POST /api/v1/transactions/sign:
{"chainId": 1, "from": "0x...", "transaction": {...}, "key": {"derivationPath": "m/44'/60'/0'/0/0"}}

The signed transactions are written as a JSON array in input order.
Missing secrets (keystore password, or mnemonic when no keys are configured)
are read from the terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inputs, err := cmd.Flags().GetStringArray(inputFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", inputFlag)
			}

			output, err := cmd.Flags().GetString(outputFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", outputFlag)
			}

			promptPassphrase, err := cmd.Flags().GetBool(promptPassphraseFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", promptPassphraseFlag)
			}

			concurrency, err := cmd.Flags().GetInt(concurrencyFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", concurrencyFlag)
			}

			return runSign(cmd.Context(), inputs, output, promptPassphrase, concurrency)
		},
	}

	cmd.Flags().StringArrayP(inputFlag, "i", nil, "Path to an unsigned transaction JSON file, may be repeated.")
	cmd.Flags().StringP(outputFlag, "o", "", "Write the result to this file instead of stdout.")
	cmd.Flags().Bool(promptPassphraseFlag, false, "Read the BIP39 passphrase from the terminal.")
	cmd.Flags().Int(concurrencyFlag, 4, "Number of transactions signed in parallel.")
	_ = cmd.MarkFlagRequired(inputFlag)

	return cmd
}

func runSign(ctx context.Context, inputs []string, output string, promptPassphrase bool, concurrency int) error {
	payloads, err := readPayloads(inputs)
	if err != nil {
		return err
	}

	cfg := config.DefaultServiceConfigFromEnv()
	if err := applyPrompts(&cfg.Signer, prompt.Stdin(), promptPassphrase); err != nil {
		return err
	}

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		signed, err := signAll(ctx, s, cfg.Signer.DefaultChainID, payloads, concurrency)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(signed, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal signed transactions")
		}

		if output == "" {
			fmt.Println(string(out))
			return nil
		}

		if err := os.WriteFile(output, append(out, '\n'), 0o600); err != nil {
			return errors.Wrapf(err, "failed to write %s", output)
		}
		log.Info().Str("output", output).Int("count", len(signed)).Msg("Signed transactions written")

		return nil
	})
}

func readPayloads(inputs []string) ([]types.PostSignTransactionPayload, error) {
	payloads := make([]types.PostSignTransactionPayload, len(inputs))
	for i, input := range inputs {
		raw, err := os.ReadFile(input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", input)
		}

		if err := json.Unmarshal(raw, &payloads[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", input)
		}

		if err := payloads[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid %s", input)
		}
	}

	return payloads, nil
}

// signAll signs payloads concurrently, the results keep the input order
func signAll(ctx context.Context, s *api.Server, defaultChainID uint64, payloads []types.PostSignTransactionPayload, concurrency int) ([]*transaction.SignedTransaction, error) {
	signed := make([]*transaction.SignedTransaction, len(payloads))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i := range payloads {
		payload := payloads[i]
		g.Go(func() error {
			result, err := s.Signer.SignTransaction(ctx, *payload.Transaction, *payload.From, payload.Key, payload.ChainIDOr(defaultChainID))
			if err != nil {
				return errors.Wrapf(err, "failed to sign transaction %d", i)
			}
			signed[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return signed, nil
}
