package hash

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util/command"
)

const inputFlag string = "input"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Prints the message hash of an unsigned transaction",
		Long: `Prints the message hash of an unsigned transaction

The input file holds the same JSON body as POST /api/v1/transactions/hash:
{"chainId": 1, "transaction": {"nonce": "0", "gasPrice": "1", ...}}`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := cmd.Flags().GetString(inputFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", inputFlag)
			}

			return runHash(cmd.Context(), input)
		},
	}

	cmd.Flags().StringP(inputFlag, "i", "", "Path to the unsigned transaction JSON file.")
	_ = cmd.MarkFlagRequired(inputFlag)

	return cmd
}

func runHash(ctx context.Context, input string) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", input)
	}

	var payload types.PostHashTransactionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errors.Wrapf(err, "failed to parse %s", input)
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, cfg, func(_ context.Context, s *api.Server) error {
		chainID := payload.ChainIDOr(cfg.Signer.DefaultChainID)

		messageHash, err := s.Signer.HashTransaction(*payload.Transaction, chainID)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(&types.HashTransactionResponse{ChainID: chainID, MessageHash: messageHash}, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal message hash")
		}

		fmt.Println(string(out))

		return nil
	})
}
