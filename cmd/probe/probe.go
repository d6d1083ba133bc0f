package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/command"
)

const (
	verboseFlag string = "verbose"
	remoteFlag  string = "remote"
)

type probeFunc func(ctx context.Context, s *api.Server) error

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

func newProbeCommand(use string, short string, path string, probe probeFunc, timeout func(config.Management) time.Duration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `

Runs the probes in process. With --remote the probe endpoint
of the server at SERVER_MANAGEMENT_PROBE_BASE_URL is queried instead.
Exits with a non-zero code when a probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", verboseFlag)
			}

			remote, err := cmd.Flags().GetBool(remoteFlag)
			if err != nil {
				return errors.Wrapf(err, "failed to get %s flag", remoteFlag)
			}

			cfg := config.DefaultServiceConfigFromEnv()
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout(cfg.Management))
			defer cancel()

			if remote {
				err = runRemote(ctx, cfg.Management.ProbeBaseURL+path, verbose)
			} else {
				err = command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
					return probe(ctx, s)
				})
			}

			if err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "Probe failed: %v\n", err)
				}
				return err
			}

			if verbose {
				fmt.Println("Probe succeeded.")
			}

			return nil
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")
	cmd.Flags().Bool(remoteFlag, false, "Query the probe endpoint of a running server.")

	return cmd
}

func runRemote(ctx context.Context, url string, verbose bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create probe request")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to query probe endpoint")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read probe response")
	}

	if verbose {
		fmt.Printf("%s %d: %s\n", url, res.StatusCode, body)
	}

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("probe endpoint returned status %d", res.StatusCode)
	}

	return nil
}
