package probe

import (
	"time"

	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api/handlers/common"
	"github/chapool/go-txsigner/internal/config"
)

func newLiveness() *cobra.Command {
	return newProbeCommand("liveness", "Runs liveness probes", "/-/healthy", common.ProbeLiveness,
		func(m config.Management) time.Duration { return m.LivenessTimeout })
}
