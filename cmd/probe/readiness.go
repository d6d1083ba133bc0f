package probe

import (
	"time"

	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api/handlers/common"
	"github/chapool/go-txsigner/internal/config"
)

func newReadiness() *cobra.Command {
	return newProbeCommand("readiness", "Runs readiness probes", "/-/ready", common.ProbeReadiness,
		func(m config.Management) time.Duration { return m.ReadinessTimeout })
}
