package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/de-tools/report-atlas/pkg/models/domain"
	"github.com/de-tools/report-atlas/pkg/services/config"
	"github.com/de-tools/report-atlas/pkg/services/report"
)

// apiKeyEnv is the fallback credential source when --api-key is not given.
const apiKeyEnv = "MARKET_LENS_API_KEY"

// Dependencies are the shared wiring every block command needs.
type Dependencies struct {
	Settings   *config.Settings
	Out        io.Writer
	NewService func(apiKey string) (*report.Service, error)
}

func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(apiKeyEnv)
}

// printEnvelope writes the block envelope as indented JSON. When the block
// failed, the classified error is returned so the process exits non-zero.
func printEnvelope(out io.Writer, body any, blockErr *domain.BlockError) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		return err
	}
	if blockErr != nil {
		return blockErr
	}
	return nil
}
