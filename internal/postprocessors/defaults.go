package postprocessors

import (
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/postprocessors/artifact"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/postprocessors/timestamp"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(timestamp.Name, buildTimestamp)
	r.Register(artifact.Name, buildArtifact)
}

// buildTimestamp creates a timestamp processor from generic config.
// Supported config keys:
//   - use_mod_time (bool): prefer the file modification time (default: true)
//   - location (string): IANA zone applied to the fallback time (default: UTC)
func buildTimestamp(cfg map[string]any) (driven.ResultProcessor, error) {
	var opts []timestamp.Option

	if cfg != nil {
		if useModTime, ok := cfg["use_mod_time"].(bool); ok {
			opts = append(opts, timestamp.WithModTime(useModTime))
		}
		if name, ok := cfg["location"].(string); ok && name != "" {
			loc, err := time.LoadLocation(name)
			if err != nil {
				return nil, err
			}
			opts = append(opts, timestamp.WithLocation(loc))
		}
	}

	return timestamp.New(opts...), nil
}

func buildArtifact(_ map[string]any) (driven.ResultProcessor, error) {
	return artifact.New(), nil
}
