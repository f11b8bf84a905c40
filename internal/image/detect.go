package image

import (
	"fmt"

	"github.com/meridian-data/snowkit/internal/logging"
	"github.com/meridian-data/snowkit/internal/system"
)

// Detect determines which container engine is available on the system.
// Docker is preferred since the SPCS registry tooling documents it;
// podman is a drop-in fallback.
func Detect(exec system.CommandExecutor) (string, error) {
	for _, candidate := range []string{"docker", "podman"} {
		if _, err := exec.LookPath(candidate); err == nil {
			logging.Debug("container engine detected", "engine", candidate)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("neither docker nor podman found in PATH")
}
