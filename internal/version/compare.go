package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// CheckCompatibility checks whether artifacts written by recordedVersion can be read
// by currentVersion. Statistics names and report columns only change on minor releases.
//
// Compatibility Rules:
//   - If either version is "main" (development build) or empty, the check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 reads reports of 1.2.5)
func CheckCompatibility(currentVersion, recordedVersion string) error {
	currentVersion = strings.TrimPrefix(currentVersion, "v")
	recordedVersion = strings.TrimPrefix(recordedVersion, "v")

	if currentVersion == "main" || recordedVersion == "main" || currentVersion == "" || recordedVersion == "" {
		return nil
	}

	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid current version '%s'", currentVersion)
	}

	recorded, err := semver.NewVersion(recordedVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid recorded version '%s'", recordedVersion)
	}

	if current.Major() != recorded.Major() {
		return errors.Newf(errors.ErrCodeInvalidParameter, "major version mismatch: running %d.x.x but the artifact was written by %d.x.x",
			current.Major(), recorded.Major())
	}

	if current.Minor() != recorded.Minor() {
		return errors.Newf(errors.ErrCodeInvalidParameter, "minor version mismatch: running %d.%d.x but the artifact was written by %d.%d.x",
			current.Major(), current.Minor(), recorded.Major(), recorded.Minor())
	}

	return nil
}
