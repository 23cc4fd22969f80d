package version

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name            string
		currentVersion  string
		recordedVersion string
		expectError     bool
		errorContains   string
	}{
		{
			name:            "exact match",
			currentVersion:  "1.2.0",
			recordedVersion: "1.2.0",
		},
		{
			name:            "current patch higher",
			currentVersion:  "1.2.1",
			recordedVersion: "1.2.0",
		},
		{
			name:            "recorded patch higher",
			currentVersion:  "1.2.0",
			recordedVersion: "1.2.5",
		},
		{
			name:            "current minor higher",
			currentVersion:  "1.3.0",
			recordedVersion: "1.2.0",
			expectError:     true,
			errorContains:   "minor version mismatch",
		},
		{
			name:            "major version differs",
			currentVersion:  "2.0.0",
			recordedVersion: "1.2.0",
			expectError:     true,
			errorContains:   "major version mismatch",
		},
		{
			name:            "development build",
			currentVersion:  "main",
			recordedVersion: "1.3.0",
		},
		{
			name:            "recorded before versions were stored",
			currentVersion:  "1.2.0",
			recordedVersion: "",
		},
		{
			name:            "v prefix",
			currentVersion:  "v1.2.0",
			recordedVersion: "1.2.3",
		},
		{
			name:            "prerelease version",
			currentVersion:  "1.2.0-alpha",
			recordedVersion: "1.2.0",
		},
		{
			name:            "invalid recorded version",
			currentVersion:  "1.2.0",
			recordedVersion: "not-a-version",
			expectError:     true,
			errorContains:   "invalid recorded version",
		},
		{
			name:            "invalid current version",
			currentVersion:  "not-a-version",
			recordedVersion: "1.2.0",
			expectError:     true,
			errorContains:   "invalid current version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.currentVersion, tt.recordedVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Equal(t, errors.CategoryInvalidParameters, errors.CategoryOf(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
	require.NoError(t, CheckCompatibility(GetVersion(), GetVersion()))
}
