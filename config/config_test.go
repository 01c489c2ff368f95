package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()

	assert.Equal(t, 1.0, limits.HardwareMaxError)
	assert.Equal(t, 10.0, limits.FreeSpaceMinError)
	assert.Equal(t, 20.0, limits.FreeSpaceMinWarning)
	assert.NotEmpty(t, limits.HardwareErrorMsg)
	assert.NotEmpty(t, limits.FreeSpaceErrorMsg)
	assert.NotEmpty(t, limits.FreeSpaceWarningMsg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "missing host",
			cfg:  Config{APIToken: "token"},
			want: "required parameter 'host' is not set",
		},
		{
			name: "missing token",
			cfg:  Config{Host: "array01.example.com"},
			want: "required parameter 'token' is not set",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.cfg.Validate()
			assert.NotNil(t, err)
			assert.Equal(t, test.want, err.Error())
		})
	}

	err := Config{Host: "array01.example.com", APIToken: "token"}.Validate()
	assert.Nil(t, err)
}

func TestLoadLimitsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	body := `
free_space_min_error_percent: 5
free_space_error_message: "array almost full"
`
	err := os.WriteFile(path, []byte(body), 0o644)
	assert.Nil(t, err)

	limits, err := LoadLimits(path)
	assert.Nil(t, err)

	assert.Equal(t, 5.0, limits.FreeSpaceMinError)
	assert.Equal(t, "array almost full", limits.FreeSpaceErrorMsg)
	// untouched fields keep their defaults
	assert.Equal(t, 20.0, limits.FreeSpaceMinWarning)
	assert.Equal(t, DefaultLimits().FreeSpaceWarningMsg, limits.FreeSpaceWarningMsg)
}

func TestLoadLimitsMissingFile(t *testing.T) {
	_, err := LoadLimits(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "error reading limits file")
}

func TestLoadLimitsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	err := os.WriteFile(path, []byte("free_space_min_error_percent: [oops"), 0o644)
	assert.Nil(t, err)

	_, err = LoadLimits(path)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "error parsing limits file")
}
