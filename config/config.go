package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries everything one sensor run needs. It is built once in main
// and passed down explicitly, there is no process-global configuration state.
type Config struct {
	Host               string
	APIToken           string
	Scheme             string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Limits             Limits
}

// Validate confirms both required inputs are present. Callers must reject a
// run before anything dials out, so this never touches the network.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("required parameter 'host' is not set")
	}
	if c.APIToken == "" {
		return fmt.Errorf("required parameter 'token' is not set")
	}
	return nil
}

// Limits holds the channel limit thresholds and messages PRTG evaluates.
// Defaults match the values the sensor has always shipped with; a YAML file
// can override individual fields per array.
type Limits struct {
	HardwareMaxError    float64 `yaml:"hardware_max_error"`
	HardwareErrorMsg    string  `yaml:"hardware_error_message"`
	FreeSpaceMinError   float64 `yaml:"free_space_min_error_percent"`
	FreeSpaceErrorMsg   string  `yaml:"free_space_error_message"`
	FreeSpaceMinWarning float64 `yaml:"free_space_min_warning_percent"`
	FreeSpaceWarningMsg string  `yaml:"free_space_warning_message"`
}

func DefaultLimits() Limits {
	return Limits{
		HardwareMaxError:    1,
		HardwareErrorMsg:    "Hardware failure detected",
		FreeSpaceMinError:   10,
		FreeSpaceErrorMsg:   "Less than 10% free space left",
		FreeSpaceMinWarning: 20,
		FreeSpaceWarningMsg: "Less than 20% free space left",
	}
}

// LoadLimits reads a YAML overlay on top of the defaults. Fields absent from
// the file keep their default values.
func LoadLimits(path string) (Limits, error) {
	limits := DefaultLimits()

	body, err := os.ReadFile(path)
	if err != nil {
		return limits, fmt.Errorf("error reading limits file %s - %v", path, err)
	}

	if err := yaml.Unmarshal(body, &limits); err != nil {
		return limits, fmt.Errorf("error parsing limits file %s - %v", path, err)
	}

	return limits, nil
}
