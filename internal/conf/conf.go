// Package conf holds the bootstrap configuration read from configs/config.yaml.
package conf

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/yola1107/kratos/v2/config"
	"github.com/yola1107/kratos/v2/config/file"
)

const (
	defaultSamples = 3000
	defaultSeed    = 123456789
	defaultTrials  = 100

	defaultMaxSamples = 10_000_000
	defaultMaxTrials  = 1000
	defaultHTTP       = "0.0.0.0:8000"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Bootstrap is the root of the configuration tree.
type Bootstrap struct {
	Server    *Server    `json:"server"`
	Estimator *Estimator `json:"estimator"`
	Data      *Data      `json:"data"`
	Log       *Log       `json:"log"`
}

// Server configures the transports started in serve mode.
type Server struct {
	Http *Server_HTTP `json:"http"`
}

// Server_HTTP is the HTTP listener.
type Server_HTTP struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Estimator holds the run parameters.
type Estimator struct {
	// Samples is the plain estimator's draw count; the antithetic run uses Samples/2 pairs.
	Samples int `json:"samples"`
	// Seed initialises the Mersenne Twister.
	Seed uint32 `json:"seed"`
	// Echo reads and prints one trailing value after the results.
	Echo bool `json:"echo"`
	// Format is text or json.
	Format string `json:"format"`
	// Trials is the number of seeds a study runs.
	Trials int `json:"trials"`
	// MaxSamples and MaxTrials bound a single request; zero means unbounded.
	MaxSamples int `json:"max_samples"`
	MaxTrials  int `json:"max_trials"`
}

// Data configures the input collaborator.
type Data struct {
	// Input is a file path, or "-" / empty for standard input.
	Input string `json:"input"`
}

// Log configures the logger.
type Log struct {
	Level string `json:"level"`
	// Directory enables rotating file logs when set; otherwise logs go to stderr.
	Directory string `json:"directory"`
}

// Duration reads "1.5s" style strings.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = p
	case float64:
		d.Duration = time.Duration(x)
	case nil:
		d.Duration = 0
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Default returns the configuration used when no file sets a value.
func Default() *Bootstrap {
	return &Bootstrap{
		Server: &Server{Http: &Server_HTTP{
			Network: "tcp",
			Addr:    defaultHTTP,
			Timeout: Duration{time.Second},
		}},
		Estimator: &Estimator{
			Samples: defaultSamples,
			Seed:    defaultSeed,
			Format:  "text",
			Trials:  defaultTrials,

			MaxSamples: defaultMaxSamples,
			MaxTrials:  defaultMaxTrials,
		},
		Data: &Data{Input: "-"},
		Log:  &Log{Level: "info"},
	}
}

// Load reads the file or directory at path over the defaults.
func Load(path string) (*Bootstrap, error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, err
	}

	bc := Default()
	if err := c.Scan(bc); err != nil {
		return nil, err
	}
	return bc, bc.Validate()
}

// Validate rejects values no run could use.
func (bc *Bootstrap) Validate() error {
	if bc.Estimator == nil || bc.Server == nil || bc.Server.Http == nil || bc.Data == nil || bc.Log == nil {
		return fmt.Errorf("conf: missing section")
	}
	switch bc.Estimator.Format {
	case "text", "json":
	default:
		return fmt.Errorf("conf: estimator.format %q: want text or json", bc.Estimator.Format)
	}
	return nil
}
