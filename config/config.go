// Package config loads and validates the engine settings of a route
// generation run.
//
//	route_reuse: 10        # drives the landmark slot cap
//	epsilon: 0.2           # lower-bound slack, ≥ 0
//	scheme: triaxial       # triaxial | q | r | s | wtn
//	triaxial_seeds: 3      # 3 or 6 coordinate-extreme seeds
//	workers: 8             # forest and batch parallelism
//	backend: auto          # auto | reference | unified
//	discount: 0.9          # route-reuse weight factor, (0, 1]
//
// Absent keys keep their Default values; unknown keys are rejected.
package config

import (
	"bytes"
	"io"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/travellermap/altroute/forest"
	"github.com/travellermap/altroute/landmarks"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the tunables shared by landmark selection, the forest and
// route search.
type Config struct {
	RouteReuse    int     `yaml:"route_reuse" validate:"min=1"`
	Epsilon       float64 `yaml:"epsilon" validate:"min=0"`
	Scheme        string  `yaml:"scheme" validate:"oneof=triaxial q r s wtn"`
	TriaxialSeeds int     `yaml:"triaxial_seeds" validate:"oneof=3 6"`
	Workers       int     `yaml:"workers" validate:"min=1"`
	Backend       string  `yaml:"backend" validate:"oneof=auto reference unified"`
	Discount      float64 `yaml:"discount" validate:"gt=0,lte=1"`
}

var validate = validator.New()

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		RouteReuse:    10,
		Epsilon:       0.2,
		Scheme:        landmarks.SchemeTriaxial,
		TriaxialSeeds: 3,
		Workers:       max(1, runtime.NumCPU()),
		Backend:       string(forest.BackendAuto),
		Discount:      0.9,
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. Empty input
// yields Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	cfg.Scheme = strings.ToLower(strings.TrimSpace(cfg.Scheme))
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its constraint and reports all
// failures at once.
func (c Config) Validate() error {
	var msgs []string
	if math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		msgs = append(msgs, "epsilon must be finite")
	}
	if err := validate.Struct(c); err != nil {
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			return errors.Wrap(err, "config: validate")
		}
		for _, fe := range fields {
			msgs = append(msgs, describe(fe))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.Wrap(ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "min":
		return field + " must be at least " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "lte":
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}

// MaxSlots is the landmark slot cap implied by RouteReuse.
func (c Config) MaxSlots() int {
	return landmarks.MaxSlots(c.RouteReuse)
}

// ForestBackend resolves Backend; "auto" stays forest.BackendAuto.
func (c Config) ForestBackend() (forest.Backend, error) {
	return forest.ParseBackend(c.Backend)
}

// LandmarkOptions translates the config into landmark scheme options.
// It assumes c is valid.
func (c Config) LandmarkOptions() ([]landmarks.Option, error) {
	b, err := c.ForestBackend()
	if err != nil {
		return nil, err
	}
	return []landmarks.Option{
		landmarks.WithRouteReuse(c.RouteReuse),
		landmarks.WithEpsilon(c.Epsilon),
		landmarks.WithSeeds(c.TriaxialSeeds),
		landmarks.WithWorkers(c.Workers),
		landmarks.WithBackend(b),
	}, nil
}

// ForestOptions translates the config into forest options. It assumes c is
// valid.
func (c Config) ForestOptions() []forest.Option {
	return []forest.Option{
		forest.WithEpsilon(c.Epsilon),
		forest.WithWorkers(c.Workers),
	}
}
