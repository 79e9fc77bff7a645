package roadmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"seehuhn.de/go/roadmark/junction"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/ransac"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the parameters for generating road markings.
// Lengths are in metres.
type Config struct {
	Kind          marking.Kind `json:"kind"`
	Width         float64      `json:"width" validate:"gt=0"`
	Spacing       float64      `json:"spacing" validate:"gte=0"`
	CrossingWidth float64      `json:"crossing_width" validate:"gt=0"`
	ArrowLength   float64      `json:"arrow_length" validate:"gt=0"`

	Iterations        int     `json:"iterations" validate:"gt=0"`
	Consensus         int     `json:"consensus" validate:"gt=0"`
	DistanceThreshold float64 `json:"distance_threshold" validate:"gt=0"`
	Seed              uint64  `json:"seed"`

	// Fit selects whether the markings follow only the points which
	// support the fitted line.  The fit itself is always reported.
	Fit bool `json:"fit"`

	Proximity float64 `json:"proximity" validate:"gt=0"`
	Tolerance float64 `json:"tolerance" validate:"gte=0"` // for sample.Normalize

	// Densify, if positive, resamples all roads to at most this point
	// spacing before junctions are detected.  Sparse knot sequences can
	// otherwise miss a crossing between two far apart knots.
	Densify float64 `json:"densify" validate:"gte=0"`

	// Flatness is the curve tolerance for Generator.GeneratePath.
	// Zero selects sample.DefaultFlatness.
	Flatness float64 `json:"flatness" validate:"gte=0"`

	Preview bool          `json:"preview"`
	Color   marking.Color `json:"color"`
}

// DefaultConfig returns the settings of the road marking dialog.
func DefaultConfig() Config {
	return Config{
		Kind:              marking.KindSolid,
		Width:             0.15,
		Spacing:           0.3,
		CrossingWidth:     marking.DefaultCrossingWidth,
		ArrowLength:       marking.DefaultArrowLength,
		Iterations:        ransac.DefaultMaxIterations,
		Consensus:         ransac.DefaultConsensus,
		DistanceThreshold: ransac.DefaultDistanceThreshold,
		Seed:              ransac.DefaultSeed,
		Proximity:         junction.DefaultProximity,
		Color:             marking.White,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that all parameters are within range.
func (c Config) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidConfig, int(c.Kind))
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Spec returns the marking spec selected by c.
func (c Config) Spec() marking.Spec {
	switch s := marking.NewSpec(c.Kind, c.Width, c.Spacing).(type) {
	case marking.Crosswalk:
		s.CrossingWidth = c.CrossingWidth
		return s
	case marking.GuideLine:
		s.ArrowLength = c.ArrowLength
		return s
	default:
		return s
	}
}

// FitParams returns the line fitting parameters selected by c.
func (c Config) FitParams() ransac.Params {
	return ransac.Params{
		MaxIterations:     c.Iterations,
		Consensus:         c.Consensus,
		DistanceThreshold: c.DistanceThreshold,
		Seed:              c.Seed,
	}
}

// LoadConfig reads a JSON configuration file.  Fields missing from the
// file keep their values from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
