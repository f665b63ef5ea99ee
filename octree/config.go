package octree

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/octree/utils"
)

// DefaultMinSideLength is the side length at or below which nodes stop subdividing. It has a large impact on
// performance and should be tuned to the scale of the scene.
const DefaultMinSideLength = 1.0

// Config describes how a tree subdivides and how it is traversed.
type Config struct {
	// MinSideLength is the side length at or below which a node stores colliding items together in a single
	// minimum leaf instead of subdividing.
	MinSideLength float64 `json:"min_side_length"`
	// NodePruning skips whole subtrees whose extent is outside the frustum during culling.
	NodePruning bool `json:"node_pruning"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{MinSideLength: DefaultMinSideLength}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if !utils.IsFinite(cfg.MinSideLength) {
		err = multierr.Append(err, newConfigFieldError(path, "min_side_length", "must be finite"))
	} else if cfg.MinSideLength <= 0 {
		err = multierr.Append(err, newConfigFieldError(path, "min_side_length",
			fmt.Sprintf("must be greater than zero, got %.3f", cfg.MinSideLength)))
	}
	return err
}

// DecodeConfig converts loosely typed attributes, e.g. parsed JSON, into a validated Config. Attributes that are
// not given keep their default values.
func DecodeConfig(attrs map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrap(err, "error decoding octree config")
	}
	if err := cfg.Validate("octree"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConfigFieldError(path, field, reason string) error {
	return errors.Errorf("%s.%s: %s", path, field, reason)
}
