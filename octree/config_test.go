package octree

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestConfigValidate(t *testing.T) {
	test.That(t, DefaultConfig().Validate("octree"), test.ShouldBeNil)

	for _, tc := range []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"zero", Config{MinSideLength: 0}, "octree.min_side_length: must be greater than zero, got 0.000"},
		{"negative", Config{MinSideLength: -2}, "octree.min_side_length: must be greater than zero, got -2.000"},
		{"nan", Config{MinSideLength: math.NaN()}, "octree.min_side_length: must be finite"},
		{"inf", Config{MinSideLength: math.Inf(1)}, "octree.min_side_length: must be finite"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate("octree")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldEqual, tc.expected)
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]interface{}{})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cfg, test.ShouldResemble, DefaultConfig())
	})

	t.Run("all fields", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]interface{}{
			"min_side_length": 2.5,
			"node_pruning":    true,
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cfg.MinSideLength, test.ShouldEqual, 2.5)
		test.That(t, cfg.NodePruning, test.ShouldBeTrue)
	})

	t.Run("weakly typed", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]interface{}{
			"min_side_length": "4",
			"node_pruning":    "true",
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cfg.MinSideLength, test.ShouldEqual, 4.0)
		test.That(t, cfg.NodePruning, test.ShouldBeTrue)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := DecodeConfig(map[string]interface{}{"max_depth": 3})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "error decoding octree config")
		test.That(t, err.Error(), test.ShouldContainSubstring, "max_depth")
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := DecodeConfig(map[string]interface{}{"min_side_length": -1})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "must be greater than zero")
	})
}
