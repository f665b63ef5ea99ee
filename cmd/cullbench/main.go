// Package main is a benchmark that scatters instances in space, indexes them in an octree and reports how long
// frustum culling takes from several rotating cameras.
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/octree/logging"
	"go.viam.com/octree/octree"
	"go.viam.com/octree/scene"
	"go.viam.com/octree/utils"
)

const (
	// Flags.
	flagInstances   = "instances"
	flagSpread      = "spread"
	flagHalfExtent  = "half-extent"
	flagMinSide     = "min-side"
	flagPrune       = "prune"
	flagConfig      = "config"
	flagFrames      = "frames"
	flagInterval    = "interval"
	flagViews       = "views"
	flagCapacity    = "capacity"
	flagTurnSpeed   = "turn-speed"
	flagSeed        = "seed"
	flagPrintLevels = "print-levels"
	flagDebug       = "debug"
	flagLogFile     = "log-file"
	flagLogLevel    = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cullbench",
		Usage: "measure octree frustum culling on a random scene",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  flagInstances,
				Value: 15000,
				Usage: "number of instances to scatter",
			},
			&cli.Float64Flag{
				Name:  flagSpread,
				Value: 400,
				Usage: "instances are placed in [-spread, spread] on every axis",
			},
			&cli.Float64Flag{
				Name:  flagHalfExtent,
				Value: 500,
				Usage: "half side length of the octree root",
			},
			&cli.Float64Flag{
				Name:  flagMinSide,
				Value: octree.DefaultMinSideLength,
				Usage: "side length at which nodes stop subdividing",
			},
			&cli.BoolFlag{
				Name:  flagPrune,
				Usage: "skip subtrees whose extent is outside the frustum",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load octree configuration from JSON `FILE`; explicit flags take precedence",
			},
			&cli.IntFlag{
				Name:  flagFrames,
				Value: 200,
				Usage: "frames to run per view",
			},
			&cli.DurationFlag{
				Name:  flagInterval,
				Value: scene.DefaultFrameInterval,
				Usage: "minimum duration of a frame",
			},
			&cli.IntFlag{
				Name:  flagViews,
				Value: 4,
				Usage: "number of cameras culling in parallel",
			},
			&cli.IntFlag{
				Name:  flagCapacity,
				Value: 1024,
				Usage: "expected number of visible instances",
			},
			&cli.Float64Flag{
				Name:  flagTurnSpeed,
				Value: 0.5,
				Usage: "degrees each camera turns per frame",
			},
			&cli.Int64Flag{
				Name:  flagSeed,
				Value: 1,
				Usage: "random seed of the scene",
			},
			&cli.BoolFlag{
				Name:  flagPrintLevels,
				Usage: "print the volumes of every tree level before culling",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated every 64MB",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "minimum level to log, one of debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			logger := logging.NewLogger("cullbench")
			if c.Bool(flagDebug) {
				logger = logging.NewDebugLogger("cullbench")
			} else {
				level, err := logging.LevelFromString(c.String(flagLogLevel))
				if err != nil {
					return err
				}
				logger.SetLevel(level)
			}
			if path := c.String(flagLogFile); path != "" {
				appender, closer := logging.NewFileAppender(path, 64)
				defer func() {
					if err := closer.Close(); err != nil {
						log.Print(err)
					}
				}()
				logger.AddAppender(appender)
			}
			logging.ReplaceGlobal(logger)

			treeCfg, err := treeConfigFromFlags(c)
			if err != nil {
				return err
			}

			report, err := runBench(c.Context, benchConfig{
				Instances:   c.Int(flagInstances),
				Spread:      c.Float64(flagSpread),
				HalfExtent:  c.Float64(flagHalfExtent),
				Frames:      c.Int(flagFrames),
				Views:       c.Int(flagViews),
				Capacity:    c.Int(flagCapacity),
				Seed:        c.Int64(flagSeed),
				Interval:    c.Duration(flagInterval),
				TurnSpeed:   utils.DegToRad(c.Float64(flagTurnSpeed)),
				PrintLevels: c.Bool(flagPrintLevels),
				Tree:        treeCfg,
			}, clock.New(), logger, c.App.Writer)
			if err != nil {
				return err
			}
			return writeReport(c.App.Writer, report)
		},
	}
}

// treeConfigFromFlags reads the config file if one is given and applies the explicitly set tree flags on top.
func treeConfigFromFlags(c *cli.Context) (*octree.Config, error) {
	cfg := octree.DefaultConfig()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = readTreeConfig(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet(flagMinSide) || c.String(flagConfig) == "" {
		cfg.MinSideLength = c.Float64(flagMinSide)
	}
	if c.IsSet(flagPrune) || c.String(flagConfig) == "" {
		cfg.NodePruning = c.Bool(flagPrune)
	}
	if err := cfg.Validate("octree"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readTreeConfig(path string) (*octree.Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading octree config")
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Wrapf(err, "error parsing octree config %q", path)
	}
	return octree.DecodeConfig(attrs)
}
