package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/octree/camera"
	"go.viam.com/octree/logging"
	"go.viam.com/octree/octree"
	"go.viam.com/octree/scene"
	"go.viam.com/octree/spatialmath"
)

// planet is the asset every benchmark instance is created from.
var planet = scene.Asset{Name: "planet", Volume: spatialmath.NewCube(1)}

type benchConfig struct {
	Instances   int
	Spread      float64
	HalfExtent  float64
	Frames      int
	Views       int
	Capacity    int
	Seed        int64
	Interval    time.Duration
	TurnSpeed   float64
	PrintLevels bool
	Tree        *octree.Config
}

func (cfg *benchConfig) validate() error {
	var err error
	if cfg.Instances <= 0 {
		err = multierr.Append(err, errors.Errorf("instances must be positive, got %d", cfg.Instances))
	}
	if cfg.Frames <= 0 {
		err = multierr.Append(err, errors.Errorf("frames must be positive, got %d", cfg.Frames))
	}
	if cfg.Views <= 0 {
		err = multierr.Append(err, errors.Errorf("views must be positive, got %d", cfg.Views))
	}
	if cfg.Spread <= 0 {
		err = multierr.Append(err, errors.Errorf("spread must be positive, got %.2f", cfg.Spread))
	}
	return err
}

// viewResult holds the per frame measurements of one camera view.
type viewResult struct {
	view     int
	cullTime []float64
	visible  []float64
}

type benchReport struct {
	indexed int
	views   []viewResult
}

// runBench builds a random scene and culls it from cfg.Views cameras in parallel, each turning a little every
// frame.
func runBench(ctx context.Context, cfg benchConfig, clk clock.Clock, logger logging.Logger, out io.Writer) (*benchReport, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	s := scene.New(scene.Space(rng, planet, cfg.Instances, cfg.Spread), camera.New(1, cfg.TurnSpeed), logger)
	indexed, err := s.BuildIndex(cfg.HalfExtent, cfg.Tree)
	if err != nil {
		return nil, errors.Wrap(err, "error building scene index")
	}
	treeStats := s.Tree.Stats()
	logger.Infow("scene indexed",
		"instances", cfg.Instances,
		"indexed", indexed,
		"nodes", treeStats.Nodes(),
		"max_depth", treeStats.MaxDepth,
		"min_leaf_items", treeStats.MinLeafItems,
	)
	if cfg.PrintLevels {
		if err := s.Tree.WriteVolumeByLevel(out); err != nil {
			return nil, err
		}
	}

	tree := octree.NewSyncTree(s.Tree)
	report := &benchReport{indexed: indexed, views: make([]viewResult, cfg.Views)}
	group, ctx := errgroup.WithContext(ctx)
	for v := 0; v < cfg.Views; v++ {
		group.Go(func() error {
			cam := camera.New(1, cfg.TurnSpeed)
			cam.OffsetOrientation(0, 2*math.Pi*float64(v)/float64(cfg.Views))
			result := viewResult{
				view:     v,
				cullTime: make([]float64, 0, cfg.Frames),
				visible:  make([]float64, 0, cfg.Frames),
			}
			_, err := scene.RunFrames(ctx, clk, cfg.Interval, cfg.Frames, func(ctx context.Context, frame int) error {
				start := clk.Now()
				visible := tree.CullingWithCapacity(cam.Frustum(), cfg.Capacity)
				result.cullTime = append(result.cullTime, float64(clk.Since(start))/float64(time.Millisecond))
				result.visible = append(result.visible, float64(len(visible)))
				cam.OffsetOrientation(0, cam.TurnSpeed)
				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "error running view %d", v)
			}
			report.views[v] = result
			logger.Debugw("view done", "view", v, "frames", len(result.cullTime))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// writeReport renders one row of timing statistics per view.
func writeReport(out io.Writer, report *benchReport) error {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Frustum culling, %d indexed instances", report.indexed))
	tw.AppendHeader(table.Row{"View", "Frames", "Mean (ms)", "Median (ms)", "P95 (ms)", "Visible (mean)"})

	for _, result := range report.views {
		mean, err := stats.Mean(result.cullTime)
		if err != nil {
			return errors.Wrapf(err, "error summarizing view %d", result.view)
		}
		median, err := stats.Median(result.cullTime)
		if err != nil {
			return err
		}
		p95, err := stats.PercentileNearestRank(result.cullTime, 95)
		if err != nil {
			return err
		}
		visible, err := stats.Mean(result.visible)
		if err != nil {
			return err
		}
		tw.AppendRow(table.Row{
			result.view,
			len(result.cullTime),
			fmt.Sprintf("%.3f", mean),
			fmt.Sprintf("%.3f", median),
			fmt.Sprintf("%.3f", p95),
			fmt.Sprintf("%.1f", visible),
		})
	}

	all := lo.FlatMap(report.views, func(result viewResult, _ int) []float64 { return result.cullTime })
	overall, err := stats.Mean(all)
	if err != nil {
		return err
	}
	tw.AppendFooter(table.Row{"All", len(all), fmt.Sprintf("%.3f", overall), "", "", ""})
	if _, err := fmt.Fprintln(out, tw.Render()); err != nil {
		return errors.Wrap(err, "error writing report")
	}
	return nil
}
