package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/handik/internal/presentation/graph"
	"github.com/aretw0/handik/internal/presentation/tui"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/aretw0/handik/pkg/ports"
	"github.com/aretw0/handik/pkg/scenario"
)

// SimulateOptions configures Simulate.
type SimulateOptions struct {
	Names   []string
	JSON    bool
	Graph   bool
	Motions *motion.Repository
	Logger  *slog.Logger
}

// Simulate replays the selected scenarios and writes one report per
// scenario to w. It reports whether every expectation held.
func Simulate(ctx context.Context, w io.Writer, loader ports.ScenarioLoader, opts SimulateOptions) (bool, error) {
	names, err := SelectScenarios(ctx, loader, opts.Names)
	if err != nil {
		return false, err
	}

	runOpts := []scenario.Option{scenario.WithLogger(opts.Logger)}
	if opts.Motions != nil {
		runOpts = append(runOpts, scenario.WithMotionRepository(opts.Motions))
	}

	passed := true
	var results []*scenario.Result
	for _, name := range names {
		s, err := loader.Load(ctx, name)
		if err != nil {
			return false, err
		}
		res, err := scenario.Run(ctx, s, runOpts...)
		if err != nil {
			return false, fmt.Errorf("run %s: %w", name, err)
		}
		passed = passed && res.Passed()
		results = append(results, res)

		if opts.JSON {
			continue
		}
		md := tui.ScenarioReport(res)
		if opts.Graph {
			md += "```mermaid\n" + TransitionGraph(res) + "```\n"
		}
		if err := tui.Print(w, md); err != nil {
			return false, err
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return false, err
		}
	}
	return passed, nil
}

// TransitionGraph draws the transitions of a replay with the final targets
// highlighted.
func TransitionGraph(res *scenario.Result) string {
	var overlay *graph.Overlay
	if n := len(res.Frames); n > 0 {
		last := res.Frames[n-1]
		overlay = &graph.Overlay{Left: last.Left, Right: last.Right}
	}
	return graph.GenerateMermaid(res.Transitions, overlay)
}
