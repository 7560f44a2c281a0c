/*
Package runner drives a handik Engine on a fixed-rate frame loop.

The engine is single threaded. The runner is the one place where other
goroutines (HTTP handlers, MCP tools, device readers) meet it: they Submit
commands, which run on the frame loop right before the next Update, and read
the published FrameSnapshot without touching the engine.

# Usage

	r := runner.New(engine, runner.WithFPS(60), runner.WithLogger(logger))

	go func() {
		_ = r.Submit(ctx, func(e *handik.Engine) { e.KeyDown("a") })
	}()

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
