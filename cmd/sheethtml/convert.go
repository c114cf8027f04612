package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

func (a *app) runConvert(ctx context.Context, input string, stdout io.Writer) error {
	if err := a.renderTo(input, stdout); err != nil {
		return err
	}
	if !a.cfg.Watch {
		return nil
	}

	w := &fileWatcher{
		path:     input,
		debounce: 200 * time.Millisecond,
		log:      a.log,
		onChange: func() error { return a.renderTo(input, stdout) },
	}
	return w.Run(ctx)
}

// renderTo converts input and writes the result to the configured output
// file, or to stdout followed by a newline.
func (a *app) renderTo(input string, stdout io.Writer) error {
	start := time.Now()
	out, err := a.convertFile(a.converter(), input)
	if err != nil {
		return err
	}

	if a.cfg.Output == "" {
		_, err = fmt.Fprintln(stdout, out)
		return err
	}
	if err := os.WriteFile(a.cfg.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.log.WithFields(map[string]any{
		"input":    input,
		"output":   a.cfg.Output,
		"duration": time.Since(start).String(),
	}).Info("Wrote HTML.")
	return nil
}
