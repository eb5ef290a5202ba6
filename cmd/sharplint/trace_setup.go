package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sharplint/internal/driver"
	"sharplint/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns the tracer, a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (trace.Tracer, func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}
	// без --trace трассировка выключена
	if traceOutput == "" || level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}

	cfg := trace.Config{Level: level, Format: format, OutputPath: traceOutput}
	if traceOutput == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cleanup := func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}

// phaseObserver forwards driver phase boundaries to the tracer.
func phaseObserver(tr trace.Tracer) driver.PhaseObserver {
	if tr == nil || !tr.Level().ShouldEmit(trace.ScopePhase) {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		out := &trace.Event{Scope: trace.ScopePhase, Name: ev.Name, Path: ev.Path}
		switch ev.Status {
		case driver.PhaseStart:
			out.Kind = trace.KindSpanBegin
		case driver.PhaseEnd:
			out.Kind = trace.KindSpanEnd
			out.Detail = ev.Note
			out.Elapsed = ev.Elapsed
		case driver.FileDone:
			out.Kind = trace.KindPoint
			out.Name = "done"
			if ev.Err != nil {
				out.Detail = ev.Err.Error()
			}
		}
		tr.Emit(out)
	}
}
