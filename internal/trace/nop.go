package trace

// nopTracer is a no-op implementation for zero overhead when tracing is disabled.
type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}
