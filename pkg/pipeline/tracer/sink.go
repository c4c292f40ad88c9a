package tracer

import (
	"log/slog"
	"sync"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

// SlogSink logs every event at debug level.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogSink{logger: logger}
}

func (s *SlogSink) Emit(ev model.TraceEvent) {
	s.logger.Debug("stage event",
		slog.String(StageKey, ev.Stage),
		slog.String(OperationKey, string(ev.Op)),
		slog.String(PhaseKey, string(ev.Phase)),
	)
}

// Collector keeps every event in memory. Useful in tests.
type Collector struct {
	mu     sync.Mutex
	events []model.TraceEvent
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Emit(ev model.TraceEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

// Events returns a copy of everything emitted so far.
func (c *Collector) Events() []model.TraceEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]model.TraceEvent(nil), c.events...)
}

var (
	_ Sink = (*SlogSink)(nil)
	_ Sink = (*Collector)(nil)
)
