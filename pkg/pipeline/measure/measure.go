// Package measure collects per-stage durations for every fit, transform and
// predict call of a composition. It is attached as a pipeline option and
// never influences results.
package measure

import (
	"sync"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

type DefaultMeasure struct {
	mu     sync.Mutex
	stages map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		stages: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt := &DefaultMetric{
		mu:     &sync.Mutex{},
		allOps: make(map[model.Operation]*opInfo),
	}
	m.stages[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stages[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Metric, len(m.stages))
	for name, mt := range m.stages {
		out[name] = mt
	}

	return out
}

var _ Measure = (*DefaultMeasure)(nil)
