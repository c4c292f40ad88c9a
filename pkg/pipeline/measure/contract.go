package measure

import (
	"time"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDuration(op model.Operation, elapsed time.Duration)
	AVGDuration(op model.Operation) time.Duration
	Count(op model.Operation) int64
	TotalDuration(op model.Operation) time.Duration
}
