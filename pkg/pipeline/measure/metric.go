package measure

import (
	"sync"
	"time"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

type opInfo struct {
	elapsed time.Duration
	total   int64
}

type DefaultMetric struct {
	mu     *sync.Mutex
	allOps map[model.Operation]*opInfo
}

func (mt *DefaultMetric) AddDuration(op model.Operation, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.allOps[op] == nil {
		mt.allOps[op] = &opInfo{}
	}
	info := mt.allOps[op]
	info.elapsed += elapsed
	info.total++
}

func (mt *DefaultMetric) AVGDuration(op model.Operation) time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	info := mt.allOps[op]
	if info == nil || info.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(info.elapsed) / float64(info.total)))
}

func (mt *DefaultMetric) Count(op model.Operation) int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	info := mt.allOps[op]
	if info == nil {
		return 0
	}

	return info.total
}

func (mt *DefaultMetric) TotalDuration(op model.Operation) time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	info := mt.allOps[op]
	if info == nil {
		return time.Duration(0)
	}

	return info.elapsed
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Hour:
		d = d.Round(time.Hour)
	}

	return d
}
