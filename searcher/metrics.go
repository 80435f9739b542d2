package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Candidates   int
	Episodes     int64
	FullPlayouts int64 // Playouts that ended the game before the cutoff
}

type MetricsCollector interface {
	Start(candidates int)
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	candidates   int
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(candidates int) {
	m.startTime = time.Now()
	m.candidates = candidates
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Candidates:   m.candidates,
		Episodes:     m.episodes.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(candidates int)    {}
func (m *noMetricsCollector) AddEpisode()             {}
func (m *noMetricsCollector) AddFullPlayout()         {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
