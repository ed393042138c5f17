package searcher

import "time"

type SearchMetrics struct {
	Depth    int
	Duration time.Duration
	Nodes    int64 // positions visited, root included
	Leaves   int64 // positions scored by the evaluator
	Cutoffs  int64 // sibling loops stopped by pruning
}

type MetricsCollector interface {
	Start(depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetrics
}

// The search runs on one goroutine so plain counters are enough.
type metricsCollector struct {
	depth     int
	startTime time.Time
	nodes     int64
	leaves    int64
	cutoffs   int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth int) {
	*m = metricsCollector{depth: depth, startTime: time.Now()}
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) AddLeaf() {
	m.leaves++
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs++
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes,
		Leaves:   m.leaves,
		Cutoffs:  m.cutoffs,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int)               {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) AddLeaf()                {}
func (m *noMetricsCollector) AddCutoff()              {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
