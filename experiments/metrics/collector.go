package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one planning run.
type SearchMetric struct {
	Depth     int
	Levels    int
	Branches  int
	Nodes     int
	Opponents string
	Duration  time.Duration
	Truncated bool
}

// MoveMetric is the planning record of one agent at one tick.
type MoveMetric struct {
	Tick   uint64
	Agent  uint32
	Action string // Empty when the agent idled
	SearchMetric
}

type GameMetric struct {
	Contestants int
	Winner      string // Agent type, empty when the tick limit was hit
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalTicks  int
	Conversions int
}

type AgentConfig struct {
	ID        int
	Depth     int
	Duration  time.Duration
	Opponents string
	Random    bool
}

type Collector interface {
	Start(depth int, opponents string)
	SetBranches(n int)
	AddNodes(n int)
	AddLevel()
	SetTruncated(value bool)
	Complete() SearchMetric
}

type collector struct {
	depth     int
	opponents string
	startTime time.Time
	branches  atomic.Int32
	nodes     atomic.Int32
	levels    atomic.Int32
	truncated atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, opponents string) {
	m.startTime = time.Now()
	m.depth = depth
	m.opponents = opponents
}

func (m *collector) SetBranches(n int) {
	m.branches.Store(int32(n))
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int32(n))
}

func (m *collector) AddLevel() {
	m.levels.Add(1)
}

func (m *collector) SetTruncated(value bool) {
	m.truncated.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:     m.depth,
		Levels:    int(m.levels.Load()),
		Branches:  int(m.branches.Load()),
		Nodes:     int(m.nodes.Load()),
		Opponents: m.opponents,
		Duration:  time.Since(m.startTime),
		Truncated: m.truncated.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, opponents string) {}
func (m *dummyCollector) SetBranches(n int)                 {}
func (m *dummyCollector) AddNodes(n int)                    {}
func (m *dummyCollector) AddLevel()                         {}
func (m *dummyCollector) SetTruncated(value bool)           {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
