package metrics

import (
	"sync/atomic"
	"time"
)

// GameMetric describes one finished game.
type GameMetric struct {
	Seed      uint64
	MissionID int
	Mission   string
	Outcome   string
	Turns     int
	Captures  int
	Refused   int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// TurnMetric describes one attack inside a game.
type TurnMetric struct {
	Step        int
	Attacker    int
	Defender    int
	AttackRoll  int
	DefenseRoll int
	Outcome     string
	Status      string
}

// Summary aggregates every game a collector saw.
type Summary struct {
	Games     int64         `json:"games"`
	Won       int64         `json:"won"`
	Drawn     int64         `json:"drawn"`
	Stalled   int64         `json:"stalled"`
	TurnLimit int64         `json:"turnLimit"`
	Turns     int64         `json:"turns"`
	Captures  int64         `json:"captures"`
	Duration  time.Duration `json:"duration"`
}

// WinRate is the share of games won.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Games)
}

type Collector interface {
	Start()
	AddGame(metric GameMetric)
	Complete() Summary
}

type collector struct {
	startTime time.Time
	games     atomic.Int64
	won       atomic.Int64
	drawn     atomic.Int64
	stalled   atomic.Int64
	turnLimit atomic.Int64
	turns     atomic.Int64
	captures  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddGame(metric GameMetric) {
	m.games.Add(1)
	m.turns.Add(int64(metric.Turns))
	m.captures.Add(int64(metric.Captures))
	switch metric.Outcome {
	case "won":
		m.won.Add(1)
	case "drawn":
		m.drawn.Add(1)
	case "stalled":
		m.stalled.Add(1)
	case "turn limit":
		m.turnLimit.Add(1)
	}
}

func (m *collector) Complete() Summary {
	return Summary{
		Games:     m.games.Load(),
		Won:       m.won.Load(),
		Drawn:     m.drawn.Load(),
		Stalled:   m.stalled.Load(),
		TurnLimit: m.turnLimit.Load(),
		Turns:     m.turns.Load(),
		Captures:  m.captures.Load(),
		Duration:  time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                    {}
func (m *dummyCollector) AddGame(metric GameMetric) {}
func (m *dummyCollector) Complete() Summary         { return Summary{} }
