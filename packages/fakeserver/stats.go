package fakeserver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Stats aggregates request counts and latency percentiles for a server
// instance.
type Stats struct {
	mu sync.Mutex

	totalRequests   atomic.Int64
	matchedRequests atomic.Int64

	// Latency histogram in microseconds.
	histogram *hdrhistogram.Histogram
}

// NewStats creates an empty stats collector. Latencies up to a minute
// are tracked with three significant figures.
func NewStats() *Stats {
	return &Stats{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one served request.
func (s *Stats) Record(latency time.Duration, matched bool) {
	s.totalRequests.Add(1)
	if matched {
		s.matchedRequests.Add(1)
	}

	s.mu.Lock()
	_ = s.histogram.RecordValue(latency.Microseconds())
	s.mu.Unlock()
}

// Summary is a point-in-time snapshot of the collected stats.
type Summary struct {
	TotalRequests   int64
	MatchedRequests int64
	P50             time.Duration
	P95             time.Duration
	P99             time.Duration
	Max             time.Duration
}

// Snapshot returns the current summary.
func (s *Stats) Snapshot() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summary{
		TotalRequests:   s.totalRequests.Load(),
		MatchedRequests: s.matchedRequests.Load(),
		P50:             time.Duration(s.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:             time.Duration(s.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:             time.Duration(s.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Max:             time.Duration(s.histogram.Max()) * time.Microsecond,
	}
}
