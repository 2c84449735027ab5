package stats

import (
	"sync"
	"time"

	"github.com/pavelc4/aether-gateway/pkg/utils"
)

// Stats holds process-lifetime counters. Nothing is persisted.
type Stats struct {
	mu        sync.RWMutex
	startTime time.Time

	requests        map[string]int64
	translations    map[string]int64
	primaryFailures map[string]int64

	translationFailures int64

	downloads       int64
	failedDownloads int64
	bytesStreamed   int64
	streamDuration  time.Duration
}

func New() *Stats {
	return &Stats{
		startTime:       time.Now(),
		requests:        make(map[string]int64),
		translations:    make(map[string]int64),
		primaryFailures: make(map[string]int64),
	}
}

func (s *Stats) RecordRequest(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[route]++
}

// RecordTranslation counts a successful translation by tier.
func (s *Stats) RecordTranslation(tier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translations[tier]++
}

// RecordPrimaryFailure counts a primary provider failure by kind
// ("shape" or "transport").
func (s *Stats) RecordPrimaryFailure(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primaryFailures[kind]++
}

func (s *Stats) RecordTranslationFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translationFailures++
}

func (s *Stats) RecordDownload(bytes int64, duration time.Duration, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !success {
		s.failedDownloads++
		s.bytesStreamed += bytes
		return
	}
	s.downloads++
	s.bytesStreamed += bytes
	s.streamDuration += duration
}

type Snapshot struct {
	StartTime           time.Time        `json:"start_time"`
	Uptime              string           `json:"uptime"`
	Requests            map[string]int64 `json:"requests"`
	Translations        map[string]int64 `json:"translations"`
	PrimaryFailures     map[string]int64 `json:"primary_failures"`
	TranslationFailures int64            `json:"translation_failures"`
	Downloads           int64            `json:"downloads"`
	FailedDownloads     int64            `json:"failed_downloads"`
	BytesStreamed       int64            `json:"bytes_streamed"`
	BytesStreamedHuman  string           `json:"bytes_streamed_human"`
	AvgDownload         string           `json:"avg_download"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	avg := time.Duration(0)
	if s.downloads > 0 {
		avg = s.streamDuration / time.Duration(s.downloads)
	}

	return Snapshot{
		StartTime:           s.startTime,
		Uptime:              utils.FormatUptime(time.Since(s.startTime)),
		Requests:            copyCounts(s.requests),
		Translations:        copyCounts(s.translations),
		PrimaryFailures:     copyCounts(s.primaryFailures),
		TranslationFailures: s.translationFailures,
		Downloads:           s.downloads,
		FailedDownloads:     s.failedDownloads,
		BytesStreamed:       s.bytesStreamed,
		BytesStreamedHuman:  utils.FormatBytes(s.bytesStreamed),
		AvgDownload:         avg.Round(time.Millisecond).String(),
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
