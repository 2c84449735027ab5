package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Counters(t *testing.T) {
	s := New()

	s.RecordRequest("/api/translate")
	s.RecordRequest("/api/translate")
	s.RecordRequest("/api/download")
	s.RecordTranslation("primary")
	s.RecordTranslation("fallback")
	s.RecordPrimaryFailure("shape")
	s.RecordTranslationFailure()

	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/translate"])
	assert.Equal(t, int64(1), snap.Requests["/api/download"])
	assert.Equal(t, int64(1), snap.Translations["primary"])
	assert.Equal(t, int64(1), snap.Translations["fallback"])
	assert.Equal(t, int64(1), snap.PrimaryFailures["shape"])
	assert.Equal(t, int64(1), snap.TranslationFailures)
}

func TestStats_Downloads(t *testing.T) {
	s := New()

	s.RecordDownload(2048, 2*time.Second, true)
	s.RecordDownload(1024, 4*time.Second, true)
	s.RecordDownload(512, time.Second, false)

	snap := s.Snapshot()
	assert.Equal(t, int64(2), snap.Downloads)
	assert.Equal(t, int64(1), snap.FailedDownloads)
	assert.Equal(t, int64(3584), snap.BytesStreamed)
	assert.Equal(t, "3.50 KB", snap.BytesStreamedHuman)
	assert.Equal(t, "3s", snap.AvgDownload)
}

func TestStats_SnapshotIsCopy(t *testing.T) {
	s := New()
	s.RecordRequest("/")

	snap := s.Snapshot()
	snap.Requests["/"] = 100

	assert.Equal(t, int64(1), s.Snapshot().Requests["/"])
}

func TestStats_Concurrent(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordRequest("/api/video-info")
			s.RecordDownload(10, time.Millisecond, true)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Equal(t, int64(50), snap.Requests["/api/video-info"])
	assert.Equal(t, int64(500), snap.BytesStreamed)
}
