package streaming

import (
	"context"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelc4/aether-gateway/internal/stats"
	"github.com/pavelc4/aether-gateway/pkg/buffer"
)

func TestManager_RecordsOutcome(t *testing.T) {
	st := stats.New()
	m := NewManager(buffer.NewPool(4096), st)

	n, err := m.Stream(context.Background(), "ok", StreamInput{Body: track(strings.NewReader("hello world")), Size: 11}, &recorder{})
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)

	_, err = m.Stream(context.Background(), "bad", StreamInput{Body: track(iotest.ErrReader(io.ErrClosedPipe))}, &recorder{})
	require.ErrorIs(t, err, ErrNotStarted)

	snap := st.Snapshot()
	assert.Equal(t, int64(1), snap.Downloads)
	assert.Equal(t, int64(1), snap.FailedDownloads)
	assert.Equal(t, int64(11), snap.BytesStreamed)
	assert.Empty(t, m.Active())
}

func TestManager_ActiveWhileStreaming(t *testing.T) {
	m := NewManager(nil, nil)
	pr, pw := io.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Stream(context.Background(), "req-1", StreamInput{Body: pr, Size: 10}, &recorder{})
	}()

	_, err := pw.Write([]byte("12345"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		active := m.Active()
		return len(active) == 1 && active[0].Written == 5
	}, time.Second, 10*time.Millisecond)

	active := m.Active()
	assert.Equal(t, "req-1", active[0].RequestID)
	assert.NotEqual(t, "req-1", active[0].ID)
	assert.Equal(t, int64(10), active[0].Size)

	require.NoError(t, pw.Close())
	<-done
	assert.Empty(t, m.Active())
}

func TestManager_SharedRequestID(t *testing.T) {
	m := NewManager(nil, nil)
	firstR, firstW := io.Pipe()
	secondR, secondW := io.Pipe()

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = m.Stream(context.Background(), "same", StreamInput{Body: firstR}, &recorder{})
	}()
	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		_, _ = m.Stream(context.Background(), "same", StreamInput{Body: secondR}, &recorder{})
	}()

	_, err := firstW.Write([]byte("a"))
	require.NoError(t, err)
	_, err = secondW.Write([]byte("b"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(m.Active()) == 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, firstW.Close())
	<-firstDone

	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "same", active[0].RequestID)

	require.NoError(t, secondW.Close())
	<-secondDone
	assert.Empty(t, m.Active())
}
