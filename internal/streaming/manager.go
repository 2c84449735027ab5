package streaming

import (
	"context"
	"time"

	"github.com/pavelc4/aether-gateway/internal/stats"
	"github.com/pavelc4/aether-gateway/pkg/buffer"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

// Manager runs relays through a Pipeline, keeps them visible in a
// StateManager while in flight and records the outcome in stats.
type Manager struct {
	pipeline *Pipeline
	state    *StateManager
	stats    *stats.Stats
}

func NewManager(pool *buffer.Pool, st *stats.Stats) *Manager {
	return &Manager{
		pipeline: NewPipeline(pool),
		state:    NewStateManager(),
		stats:    st,
	}
}

// Stream relays input to out. requestID is only a label; concurrent streams
// sharing it are tracked separately.
func (m *Manager) Stream(ctx context.Context, requestID string, input StreamInput, out Output) (int64, error) {
	start := time.Now()

	state := m.state.NewState(requestID, input.Size)
	defer m.state.DeleteState(state.ID)

	id := state.ID
	logger.Info("Starting stream", "id", id, "request_id", requestID, "size", input.Size)

	n, err := m.pipeline.Start(ctx, input, &trackedOutput{Output: out, state: state})
	if m.stats != nil {
		m.stats.RecordDownload(n, time.Since(start), err == nil)
	}
	if err != nil {
		logger.ErrorWithDuration("Stream failed", start, "id", id, "bytes", n, "error", err)
		return n, err
	}

	logger.InfoWithDuration("Stream completed", start, "id", id, "bytes", n)
	return n, nil
}

func (m *Manager) Active() []ActiveStream {
	return m.state.Active()
}

type trackedOutput struct {
	Output
	state *StreamState
}

func (o *trackedOutput) Write(p []byte) (int, error) {
	n, err := o.Output.Write(p)
	o.state.written.Add(int64(n))
	return n, err
}
