package streaming

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// StreamState tracks one in-flight relay. ID is generated here; RequestID
// comes from the caller and may repeat.
type StreamState struct {
	ID        string
	RequestID string
	Size      int64
	StartedAt time.Time
	written   atomic.Int64
}

func (s *StreamState) Written() int64 {
	return s.written.Load()
}

// ActiveStream is a point-in-time copy of a StreamState.
type ActiveStream struct {
	ID        string `json:"id"`
	RequestID string `json:"request_id"`
	Size      int64  `json:"size"`
	Written   int64  `json:"written"`
	Elapsed   string `json:"elapsed"`
}

type StateManager struct {
	states sync.Map
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

func (sm *StateManager) NewState(requestID string, size int64) *StreamState {
	state := &StreamState{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Size:      size,
		StartedAt: time.Now(),
	}
	sm.states.Store(state.ID, state)
	return state
}

func (sm *StateManager) GetState(id string) (*StreamState, bool) {
	val, ok := sm.states.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*StreamState), true
}

func (sm *StateManager) DeleteState(id string) {
	sm.states.Delete(id)
}

// Active lists in-flight relays, oldest first.
func (sm *StateManager) Active() []ActiveStream {
	var states []*StreamState
	sm.states.Range(func(_, v any) bool {
		states = append(states, v.(*StreamState))
		return true
	})
	sort.Slice(states, func(i, j int) bool {
		return states[i].StartedAt.Before(states[j].StartedAt)
	})

	out := make([]ActiveStream, 0, len(states))
	for _, s := range states {
		out = append(out, ActiveStream{
			ID:        s.ID,
			RequestID: s.RequestID,
			Size:      s.Size,
			Written:   s.Written(),
			Elapsed:   time.Since(s.StartedAt).Round(time.Millisecond).String(),
		})
	}
	return out
}
