package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FetchStatus is the lifecycle phase of the newest fetch for one resource.
type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusSuccess FetchStatus = "success"
	StatusError   FetchStatus = "error"
)

// FetchState describes the newest fetch issued for a resource. There is
// exactly one state per resource; selecting a new query replaces it
// wholesale.
type FetchState struct {
	Status    FetchStatus `json:"status"`
	RequestID string      `json:"request_id,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
	Err       error       `json:"-"`
}

// fetchTracker records, per resource, the query key currently selected and
// the identity of the newest fetch for it. A response is discarded only
// when its key no longer matches the current selection; concurrent fetches
// for the identical key share one in-flight identity and all deliver.
type fetchTracker struct {
	mu      sync.Mutex
	current map[string]*fetchEntry
}

type fetchEntry struct {
	key   string
	state FetchState
}

func newFetchTracker() *fetchTracker {
	return &fetchTracker{current: make(map[string]*fetchEntry)}
}

// begin selects the key for the resource and returns the request identity.
// A fetch already in flight for the same key keeps its identity, so the
// joining caller rides along instead of superseding it. A different key
// replaces the selection and supersedes whatever was in flight.
func (t *fetchTracker) begin(resource, key string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.current[resource]; ok &&
		entry.key == key && entry.state.Status == StatusLoading {
		return entry.state.RequestID
	}

	id := uuid.NewString()
	t.current[resource] = &fetchEntry{
		key: key,
		state: FetchState{
			Status:    StatusLoading,
			RequestID: id,
			UpdatedAt: time.Now(),
		},
	}
	return id
}

// complete reports whether the response may be delivered: true while the
// key is still the selected one, false once the selection moved to a
// different key. The recorded state is only overwritten when id identifies
// the newest fetch, so an older same-key completion never clobbers it.
func (t *fetchTracker) complete(resource, key, id string, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.current[resource]
	if !ok || entry.key != key {
		return false
	}

	if entry.state.RequestID == id {
		status := StatusSuccess
		if err != nil {
			status = StatusError
		}
		entry.state = FetchState{
			Status:    status,
			RequestID: id,
			UpdatedAt: time.Now(),
			Err:       err,
		}
	}
	return true
}

// state returns the fetch state for the key, idle when the key is not the
// current selection.
func (t *fetchTracker) state(resource, key string) FetchState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.current[resource]; ok && entry.key == key {
		return entry.state
	}
	return FetchState{Status: StatusIdle}
}
