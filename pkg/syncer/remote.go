// pkg/syncer/remote.go
//
// Remote confirmation layer.
//
// Context
// -------
// The Remote is stateless: it translates a Call into one persistence
// request against the collection API and reports the outcome.  One attempt
// per mutation, no automatic retry, no rollback — a failure comes back as a
// SyncError and the optimistic local state stands.
//
// HTTPRemote speaks the dashboard collection contract:
//
//	GET    <base>            – session-load snapshot
//	POST   <base>            – create
//	PUT    <base>/{id}       – partial patch
//	DELETE <base>/{id}       – delete
//	POST   <base>/reorder    – atomic full reorder
//
// The base URL is the explicit collection handle (e.g.,
// https://biztro.example/api/links); nothing is read from ambient state.
//
//------------------------------------------------------------------------------

package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds each confirmation attempt.  No response inside the
// window is reported as a SyncError.
const DefaultTimeout = 15 * time.Second

// Remote confirms local mutations against the backing store.
type Remote interface {
	// Load fetches the full collection at session start.
	Load(ctx context.Context) ([]Record, error)

	// Confirm performs the request the Call describes.  The returned
	// record is the server echo for creates and updates, nil otherwise.
	// Failures are *SyncError.
	Confirm(ctx context.Context, call *Call) (*Record, error)
}

// HTTPRemote implements Remote over the collection REST API.
type HTTPRemote struct {
	base   string
	client *http.Client
}

// NewHTTPRemote returns a Remote bound to one collection URL.  A nil client
// gets a private one with DefaultTimeout.
func NewHTTPRemote(base string, client *http.Client) *HTTPRemote {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPRemote{base: strings.TrimRight(base, "/"), client: client}
}

// Load implements Remote.
func (h *HTTPRemote) Load(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+"/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load: status %d", resp.StatusCode)
	}
	var out []Record
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Confirm implements Remote.
func (h *HTTPRemote) Confirm(ctx context.Context, call *Call) (*Record, error) {
	method, url, body, err := h.request(call)
	if err != nil {
		return nil, &SyncError{Op: call.Op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &SyncError{Op: call.Op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &SyncError{Op: call.Op, Err: err}
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SyncError{Op: call.Op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	switch call.Op {
	case OpCreate, OpUpdate:
		var echo Record
		if err := json.NewDecoder(resp.Body).Decode(&echo); err != nil {
			// 2xx with an unreadable body still confirmed the write.
			return nil, nil
		}
		return &echo, nil
	default:
		return nil, nil
	}
}

/*──────────────────────────── request assembly ─────────────────────────────*/

type reorderWire struct {
	Items []reorderWireItem `json:"items"`
}

type reorderWireItem struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

func (h *HTTPRemote) request(call *Call) (method, url string, body io.Reader, err error) {
	switch call.Op {
	case OpCreate:
		b, err := json.Marshal(call.Record)
		if err != nil {
			return "", "", nil, err
		}
		return http.MethodPost, h.base + "/", bytes.NewReader(b), nil

	case OpUpdate:
		b, err := json.Marshal(patchWire(call.Patch))
		if err != nil {
			return "", "", nil, err
		}
		return http.MethodPut, fmt.Sprintf("%s/%d", h.base, call.ID), bytes.NewReader(b), nil

	case OpDelete:
		return http.MethodDelete, fmt.Sprintf("%s/%d", h.base, call.ID), nil, nil

	case OpReorder:
		wire := reorderWire{Items: make([]reorderWireItem, len(call.Order))}
		for i, id := range call.Order {
			wire.Items[i] = reorderWireItem{ID: id, Order: i}
		}
		b, err := json.Marshal(wire)
		if err != nil {
			return "", "", nil, err
		}
		return http.MethodPost, h.base + "/reorder", bytes.NewReader(b), nil
	}
	return "", "", nil, fmt.Errorf("unknown op %q", call.Op)
}

// patchWire keeps nil patch fields out of the JSON body.
func patchWire(p *Patch) map[string]any {
	out := map[string]any{}
	if p == nil {
		return out
	}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Target != nil {
		out["target"] = *p.Target
	}
	if p.Icon != nil {
		out["icon"] = *p.Icon
	}
	if p.Active != nil {
		out["isActive"] = *p.Active
	}
	return out
}

// drain lets the transport reuse the connection.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
