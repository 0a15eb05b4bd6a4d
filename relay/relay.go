package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorMessage is the only failure text ever returned to clients.
const ErrorMessage = "No se pudo obtener el diagnóstico de la IA"

// ErrUpstream wraps every way the inference call can fail.
var ErrUpstream = errors.New("upstream call did not succeed")

// Poster sends one JSON document upstream and returns the 2xx response body.
type Poster interface {
	PostJSON(ctx context.Context, body []byte) ([]byte, error)
}

// Relay forwards diagnostic payloads to the inference service.
type Relay struct {
	upstream Poster
}

// New creates a Relay posting through upstream.
func New(upstream Poster) *Relay {
	return &Relay{upstream: upstream}
}

// Diagnose makes exactly one upstream call with payload as the body and
// returns the upstream JSON untouched. Any failure, including a 2xx reply that
// is not JSON, is reported as ErrUpstream.
func (r *Relay) Diagnose(ctx context.Context, payload Payload) (json.RawMessage, error) {
	if payload == nil {
		payload = Payload{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %w", ErrUpstream, err)
	}

	data, err := r.upstream.PostJSON(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrUpstream)
	}
	return json.RawMessage(data), nil
}

// FailureBody is the fixed error object sent when Diagnose fails.
func FailureBody() map[string]string {
	return map[string]string{"error": ErrorMessage}
}
