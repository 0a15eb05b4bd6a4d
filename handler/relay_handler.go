package handler

import (
	"errors"
	"net/http"

	"github.com/cyberes/diagnostico-relay/backend"
	"github.com/cyberes/diagnostico-relay/manager"
	"github.com/cyberes/diagnostico-relay/relay"
	"github.com/gin-gonic/gin"
)

// RelayHandler serves the diagnosis relay endpoint.
type RelayHandler struct {
	relay         *relay.Relay
	tracker       *manager.Tracker
	failureStatus int
}

// NewRelayHandler creates a RelayHandler. failureStatus is the HTTP status sent
// with the fixed error object.
func NewRelayHandler(r *relay.Relay, tracker *manager.Tracker, failureStatus int) *RelayHandler {
	return &RelayHandler{
		relay:         r,
		tracker:       tracker,
		failureStatus: failureStatus,
	}
}

// Diagnose forwards the submitted fields to the inference service and returns
// its JSON, or the fixed error object when the call does not succeed. A body
// that cannot be read as a JSON object gets the same fixed error object.
func (h *RelayHandler) Diagnose(c *gin.Context) {
	payload, err := relay.DecodePayload(c.Request)
	if err != nil {
		requestLog(c).WithError(err).Warn("Diagnosis payload could not be decoded")
		c.JSON(h.failureStatus, relay.FailureBody())
		return
	}

	var done func(bool)
	if h.tracker != nil {
		done = h.tracker.Begin()
	}
	body, err := h.relay.Diagnose(c.Request.Context(), payload)
	if done != nil {
		done(err == nil)
	}

	if err != nil {
		entry := requestLog(c).WithError(err)
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			entry = entry.WithField("upstream_status", statusErr.StatusCode)
		}
		entry.Warn("Diagnosis relay failed")
		c.JSON(h.failureStatus, relay.FailureBody())
		return
	}

	requestLog(c).Debugf("Diagnosis relayed (%d fields)", len(payload))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
