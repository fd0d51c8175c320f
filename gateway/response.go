package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Response is a raw backend response. Callers decode the body into typed
// envelopes with JSON.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "[Response.JSON] unmarshal body")
	}
	return nil
}

// Message extracts the server-provided message from the body, if any.
// The backend uses both "message" and "error" for this.
func (r *Response) Message() string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
