package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError is a transport failure: the request never got a response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FieldIssue is one field-level validation problem reported by the server
type FieldIssue struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Field returns the dotted location of the issue, without the leading "body"
func (f FieldIssue) Field() string {
	parts := make([]string, 0, len(f.Loc))
	for i, p := range f.Loc {
		s := fmt.Sprint(p)
		if i == 0 && (s == "body" || s == "query" || s == "path") && len(f.Loc) > 1 {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}

// ValidationError carries the field issues of a rejected request
type ValidationError struct {
	Status int
	Fields []FieldIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Msg)
	}
	return strings.Join(msgs, ", ")
}

// ServerError is any other non-success response
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	return e.Detail
}

// Message renders any error as the single line shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the NeuroNest server: " + netErr.Err.Error()
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}

	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Detail
	}

	return err.Error()
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var srvErr *ServerError
	return errors.As(err, &srvErr) && srvErr.Status == http.StatusUnauthorized
}

// errorPayload mirrors the {"detail": ...} body of an error response
type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

// parseError turns a non-success response body into one of the error types
func parseError(status int, body []byte) error {
	reason := http.StatusText(status)
	if reason == "" {
		reason = fmt.Sprintf("HTTP error %d", status)
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 || string(payload.Detail) == "null" {
		return &ServerError{Status: status, Detail: reason}
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return &ServerError{Status: status, Detail: detail}
	}

	var fields []FieldIssue
	if err := json.Unmarshal(payload.Detail, &fields); err == nil && len(fields) > 0 && fields[0].Msg != "" {
		return &ValidationError{Status: status, Fields: fields}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload.Detail); err != nil {
		return &ServerError{Status: status, Detail: reason}
	}
	return &ServerError{Status: status, Detail: compact.String()}
}
