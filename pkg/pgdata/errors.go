package pgdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Every error returned by the client wraps exactly one of these. Use
// errors.Is to tell them apart.
var (
	// ErrConfiguration means the client was built with an invalid target or
	// credential combination.
	ErrConfiguration = errors.New("pgdata: configuration error")

	// ErrAuthentication means login failed, the token was rejected, or a call
	// was made outside an open session.
	ErrAuthentication = errors.New("pgdata: authentication error")

	// ErrNotFound means the requested system or data source does not exist.
	ErrNotFound = errors.New("pgdata: not found")

	// ErrRequest covers network failures, unexpected statuses and bodies that
	// are not the expected JSON.
	ErrRequest = errors.New("pgdata: request error")

	// ErrInvalidArgument is returned before any request is sent when the
	// arguments cannot form a valid query. It wraps ErrRequest.
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrRequest)
)

// StatusError is returned for a non-2xx response. It unwraps to
// ErrAuthentication, ErrNotFound or ErrRequest.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string

	kind error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("pgdata: %s: status %d", e.Endpoint, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

const maxErrorBody = 512

// newStatusError classifies a failed response. A 400 whose body is a field
// error keyed by one of idParams is a filter rejecting an unknown choice,
// which means the identifier does not exist.
func newStatusError(endpoint string, status int, body []byte, idParams ...string) *StatusError {
	e := &StatusError{
		Endpoint:   endpoint,
		StatusCode: status,
		Body:       bodySnippet(body),
		kind:       ErrRequest,
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.kind = ErrAuthentication
	case http.StatusNotFound:
		e.kind = ErrNotFound
	case http.StatusBadRequest:
		if rejectsParam(body, idParams) {
			e.kind = ErrNotFound
		}
	}
	return e
}

func rejectsParam(body []byte, params []string) bool {
	if len(params) == 0 {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	for _, p := range params {
		if _, ok := fields[p]; ok {
			return true
		}
	}
	return false
}

func bodySnippet(body []byte) string {
	if len(body) > maxErrorBody {
		n := maxErrorBody
		// back off to the start of a rune so the cut never splits one
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n]
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(body), "\uFFFD"))
}
