package pgdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/raterudder/pgdata/pkg/log"
)

const (
	tokenAuthPath = "/api-token-auth/"
	loginEndpoint = "api-token-auth"
)

type loginResult struct {
	Token string `json:"token"`
}

func (c *Client) login(ctx context.Context, creds PasswordCredentials) (string, error) {
	log.Ctx(ctx).DebugContext(ctx, "logging in to pgdata", slog.Any("credentials", creds))

	start := time.Now()
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(requestIDHeader, uuid.NewString()).
		SetBody(map[string]string{
			"username": creds.Username,
			"password": creds.Password,
		}).
		Post(tokenAuthPath)
	observeRequest(loginEndpoint, resp, err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: login: %w", ErrRequest, err)
	}

	if !resp.IsSuccess() {
		serr := newStatusError(loginEndpoint, resp.StatusCode(), resp.Body())
		switch resp.StatusCode() {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			// the token endpoint answers 400 for wrong credentials
			serr.kind = ErrAuthentication
		}
		log.Ctx(ctx).WarnContext(ctx, "pgdata login failed", slog.Int("status", resp.StatusCode()))
		return "", serr
	}

	var res loginResult
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to decode pgdata login response", slog.Any("error", err))
		return "", fmt.Errorf("%w: login: failed to decode response: %w", ErrRequest, err)
	}
	if res.Token == "" {
		return "", fmt.Errorf("%w: login response contained no token", ErrAuthentication)
	}
	log.Ctx(ctx).InfoContext(ctx, "pgdata login success", slog.String("username", creds.Username))
	return res.Token, nil
}

// query is a single logical GET. endpoint is the path below the base URL
// without a leading slash and doubles as the metrics label.
type query struct {
	endpoint string
	params   url.Values
	// idParams name the parameters that identify a system or source; a 400
	// that rejects one of them is reported as ErrNotFound.
	idParams []string
}

type page struct {
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// fetch runs q and decodes every row into T. Rows that fail to decode fail
// the whole call.
func fetch[T any](ctx context.Context, c *Client, q query) ([]T, error) {
	rows, err := c.collect(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var v T
		if err := json.Unmarshal(row, &v); err != nil {
			log.Ctx(ctx).ErrorContext(
				ctx,
				"failed to decode pgdata row",
				slog.String("endpoint", q.endpoint),
				slog.Int("row", i),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("%w: %s: row %d: %w", ErrRequest, q.endpoint, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// collect returns the raw rows of q, following next links until the last
// page. A body that is a bare array is a single page.
func (c *Client) collect(ctx context.Context, q query) ([]json.RawMessage, error) {
	token, err := c.sessionToken()
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	target := "/" + q.endpoint
	params := q.params
	seen := map[string]struct{}{c.pageURL(q): {}}
	for pageNum := 1; ; pageNum++ {
		body, err := c.get(ctx, q, token, target, params)
		if err != nil {
			return nil, err
		}
		pageRows, next, err := decodePage(body)
		if err != nil {
			log.Ctx(ctx).ErrorContext(
				ctx,
				"failed to decode pgdata response",
				slog.String("endpoint", q.endpoint),
				slog.Int("page", pageNum),
				slog.Any("error", err),
				slog.String("body", bodySnippet(body)),
			)
			return nil, fmt.Errorf("%w: %s: %w", ErrRequest, q.endpoint, err)
		}
		rows = append(rows, pageRows...)
		if next == "" {
			break
		}
		target, err = c.resolveNext(next)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRequest, q.endpoint, err)
		}
		if _, ok := seen[target]; ok {
			log.Ctx(ctx).WarnContext(
				ctx,
				"pgdata pagination loop",
				slog.String("endpoint", q.endpoint),
				slog.Int("page", pageNum),
				slog.String("next", target),
			)
			return nil, fmt.Errorf("%w: %s: pagination loop at %s", ErrRequest, q.endpoint, target)
		}
		seen[target] = struct{}{}
		// the next link already carries the filters
		params = nil
	}

	if rows == nil {
		rows = []json.RawMessage{}
	}
	return rows, nil
}

func (c *Client) get(ctx context.Context, q query, token, target string, params url.Values) ([]byte, error) {
	reqID := uuid.NewString()
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+token).
		SetHeader(requestIDHeader, reqID)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	start := time.Now()
	resp, err := req.Get(target)
	elapsed := time.Since(start)
	observeRequest(q.endpoint, resp, err, elapsed)
	if err != nil {
		log.Ctx(ctx).DebugContext(
			ctx,
			"pgdata request failed",
			slog.String("endpoint", q.endpoint),
			slog.String("requestID", reqID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: GET %s: %w", ErrRequest, q.endpoint, err)
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"pgdata request",
		slog.String("endpoint", q.endpoint),
		slog.String("requestID", reqID),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("duration", elapsed),
	)

	if !resp.IsSuccess() {
		return nil, newStatusError(q.endpoint, resp.StatusCode(), resp.Body(), q.idParams...)
	}
	return resp.Body(), nil
}

func decodePage(body []byte) ([]json.RawMessage, string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, "", errors.New("empty response body")
	}
	switch trimmed[0] {
	case '[':
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, "", err
		}
		return rows, "", nil
	case '{':
		var p page
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, "", err
		}
		if p.Results == nil {
			return nil, "", errors.New("response has no results")
		}
		var next string
		if p.Next != nil {
			next = *p.Next
		}
		return p.Results, next, nil
	default:
		return nil, "", fmt.Errorf("unexpected response starting with %q", trimmed[0])
	}
}

// resolveNext turns a next link into a URL on our own base. The token must
// never be sent to another host, but the server may describe itself with a
// different scheme or port when it sits behind a proxy, so only the hostname
// is compared.
func (c *Client) resolveNext(next string) (string, error) {
	u, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next link %q: %w", next, err)
	}
	u = c.baseURL.ResolveReference(u)
	if !strings.EqualFold(u.Hostname(), c.baseURL.Hostname()) {
		return "", fmt.Errorf("next link points at foreign host %q", u.Hostname())
	}
	u.Scheme = c.baseURL.Scheme
	u.Host = c.baseURL.Host
	return u.String(), nil
}

// pageURL is the absolute URL of the first page of q, in the same form
// resolveNext produces.
func (c *Client) pageURL(q query) string {
	u := c.baseURL.JoinPath(q.endpoint)
	u.RawQuery = q.params.Encode()
	return u.String()
}

func responseCode(resp *resty.Response, err error) string {
	if err != nil || resp == nil || resp.RawResponse == nil {
		return "error"
	}
	return fmt.Sprintf("%d", resp.StatusCode())
}
