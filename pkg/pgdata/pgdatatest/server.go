// Package pgdatatest runs an in-process pgdata server for tests. It speaks
// the same token login, filters and pagination as the real service.
package pgdatatest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/raterudder/pgdata/pkg/types"
)

// Time series endpoints, relative to /api/.
const (
	GrossKWhDaily     = "gross-kwh-daily"
	PVOutDaily        = "pvout-daily"
	PVOutHourly       = "pvout-hourly"
	IrradiationDaily  = "irradiation-daily"
	IrradiationHourly = "irradiation-hourly"
	TemperatureHourly = "temperature-hourly"
	WindHourly        = "wind-hourly"

	IrradiationSource = "irradiation-source"
	PVOutSource       = "pvout-source"
	WindSource        = "wind-source"
	TemperatureSource = "temperature-source"

	UtilityRevenue = "utility-revenue"
	UtilityExpense = "utility-expense"
)

// Request is what the server saw of one call.
type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Accept        string
	UserAgent     string
	RequestID     string
}

type failure struct {
	status int
	body   string
}

// Server is a fake pgdata service. Configure it before handing URL to a
// client; all methods are safe to call while requests are in flight.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	pageSize   int
	users      map[string]string
	tokens     map[string]bool
	systems    []types.System
	locations  []types.Location
	series     map[string]map[string][]types.Measurement
	wind       map[string][]types.WindMeasurement
	sources    map[string][]types.Source
	footprints []types.UtilityFootprint
	statements map[string][]types.UtilityStatement
	failures   map[string]failure
	requests   []Request
}

// NewServer starts a server. Call Close when done.
func NewServer() *Server {
	s := &Server{
		users:      make(map[string]string),
		tokens:     make(map[string]bool),
		series:     make(map[string]map[string][]types.Measurement),
		wind:       make(map[string][]types.WindMeasurement),
		sources:    make(map[string][]types.Source),
		statements: make(map[string][]types.UtilityStatement),
		failures:   make(map[string]failure),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// Host returns the scheme and host of the server without the port.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Scheme + "://" + u.Hostname()
}

// Port returns the port the server listens on.
func (s *Server) Port() int {
	u, _ := url.Parse(s.URL)
	p, _ := strconv.Atoi(u.Port())
	return p
}

// SetPageSize switches list responses to the paginated envelope with at most
// n rows per page. Zero, the default, returns bare JSON arrays.
func (s *Server) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
}

// AddUser allows username/password to log in.
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// AddToken accepts token on data requests.
func (s *Server) AddToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = true
}

// RevokeToken rejects token from now on.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func (s *Server) AddSystems(systems ...types.System) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systems = append(s.systems, systems...)
}

func (s *Server) AddLocations(locations ...types.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = append(s.locations, locations...)
}

// AddSeries stores rows for a time series endpoint under key, which is the
// system ID for GrossKWhDaily and the source key otherwise.
func (s *Server) AddSeries(endpoint, key string, rows ...types.Measurement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.series[endpoint] == nil {
		s.series[endpoint] = make(map[string][]types.Measurement)
	}
	s.series[endpoint][key] = append(s.series[endpoint][key], rows...)
}

func (s *Server) AddWind(source string, rows ...types.WindMeasurement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wind[source] = append(s.wind[source], rows...)
}

// AddSources stores sources for one of the *Source endpoints.
func (s *Server) AddSources(endpoint string, sources ...types.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[endpoint] = append(s.sources[endpoint], sources...)
}

func (s *Server) AddFootprints(footprints ...types.UtilityFootprint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.footprints = append(s.footprints, footprints...)
}

// AddStatements stores statements for UtilityRevenue or UtilityExpense.
func (s *Server) AddStatements(endpoint string, statements ...types.UtilityStatement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statements[endpoint] = append(s.statements[endpoint], statements...)
}

// Fail makes every request to path answer with status and body.
func (s *Server) Fail(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

// Requests returns the requests received so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// DailyRange returns one row per day from start to end inclusive with
// values produced by value.
func DailyRange(start, end types.Date, value func(i int) float64) []types.Measurement {
	var rows []types.Measurement
	for d, i := start.In(time.UTC), 0; !d.After(end.In(time.UTC)); d, i = d.AddDate(0, 0, 1), i+1 {
		rows = append(rows, types.Measurement{TS: d, Value: value(i)})
	}
	return rows
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		Accept:        r.Header.Get("Accept"),
		UserAgent:     r.Header.Get("User-Agent"),
		RequestID:     r.Header.Get("X-Request-ID"),
	})

	if f, ok := s.failures[r.URL.Path]; ok {
		w.WriteHeader(f.status)
		fmt.Fprint(w, f.body)
		return
	}

	if r.URL.Path == "/api-token-auth/" {
		s.handleLogin(w, r)
		return
	}

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method not allowed."})
		return
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Token ")
	if !ok || !s.tokens[token] {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
		return
	}

	endpoint, ok := strings.CutPrefix(r.URL.Path, "/api/")
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	q := r.URL.Query()

	switch endpoint {
	case "systems":
		writeList(s, w, r, filterSystems(s.systems, q))
	case "locations":
		writeList(s, w, r, s.locations)
	case IrradiationSource, PVOutSource, WindSource, TemperatureSource:
		writeList(s, w, r, s.sources[endpoint])
	case "utility-footprint":
		writeList(s, w, r, s.footprints)
	case UtilityRevenue, UtilityExpense:
		s.handleStatements(w, r, endpoint, q)
	case GrossKWhDaily:
		s.handleSeries(w, r, endpoint, "system_id", q, true)
	case PVOutDaily, IrradiationDaily:
		s.handleSeries(w, r, endpoint, "source", q, true)
	case PVOutHourly, IrradiationHourly, TemperatureHourly:
		s.handleSeries(w, r, endpoint, "source", q, false)
	case WindHourly:
		s.handleWind(w, r, q)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method not allowed."})
		return
	}
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"Malformed request."}})
		return
	}
	if pw, ok := s.users[body.Username]; !ok || pw != body.Password {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"Unable to log in with provided credentials."}})
		return
	}
	token := "tok-" + body.Username
	s.tokens[token] = true
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func filterSystems(systems []types.System, q url.Values) []types.System {
	id, search := q.Get("system_id"), strings.ToLower(q.Get("search"))
	out := []types.System{}
	for _, sys := range systems {
		switch {
		case id != "" && sys.SystemID != id:
			continue
		case search != "" &&
			!strings.Contains(strings.ToLower(sys.SystemID), search) &&
			!strings.Contains(strings.ToLower(sys.CanonicalName), search) &&
			!strings.Contains(strings.ToLower(sys.GroupName), search):
			continue
		}
		out = append(out, sys)
	}
	return out
}

func (s *Server) knownSystem(id string) bool {
	for _, sys := range s.systems {
		if sys.SystemID == id {
			return true
		}
	}
	return false
}

func invalidChoice(w http.ResponseWriter, param string) {
	writeJSON(w, http.StatusBadRequest, map[string][]string{
		param: {"Select a valid choice. That choice is not one of the available choices."},
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request, endpoint, keyParam string, q url.Values, daily bool) {
	key := q.Get(keyParam)
	rows, ok := s.series[endpoint][key]
	if !ok && !(keyParam == "system_id" && s.knownSystem(key)) {
		invalidChoice(w, keyParam)
		return
	}
	gte, lte, err := tsBounds(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"ts": {err.Error()}})
		return
	}
	out := []map[string]any{}
	for _, m := range rows {
		if m.TS.Before(gte) || m.TS.After(lte) {
			continue
		}
		row := map[string]any{keyParam: key, "value": m.Value}
		if daily {
			row["ts"] = m.TS.Format(time.DateOnly)
		} else {
			row["ts"] = m.TS.Format(time.RFC3339)
		}
		if m.LTA != nil {
			row["lta"] = *m.LTA
		}
		if m.Memo != "" {
			row["memo"] = m.Memo
		}
		out = append(out, row)
	}
	writeList(s, w, r, out)
}

func (s *Server) handleWind(w http.ResponseWriter, r *http.Request, q url.Values) {
	source := q.Get("source")
	rows, ok := s.wind[source]
	if !ok {
		invalidChoice(w, "source")
		return
	}
	gte, lte, err := tsBounds(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"ts": {err.Error()}})
		return
	}
	out := []types.WindMeasurement{}
	for _, m := range rows {
		if m.TS.Before(gte) || m.TS.After(lte) {
			continue
		}
		m.Source = source
		out = append(out, m)
	}
	writeList(s, w, r, out)
}

func (s *Server) handleStatements(w http.ResponseWriter, r *http.Request, endpoint string, q url.Values) {
	id := q.Get("system_id")
	if !s.knownSystem(id) {
		invalidChoice(w, "system_id")
		return
	}
	out := []types.UtilityStatement{}
	for _, st := range s.statements[endpoint] {
		if st.SystemID != id {
			continue
		}
		if y := q.Get("period_year"); y != "" && y != strconv.Itoa(st.PeriodYear) {
			continue
		}
		if m := q.Get("period_month"); m != "" && m != strconv.Itoa(st.PeriodMonth) {
			continue
		}
		out = append(out, st)
	}
	writeList(s, w, r, out)
}

func tsBounds(q url.Values) (time.Time, time.Time, error) {
	gte, err := types.ParseTimestamp(q.Get("ts__gte"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	lte, err := types.ParseTimestamp(q.Get("ts__lte"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return gte, lte, nil
}

// writeList writes rows either as a bare array or as one page of the
// paginated envelope.
func writeList[T any](s *Server, w http.ResponseWriter, r *http.Request, rows []T) {
	if rows == nil {
		rows = []T{}
	}
	if s.pageSize <= 0 {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	pageNum := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
			return
		}
		pageNum = n
	}
	start := (pageNum - 1) * s.pageSize
	if start > len(rows) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
		return
	}
	end := min(start+s.pageSize, len(rows))

	var next *string
	if end < len(rows) {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(pageNum+1))
		u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
		link := u.String()
		next = &link
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(rows),
		"next":     next,
		"previous": nil,
		"results":  rows[start:end],
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
