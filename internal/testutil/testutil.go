package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pders01/neuronest/internal/models"
)

// Routes that can be made to fail with Fail
const (
	RouteLogin     = "login"
	RouteSignup    = "signup"
	RouteMe        = "me"
	RouteThoughts  = "thoughts"
	RoutePlant     = "plant"
	RouteWater     = "water"
	RouteInsights  = "insights"
	RouteJournal   = "journal"
	RouteMindspace = "mindspace"
	RoutePing      = "ping"
)

type account struct {
	user     models.User
	password string
}

type failure struct {
	status int
	detail string
}

// APIServer is an in-memory NeuroNest API for tests
type APIServer struct {
	*httptest.Server
	T *testing.T

	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	thoughts map[string][]models.Thought
	failures map[string]failure
	calls    map[string]int
	nextUser int64
	nextID   int64
	now      func() time.Time
}

// NewAPIServer starts a fake API and closes it when the test ends
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()

	s := &APIServer{
		T:        t,
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		thoughts: make(map[string][]models.Thought),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
		nextUser: 1,
		nextID:   1,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handle(RoutePing, false, s.ping))
	mux.HandleFunc("POST /api/v1/auth/token", s.handle(RouteLogin, false, s.login))
	mux.HandleFunc("POST /api/v1/users", s.handle(RouteSignup, false, s.signup))
	mux.HandleFunc("GET /api/v1/users/me", s.handle(RouteMe, true, s.me))
	mux.HandleFunc("GET /api/v1/thoughts", s.handle(RouteThoughts, true, s.listThoughts))
	mux.HandleFunc("POST /api/v1/thoughts", s.handle(RoutePlant, true, s.createThought))
	mux.HandleFunc("PUT /api/v1/thoughts/{id}/water", s.handle(RouteWater, true, s.waterThought))
	mux.HandleFunc("GET /api/v1/insights", s.handle(RouteInsights, true, s.insights))
	mux.HandleFunc("POST /api/v1/journal/summary", s.handle(RouteJournal, true, s.journal))
	mux.HandleFunc("POST /api/v1/mindspace/recommendations", s.handle(RouteMindspace, true, s.recommendations))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// AddUser registers an account and returns a valid token for it
func (s *APIServer) AddUser(username, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[username] = &account{
		user:     models.User{ID: s.nextUser, Username: username, CreatedAt: s.now()},
		password: password,
	}
	s.nextUser++
	return s.issueToken(username)
}

// SeedThought stores a thought for username
func (s *APIServer) SeedThought(username, content string, mood models.Mood, stage int) models.Thought {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accounts[username]
	if acct == nil {
		s.T.Fatalf("seed thought: unknown user %s", username)
	}
	created := s.now().Add(-48 * time.Hour)
	t := models.Thought{
		ID:            s.nextID,
		UserID:        acct.user.ID,
		Content:       content,
		Mood:          mood,
		GrowthStage:   stage,
		CreatedAt:     created,
		LastWateredAt: created,
	}
	s.nextID++
	s.thoughts[username] = append(s.thoughts[username], t)
	return t
}

// Thoughts returns what the server holds for username
func (s *APIServer) Thoughts(username string) []models.Thought {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Thought, len(s.thoughts[username]))
	copy(out, s.thoughts[username])
	return out
}

// Fail makes route answer status with detail until Recover is called
func (s *APIServer) Fail(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, detail: detail}
}

// NoContent makes route answer 204 with an empty body until Recover is called
func (s *APIServer) NoContent(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: http.StatusNoContent}
}

// Recover clears a failure set by Fail or NoContent
func (s *APIServer) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Calls counts the requests that reached route
func (s *APIServer) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *APIServer) issueToken(username string) string {
	token := uuid.NewString()
	s.tokens[token] = username
	return token
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, username string)

func (s *APIServer) handle(route string, auth bool, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		f, failing := s.failures[route]
		s.mu.Unlock()

		if failing && f.status == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if failing {
			writeDetail(w, f.status, f.detail)
			return
		}

		var username string
		if auth {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			s.mu.Lock()
			username = s.tokens[token]
			s.mu.Unlock()
			if username == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}
		}
		h(w, r, username)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeFieldError(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{
			"loc":  []string{"body", field},
			"msg":  msg,
			"type": "value_error",
		}},
	})
}

func (s *APIServer) ping(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the NeuroNest API"})
}

func (s *APIServer) login(w http.ResponseWriter, r *http.Request, _ string) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form")
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accounts[username]
	if acct == nil || acct.password != password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	writeJSON(w, http.StatusOK, models.Token{AccessToken: s.issueToken(username), TokenType: "bearer"})
}

func (s *APIServer) signup(w http.ResponseWriter, r *http.Request, _ string) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(creds.Username) < 3 {
		writeFieldError(w, "username", "String should have at least 3 characters")
		return
	}
	if len(creds.Password) < 6 {
		writeFieldError(w, "password", "String should have at least 6 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[creds.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	acct := &account{
		user:     models.User{ID: s.nextUser, Username: creds.Username, CreatedAt: s.now()},
		password: creds.Password,
	}
	s.nextUser++
	s.accounts[creds.Username] = acct
	writeJSON(w, http.StatusCreated, acct.user)
}

func (s *APIServer) me(w http.ResponseWriter, r *http.Request, username string) {
	s.mu.Lock()
	user := s.accounts[username].user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, user)
}

func (s *APIServer) listThoughts(w http.ResponseWriter, r *http.Request, username string) {
	writeJSON(w, http.StatusOK, s.Thoughts(username))
}

func (s *APIServer) createThought(w http.ResponseWriter, r *http.Request, username string) {
	var payload models.ThoughtCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		writeFieldError(w, "content", "String should have at least 1 character")
		return
	}
	if !payload.Mood.Valid() {
		writeFieldError(w, "mood", "Input should be 'positive', 'neutral' or 'negative'")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	t := models.Thought{
		ID:            s.nextID,
		UserID:        s.accounts[username].user.ID,
		Content:       payload.Content,
		Mood:          payload.Mood,
		CreatedAt:     now,
		LastWateredAt: now,
	}
	s.nextID++
	s.thoughts[username] = append(s.thoughts[username], t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *APIServer) waterThought(w http.ResponseWriter, r *http.Request, username string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Thought not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.thoughts[username]
	for i := range list {
		if list[i].ID == id {
			list[i] = list[i].Watered(s.now())
			writeJSON(w, http.StatusOK, list[i])
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Thought not found")
}

func (s *APIServer) insights(w http.ResponseWriter, r *http.Request, username string) {
	days := 30
	if v := r.URL.Query().Get("period_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]any{{"loc": []string{"query", "period_days"}, "msg": "Input should be a valid integer", "type": "int_parsing"}},
			})
			return
		}
		days = n
	}

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	out := models.GrowthInsights{MoodDistribution: map[string]int{}, RecentGrowthTrend: "No data"}
	for _, t := range s.Thoughts(username) {
		if t.CreatedAt.Before(since) {
			continue
		}
		out.TotalThoughts++
		out.MoodDistribution[string(t.Mood)]++
	}
	if out.TotalThoughts > 0 {
		out.RecentGrowthTrend = "stable"
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *APIServer) journal(w http.ResponseWriter, r *http.Request, username string) {
	var req models.JournalSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	thoughts := s.Thoughts(username)
	out := models.JournalSummary{
		Summary:        fmt.Sprintf("You planted %d thoughts in the %s.", len(thoughts), req.Period),
		Insight:        "Writing regularly helps.",
		Recommendation: "Take a short walk.",
	}
	for _, t := range thoughts {
		out.Highlights = append(out.Highlights, models.Highlight{
			Date:  t.CreatedAt.Format(time.DateOnly),
			Entry: t.Content,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *APIServer) recommendations(w http.ResponseWriter, r *http.Request, _ string) {
	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	practices := []models.Practice{
		{ID: "deep_breathing", Title: "Deep Breathing", DurationMinutes: 5, Description: "Simple breath awareness to calm your mind and body."},
	}
	if req.Mood == "anxious" || req.Mood == "stressed" {
		practices = append(practices, models.Practice{ID: "body_scan", Title: "Body Scan", DurationMinutes: 10, Description: "Release tension by moving attention through the body."})
	}
	writeJSON(w, http.StatusOK, models.RecommendationResponse{Recommendations: practices})
}
