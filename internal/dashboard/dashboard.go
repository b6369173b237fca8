// Package dashboard serves the caregiver dashboard's mock REST API.
//
// The endpoints back the list/detail views of the web UI: monitored
// elders, fraud alerts across channels, and voice interaction logs. All
// data is static fixtures held in memory; nothing here persists.
package dashboard

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Elder is a monitored person.
type Elder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Phone       string    `json:"phone"`
	RiskLevel   string    `json:"riskLevel"` // low, medium, high
	Channels    []string  `json:"channels"`  // monitored channels
	LastContact time.Time `json:"lastContact"`
}

// Alert is one suspected fraud event on a monitored channel.
type Alert struct {
	ID          string    `json:"id"`
	ElderID     string    `json:"elderId"`
	Channel     string    `json:"channel"`  // phone, email, banking, social, breach
	Severity    string    `json:"severity"` // low, medium, high
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Resolved    bool      `json:"resolved"`
}

// VoiceLog is one recorded assistant interaction.
type VoiceLog struct {
	ID         string    `json:"id"`
	ElderID    string    `json:"elderId"`
	Transcript string    `json:"transcript"`
	Intent     string    `json:"intent"`
	Duration   int       `json:"durationSeconds"`
	Timestamp  time.Time `json:"timestamp"`
}

// API serves the dashboard routes over its fixture data.
type API struct {
	elders    []Elder
	alerts    []Alert
	voiceLogs []VoiceLog
}

// New creates a dashboard API over the built-in fixtures.
func New() *API {
	return &API{
		elders:    fixtureElders(),
		alerts:    fixtureAlerts(),
		voiceLogs: fixtureVoiceLogs(),
	}
}

// Routes returns the dashboard router, intended to be mounted under /api.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/login", a.handleLogin)
	r.Get("/elders", a.handleElders)
	r.Get("/elders/{id}", a.handleElder)
	r.Get("/alerts", a.handleAlerts)
	r.Get("/voice-logs", a.handleVoiceLogs)
	return r
}

// handleLogin is a mock: any non-empty credentials are accepted and a
// canned token is returned. Real authentication is out of scope.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": "mock-session-token",
		"user": map[string]string{
			"email": req.Email,
			"role":  "caregiver",
		},
	})
}

// handleElders serves GET /elders with optional ?risk= filtering and
// ?sort=name|risk|lastContact ordering.
func (a *API) handleElders(w http.ResponseWriter, r *http.Request) {
	risk := r.URL.Query().Get("risk")

	out := make([]Elder, 0, len(a.elders))
	for _, e := range a.elders {
		if risk != "" && e.RiskLevel != risk {
			continue
		}
		out = append(out, e)
	}

	switch r.URL.Query().Get("sort") {
	case "name":
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "risk":
		sort.Slice(out, func(i, j int) bool { return riskRank(out[i].RiskLevel) > riskRank(out[j].RiskLevel) })
	case "lastContact":
		sort.Slice(out, func(i, j int) bool { return out[i].LastContact.After(out[j].LastContact) })
	}

	writeJSON(w, http.StatusOK, map[string]any{"elders": out})
}

func (a *API) handleElder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, e := range a.elders {
		if e.ID == id {
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeError(w, http.StatusNotFound, "elder not found")
}

// handleAlerts serves GET /alerts with optional ?elderId= and ?severity=
// filters, newest first.
func (a *API) handleAlerts(w http.ResponseWriter, r *http.Request) {
	elderID := r.URL.Query().Get("elderId")
	severity := r.URL.Query().Get("severity")

	out := make([]Alert, 0, len(a.alerts))
	for _, al := range a.alerts {
		if elderID != "" && al.ElderID != elderID {
			continue
		}
		if severity != "" && al.Severity != severity {
			continue
		}
		out = append(out, al)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })

	writeJSON(w, http.StatusOK, map[string]any{"alerts": out})
}

// handleVoiceLogs serves GET /voice-logs with an optional ?elderId= filter.
func (a *API) handleVoiceLogs(w http.ResponseWriter, r *http.Request) {
	elderID := r.URL.Query().Get("elderId")

	out := make([]VoiceLog, 0, len(a.voiceLogs))
	for _, vl := range a.voiceLogs {
		if elderID != "" && vl.ElderID != elderID {
			continue
		}
		out = append(out, vl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })

	writeJSON(w, http.StatusOK, map[string]any{"voiceLogs": out})
}

func riskRank(level string) int {
	switch strings.ToLower(level) {
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
