// Package http implements the HTTP transport for carebridge.
//
// This transport exposes the conversation endpoint used by the chat
// widget, the suggestion lookup for prompt chips, and the mock dashboard
// API. It is the transport the web UI speaks.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/eldercare-labs/carebridge/docs" // swagger spec registration
	"github.com/eldercare-labs/carebridge/internal/config"
	"github.com/eldercare-labs/carebridge/internal/conversation"
	"github.com/eldercare-labs/carebridge/internal/dashboard"
	"github.com/eldercare-labs/carebridge/internal/llm"
	"github.com/eldercare-labs/carebridge/internal/processor"
	"github.com/eldercare-labs/carebridge/internal/suggest"
	"github.com/eldercare-labs/carebridge/internal/transport"
)

// Transport implements transport.Transport over HTTP.
type Transport struct {
	cfg         config.HTTPConfig
	suggestions *suggest.Source
	dash        *dashboard.API
	server      *http.Server
}

// New creates a new HTTP transport.
func New(cfg config.HTTPConfig, suggestions *suggest.Source, dash *dashboard.API) *Transport {
	return &Transport{cfg: cfg, suggestions: suggestions, dash: dash}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: t.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/conversation", func(w http.ResponseWriter, req *http.Request) {
		t.handleConversation(w, req, handler)
	})
	r.Get("/conversation/suggestions", t.handleSuggestions)

	if t.dash != nil {
		r.Mount("/api", t.dash.Routes())
	}

	// Swagger UI — serves the generated OpenAPI docs.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.cfg.Port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// conversationRequest is the wire form of a turn request.
type conversationRequest struct {
	Message             string                     `json:"message"`
	UserType            string                     `json:"userType,omitempty"`
	ElderInfo           *conversation.ElderContext `json:"elderInfo,omitempty"`
	ConversationHistory []conversation.Turn        `json:"conversationHistory,omitempty"`
	GenerateAudio       *bool                      `json:"generateAudio,omitempty"`
	Urgency             string                     `json:"urgency,omitempty"`
}

// conversationResponse is the wire form of a turn result.
type conversationResponse struct {
	Response            string                     `json:"response"`
	Intent              conversation.Intent        `json:"intent"`
	Audio               *conversation.AudioPayload `json:"audio,omitempty"`
	ConversationHistory []conversation.Turn        `json:"conversationHistory"`
	Suggestions         []string                   `json:"suggestions"`
}

// handleConversation processes a POST /conversation request.
//
// @Summary     Process a conversation turn
// @Description Classifies the message's intent, generates an assistant reply, and optionally
// @Description synthesizes a voice response. Remote-service failures degrade to local fallback
// @Description replies; only a missing message is rejected.
// @Tags        conversation
// @Accept      json
// @Produce     json
// @Param       request  body      conversationRequest  true  "Conversation turn"
// @Success     200  {object}  conversationResponse  "Assistant reply"
// @Failure     400  {object}  errorResponse  "Message missing"
// @Failure     429  {object}  errorResponse  "Upstream rate limit"
// @Failure     503  {object}  errorResponse  "Upstream not configured"
// @Failure     500  {object}  errorResponse  "Internal error"
// @Router      /conversation [post]
func (t *Transport) handleConversation(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var req conversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	wantsAudio := true
	if req.GenerateAudio != nil {
		wantsAudio = *req.GenerateAudio
	}

	session := &conversation.Session{
		UserType:   conversation.ParseUserType(req.UserType),
		Elder:      req.ElderInfo,
		Transcript: req.ConversationHistory,
	}

	urgency := conversation.UrgencyNormal
	if req.Urgency == string(conversation.UrgencyHigh) {
		urgency = conversation.UrgencyHigh
	}

	result, err := handler(r.Context(), processor.Request{
		Message:    req.Message,
		WantsAudio: wantsAudio,
		Urgency:    urgency,
	}, session)
	if err != nil {
		slog.Error("conversation turn failed", "error", err)
		writeError(w, StatusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, conversationResponse{
		Response:            result.Reply,
		Intent:              result.Intent,
		Audio:               result.AudioPayload(),
		ConversationHistory: result.Transcript,
		Suggestions:         result.Suggestions,
	})
}

// handleSuggestions serves GET /conversation/suggestions.
//
// @Summary     Look up follow-up suggestions
// @Tags        conversation
// @Produce     json
// @Param       userType  query  string  false  "elder, caregiver or support"  default(caregiver)
// @Param       intent    query  string  false  "intent label"  default(general_inquiry)
// @Success     200  {object}  suggestionsResponse
// @Router      /conversation/suggestions [get]
func (t *Transport) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	userType := r.URL.Query().Get("userType")
	if userType == "" {
		userType = string(conversation.UserCaregiver)
	}
	intent := r.URL.Query().Get("intent")
	if intent == "" {
		intent = string(conversation.IntentGeneralInquiry)
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions: t.suggestions.For(userType, intent),
	})
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// StatusForError maps a pipeline error to an HTTP status code. A missing
// message is the caller's fault; upstream configuration and rate-limit
// problems get their own codes so the UI can word the failure.
func StatusForError(err error) int {
	if errors.Is(err, conversation.ErrEmptyMessage) {
		return http.StatusBadRequest
	}
	switch llm.ClassifyError(err) {
	case llm.KindNotConfigured:
		return http.StatusServiceUnavailable
	case llm.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
