package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	entschema "github.com/mentora/mentora/ent/schema"
	"github.com/mentora/mentora/internal/agent"
	"github.com/mentora/mentora/internal/llm"
	"github.com/mentora/mentora/internal/plan"
	"github.com/mentora/mentora/internal/profile"
	"github.com/mentora/mentora/internal/quizgen"
	"github.com/mentora/mentora/internal/resources"
	"github.com/mentora/mentora/internal/store"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	summary, err := s.deps.Profiles.Summary(r.Context(), userID)
	if err != nil {
		s.profileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTopicMastery(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	topic := chi.URLParam(r, "topic")
	if decoded, err := url.PathUnescape(topic); err == nil {
		topic = decoded
	}

	mastery, err := s.deps.Profiles.TopicMastery(r.Context(), userID, topic)
	if err != nil {
		s.profileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mastery)
}

func (s *Server) handleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID       string `json:"user_id"`
		Topic        string `json:"topic"`
		NumQuestions int    `json:"num_questions"`
		NumCorrect   int    `json:"num_correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	mastery, err := s.deps.Profiles.RecordQuizAttempt(r.Context(), in.UserID, in.Topic, in.NumQuestions, in.NumCorrect)
	if err != nil {
		s.profileError(w, err)
		return
	}

	s.metrics.RecordQuizAttempt("http")
	writeJSON(w, http.StatusCreated, mastery)
}

// profileError maps the store's typed errors onto status codes:
// invalid attempts are the client's fault, storage failures are ours.
func (s *Server) profileError(w http.ResponseWriter, err error) {
	switch {
	case profile.IsInvalidAttempt(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case profile.IsStorageUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("profile operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Topic        string `json:"topic"`
		Difficulty   string `json:"difficulty"`
		NumQuestions int    `json:"num_questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if in.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if in.Difficulty == "" {
		in.Difficulty = string(quizgen.DifficultyBeginner)
	}
	if in.NumQuestions == 0 {
		in.NumQuestions = 5
	}

	q, err := s.deps.Quizzes.Generate(r.Context(), quizgen.GenerateInput{
		Topic:        in.Topic,
		Difficulty:   quizgen.Difficulty(in.Difficulty),
		NumQuestions: in.NumQuestions,
	})
	if err != nil {
		s.logger.Error("quiz generation failed", "topic", in.Topic, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Tutor == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}

	var in struct {
		UserID  string        `json:"user_id"`
		Message string        `json:"message"`
		Skill   string        `json:"skill"`
		Level   string        `json:"level"`
		History []llm.Message `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if in.UserID == "" || in.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id and message are required")
		return
	}

	res, err := s.deps.Tutor.Chat(r.Context(), agent.ChatInput{
		UserID:  in.UserID,
		Skill:   in.Skill,
		Level:   in.Level,
		Message: in.Message,
		History: in.History,
	})
	if err != nil {
		s.metrics.RecordChatTurn("error")
		s.logger.Error("chat turn failed", "user", in.UserID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.metrics.RecordChatTurn("ok")
	for _, ev := range res.Trace {
		s.metrics.RecordToolCall(ev.Tool, !ev.IsError, ev.Duration)
	}

	writeJSON(w, http.StatusOK, struct {
		Reply   string             `json:"reply"`
		Trace   []agent.TraceEvent `json:"trace"`
		History []llm.Message      `json:"history"`
	}{res.Reply, res.Trace, res.History})
}

func (s *Server) handleSearchResources(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	max := resources.DefaultMaxResults
	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "max must be a positive integer")
			return
		}
		max = n
	}

	found, err := s.deps.Search.Search(r.Context(), query, max)
	if err != nil {
		s.logger.Error("resource search failed", "query", query, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Query     string               `json:"query"`
		Resources []resources.Resource `json:"resources"`
	}{query, found})
}

// planResponse is the wire shape of a stored plan.
type planResponse struct {
	ID        int                    `json:"id"`
	UserID    string                 `json:"user_id"`
	Skill     string                 `json:"skill"`
	Level     string                 `json:"level"`
	Modules   []entschema.PlanModule `json:"modules"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	rec, err := s.deps.Plans.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, plan.ErrNoPlan) {
			writeError(w, http.StatusNotFound, "no learning plan for "+userID)
			return
		}
		s.logger.Error("plan lookup failed", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(rec))
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID string `json:"user_id"`
		Skill  string `json:"skill"`
		Level  string `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	level, err := plan.ParseLevel(in.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.deps.Plans.Create(r.Context(), in.UserID, in.Skill, level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toPlanResponse(rec))
}

func toPlanResponse(rec *store.PlanRecord) planResponse {
	return planResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Skill:     rec.Skill,
		Level:     rec.Level,
		Modules:   rec.Modules,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
