// Package main is a development stand-in for the chat backend the widget
// talks to. It answers through an LLM provider when an API key is
// configured, and echoes the latest message otherwise.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/anchor-corps/chat-relay/internal/config"
	"github.com/anchor-corps/chat-relay/internal/llm"
	"github.com/anchor-corps/chat-relay/internal/model"
	"github.com/anchor-corps/chat-relay/pkg/logger"
)

type server struct {
	llmClient llm.Client
	model     string
	logger    *logger.Logger
}

func main() {
	_ = godotenv.Load()
	cfg := config.LoadBackend()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var llmClient llm.Client
	if cfg.AnthropicAPIKey != "" && cfg.Provider != string(llm.ProviderOpenAI) {
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client, echoing instead", zap.Error(err))
		}
	} else if cfg.OpenAIAPIKey != "" {
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client, echoing instead", zap.Error(err))
		}
	}

	s := &server{llmClient: llmClient, model: cfg.Model, logger: log}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Post("/chat", s.handleChat)

	log.Info("chat backend listening", zap.String("port", cfg.Port))
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
		return
	}

	replyText := s.answer(r, req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reply": replyText})
}

// answer produces the assistant reply: an LLM completion over the session
// history when a provider is configured, otherwise a plain echo.
func (s *server) answer(r *http.Request, req model.ChatRequest) string {
	if s.llmClient == nil {
		return "You said: " + req.LatestMessage.Content
	}

	msgs := make([]llm.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		// The LLM APIs accept only user/assistant turns.
		if m.Role != string(model.RoleUser) && m.Role != string(model.RoleAssistant) {
			continue
		}
		msgs = append(msgs, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := s.llmClient.Complete(r.Context(), &llm.CompletionRequest{
		Model:    s.model,
		Messages: msgs,
	})
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err))
		return "Sorry, I could not answer that right now."
	}
	return resp.Content
}
