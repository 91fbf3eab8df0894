// Package main is a terminal chat client. It drives the same conversation
// core the web widget uses: one live session, lead-capture gating, and
// transcript forwarding on end-chat.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/anchor-corps/chat-relay/internal/chat"
	"github.com/anchor-corps/chat-relay/internal/config"
	"github.com/anchor-corps/chat-relay/internal/forward"
	"github.com/anchor-corps/chat-relay/internal/model"
	"github.com/anchor-corps/chat-relay/pkg/logger"
)

// consoleSink renders client updates as terminal output.
type consoleSink struct {
	businessPhone string
	businessHours string
}

func (s *consoleSink) ShowMessage(role model.Role, text string) {
	switch role {
	case model.RoleAssistant:
		fmt.Printf("bot> %s\n", text)
	case model.RoleSystem:
		fmt.Printf("  ! %s\n", text)
	default:
		// User input is already on screen; nothing to echo.
	}
}

func (s *consoleSink) SetStatus(text string, isError bool) {
	if text == "" {
		return
	}
	if isError {
		fmt.Printf("  ! %s\n", text)
		return
	}
	fmt.Printf("  · %s\n", text)
}

func (s *consoleSink) SetBusy(busy bool) {}

func (s *consoleSink) SetLeadVisible(visible bool) {
	if !visible {
		return
	}
	fmt.Println("  · Share your contact details to continue: /lead Name; email; phone")
	if s.businessPhone != "" && chat.WithinBusinessHours(s.businessHours, time.Now()) {
		fmt.Printf("  · or just give us a call: %s\n", s.businessPhone)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.LoadWidget()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	meta := model.PageMeta{
		Page:             cfg.Page,
		Title:            cfg.Title,
		BusinessName:     cfg.BusinessName,
		BusinessLocation: cfg.BusinessLocation,
		BusinessPhone:    cfg.BusinessPhone,
		BusinessEmail:    cfg.BusinessEmail,
		Context:          cfg.BusinessContext,
	}

	sink := &consoleSink{
		businessPhone: cfg.BusinessPhone,
		businessHours: cfg.BusinessHours,
	}

	fwd := forward.New(forward.Config{
		TranscriptURL: cfg.ForwardTranscriptURL,
		LeadURL:       cfg.ForwardLeadURL,
		ClientID:      cfg.ClientID,
		Token:         cfg.ForwardToken,
	}, nil, log)

	fmt.Printf("%s | %s\n", cfg.HeaderTitle, cfg.HeaderSubtitle)
	fmt.Println("Commands: /end  /lead Name; email; phone  /quit")

	client := chat.New(chat.Config{
		APIURL:       cfg.APIURL,
		APIAuthToken: cfg.APIAuthToken,
		ClientID:     cfg.ClientID,
		IntroText:    cfg.IntroText,
		Meta:         meta,
	}, nil, fwd, sink, log)

	if cfg.APIURL == "" {
		fmt.Println("  ! Chatbot API URL missing. Set CHAT_API_URL.")
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/end":
			_ = client.EndChat(ctx)
		case strings.HasPrefix(line, "/lead"):
			parts := strings.SplitN(strings.TrimSpace(strings.TrimPrefix(line, "/lead")), ";", 3)
			var name, email, phone string
			if len(parts) > 0 {
				name = parts[0]
			}
			if len(parts) > 1 {
				email = parts[1]
			}
			if len(parts) > 2 {
				phone = parts[2]
			}
			_ = client.SubmitLead(ctx, name, email, phone)
		default:
			_ = client.Submit(ctx, line)
		}
	}
}
