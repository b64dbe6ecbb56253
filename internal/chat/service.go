// internal/chat/service.go

package chat

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imadgeboyega/datemate-backend/internal/generator"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

// ProfileProvider supplies the caller's onboarding profile
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID int64) (preference.UserProfile, error)
}

type Service interface {
	Session(ctx context.Context, userID int64) (*Session, error)
	Send(ctx context.Context, userID int64, req *SendRequest) (*Reply, error)
	ToggleTMI(ctx context.Context, userID int64) (bool, error)
}

type service struct {
	repo     Repository
	profiles ProfileProvider
	llm      generator.Completer
	pick     func(n int) int
	now      func() time.Time
}

// NewService wires the chat. llm may be nil, in which case every reply is canned.
func NewService(repo Repository, profiles ProfileProvider, llm generator.Completer) Service {
	return &service{
		repo:     repo,
		profiles: profiles,
		llm:      llm,
		pick:     rand.Intn,
		now:      time.Now,
	}
}

func (s *service) Session(ctx context.Context, userID int64) (*Session, error) {
	enabled, err := s.repo.TMIEnabled(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Welcome: Reply{
			ID:           "welcome",
			Role:         RoleAI,
			Content:      welcomeMessage,
			Category:     CategoryDefault,
			Source:       SourceCanned,
			Timestamp:    s.now().UTC(),
			QuickReplies: QuickReplies(),
		},
		TMIEnabled:   enabled,
		QuickReplies: QuickReplies(),
	}, nil
}

func (s *service) Send(ctx context.Context, userID int64, req *SendRequest) (*Reply, error) {
	category := Classify(req.Message)

	tmi, err := s.repo.TMIEnabled(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, source := s.answer(ctx, userID, category, req)

	reply := &Reply{
		ID:           "ai-" + uuid.New().String(),
		Role:         RoleAI,
		Content:      content,
		Category:     category,
		Source:       source,
		Timestamp:    s.now().UTC(),
		QuickReplies: QuickReplies(),
	}
	if tmi {
		card := funFactCard
		reply.TMI = &card
	}

	RecordReply(category, source)
	return reply, nil
}

// answer asks the model when one is configured and falls back to a canned reply
func (s *service) answer(ctx context.Context, userID int64, category Category, req *SendRequest) (string, Source) {
	if s.llm == nil {
		return cannedResponse(category, s.pick), SourceCanned
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		log.Printf("⚠️  Chat profile lookup failed for user %d: %v", userID, err)
		profile = preference.UserProfile{}
	}

	messages := conversation(SystemPrompt(profile, s.now()), req.History, req.Message)
	content, err := s.llm.Complete(ctx, messages, generator.Options{Temperature: 0.8, MaxTokens: 2048})
	if err == nil && strings.TrimSpace(content) != "" {
		return content, SourceLLM
	}

	if err != nil {
		log.Printf("⚠️  Chat model call failed for user %d, using canned reply: %v", userID, err)
	}
	RecordFallback()
	return cannedResponse(category, s.pick), SourceCanned
}

func (s *service) ToggleTMI(ctx context.Context, userID int64) (bool, error) {
	return s.repo.ToggleTMI(ctx, userID)
}
