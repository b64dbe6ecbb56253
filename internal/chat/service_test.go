package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/generator"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

type fakeRepository struct {
	mu  sync.Mutex
	tmi map[int64]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tmi: make(map[int64]bool)}
}

func (f *fakeRepository) TMIEnabled(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tmi[userID], nil
}

func (f *fakeRepository) ToggleTMI(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tmi[userID] = !f.tmi[userID]
	return f.tmi[userID], nil
}

type fakeProfiles map[int64]preference.UserProfile

func (f fakeProfiles) GetProfile(ctx context.Context, userID int64) (preference.UserProfile, error) {
	return f[userID], nil
}

type fakeCompleter struct {
	reply    string
	err      error
	messages []generator.Message
	opts     generator.Options
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []generator.Message, opts generator.Options) (string, error) {
	f.messages = messages
	f.opts = opts
	return f.reply, f.err
}

func newTestService(llm generator.Completer) *service {
	svc := NewService(newFakeRepository(), fakeProfiles{
		1: {MBTI: "ENFP", SelectedVibe: preference.VibeChill, LikedTags: []string{"t1"}},
	}, llm).(*service)
	svc.pick = func(n int) int { return 0 }
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Category
	}{
		{"코스 추천해줘", CategoryRecommend},
		{"다른 장소 보여줘", CategoryAlternative},
		{"다른 코스 없어?", CategoryRecommend},
		{"근처 맛집 알려줘", CategoryFood},
		{"뭐 먹지", CategoryFood},
		{"분위기 좋은 곳", CategoryVibe},
		{"감성 카페", CategoryVibe},
		{"안녕!", CategoryDefault},
		{"", CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSendCanned(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	reply, err := svc.Send(ctx, 1, &SendRequest{Message: "근처 맛집 알려줘"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply.Source != SourceCanned || reply.Category != CategoryFood {
		t.Errorf("Expected canned food reply, got %s/%s", reply.Source, reply.Category)
	}
	if reply.Content != cannedResponses[CategoryFood][0] {
		t.Errorf("Unexpected content %q", reply.Content)
	}
	if reply.TMI != nil {
		t.Error("Expected no TMI card while TMI is off")
	}
	if !strings.HasPrefix(reply.ID, "ai-") || len(reply.QuickReplies) != 4 {
		t.Errorf("Unexpected reply %+v", reply)
	}

	enabled, _ := svc.ToggleTMI(ctx, 1)
	if !enabled {
		t.Fatal("Expected TMI to turn on")
	}
	reply, _ = svc.Send(ctx, 1, &SendRequest{Message: "안녕"})
	if reply.TMI == nil || reply.TMI.Type != "fun_fact" || reply.TMI.Icon != "💡" {
		t.Errorf("Expected fun fact card, got %+v", reply.TMI)
	}
}

func TestSendUsesModel(t *testing.T) {
	llm := &fakeCompleter{reply: "연남동 어때요? 🌿"}
	svc := newTestService(llm)

	history := []Message{{Role: RoleUser, Content: "안녕"}, {Role: RoleAI, Content: "안녕하세요!"}}
	reply, err := svc.Send(context.Background(), 1, &SendRequest{Message: "코스 추천해줘", History: history})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply.Source != SourceLLM || reply.Content != "연남동 어때요? 🌿" {
		t.Errorf("Expected model reply, got %+v", reply)
	}

	if len(llm.messages) != 4 {
		t.Fatalf("Expected system + 2 history + user, got %d messages", len(llm.messages))
	}
	roles := []string{"system", "user", "assistant", "user"}
	for i, m := range llm.messages {
		if m.Role != roles[i] {
			t.Errorf("message %d: expected role %s, got %s", i, roles[i], m.Role)
		}
	}
	system := llm.messages[0].Content
	if !strings.Contains(system, "ENFP") || !strings.Contains(system, "여유로운") {
		t.Errorf("Expected profile in system prompt, got %q", system)
	}
	if llm.opts.Temperature != 0.8 || llm.opts.MaxTokens != 2048 {
		t.Errorf("Unexpected options %+v", llm.opts)
	}
}

func TestSendFallsBackOnModelError(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeCompleter
	}{
		{"error", &fakeCompleter{err: errors.New("upstream 500")}},
		{"blank", &fakeCompleter{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.llm)
			reply, err := svc.Send(context.Background(), 1, &SendRequest{Message: "분위기 좋은 곳"})
			if err != nil {
				t.Fatalf("send: %v", err)
			}
			if reply.Source != SourceCanned || reply.Content != cannedResponses[CategoryVibe][0] {
				t.Errorf("Expected canned vibe reply, got %+v", reply)
			}
		})
	}
}

func TestSession(t *testing.T) {
	svc := newTestService(nil)
	session, err := svc.Session(context.Background(), 9)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if session.TMIEnabled {
		t.Error("Expected TMI off by default")
	}
	if session.Welcome.Content != welcomeMessage || session.QuickReplies[0].Action != CategoryRecommend {
		t.Errorf("Unexpected session %+v", session)
	}
}

func TestSystemPrompt(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	empty := SystemPrompt(preference.UserProfile{}, now)
	if !strings.Contains(empty, "MBTI: 미설정") || !strings.Contains(empty, "싫어하는 키워드: 없음") || strings.Contains(empty, "나이") {
		t.Errorf("Unexpected prompt for empty profile: %q", empty)
	}

	full := SystemPrompt(preference.UserProfile{
		DateType: preference.DateTypeCouple,
		Birthday: "1997-03-15",
		Location: &preference.Region{City: "서울특별시", District: "마포구"},
	}, now)
	for _, want := range []string{"데이트 유형: 연인", "나이: 27세", "서울특별시 마포구"} {
		if !strings.Contains(full, want) {
			t.Errorf("Expected %q in prompt", want)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		birthday string
		want     int
	}{
		{"1997-03-15", 28},
		{"1997-03-16", 27},
		{"2000-12-31", 24},
		{"", 0},
		{"not-a-date", 0},
		{"2030-01-01", 0},
	}

	for _, tt := range tests {
		if got := Age(tt.birthday, now); got != tt.want {
			t.Errorf("Age(%q): expected %d, got %d", tt.birthday, tt.want, got)
		}
	}
}
