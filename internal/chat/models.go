// internal/chat/models.go

package chat

import "time"

// Category is the intent detected from a user message
type Category string

const (
	CategoryRecommend   Category = "recommend"
	CategoryAlternative Category = "alternative"
	CategoryFood        Category = "food"
	CategoryVibe        Category = "vibe"
	CategoryDefault     Category = "default"
)

// Source tells the client where a reply came from
type Source string

const (
	SourceLLM    Source = "llm"
	SourceCanned Source = "canned"
)

// Role of a message in the conversation
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

type Message struct {
	Role    Role   `json:"role" validate:"required,oneof=user ai"`
	Content string `json:"content" validate:"required,max=2000"`
}

// TMICard is the optional trivia card attached to replies
type TMICard struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon"`
}

type QuickReply struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Action Category `json:"action"`
}

// SendRequest carries the new message plus recent turns for context
type SendRequest struct {
	Message string    `json:"message" validate:"required,max=1000"`
	History []Message `json:"history" validate:"max=20,dive"`
}

type Reply struct {
	ID           string       `json:"id"`
	Role         Role         `json:"role"`
	Content      string       `json:"content"`
	Category     Category     `json:"category"`
	Source       Source       `json:"source"`
	Timestamp    time.Time    `json:"timestamp"`
	TMI          *TMICard     `json:"tmi,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies"`
}

// Session is what the chat screen needs before the first message
type Session struct {
	Welcome      Reply        `json:"welcome"`
	TMIEnabled   bool         `json:"tmi_enabled"`
	QuickReplies []QuickReply `json:"quick_replies"`
}

type TMIResponse struct {
	Enabled bool `json:"enabled"`
}
