// internal/chat/prompt.go

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/generator"
	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

const notSet = "미설정"

var dateTypeLabels = map[preference.DateType]string{
	preference.DateTypeCouple:  "연인",
	preference.DateTypeSolo:    "혼자",
	preference.DateTypeFriends: "친구",
}

func vibeLabel(v preference.Vibe) string {
	for _, opt := range preference.VibeOptions {
		if opt.ID == v {
			return opt.Label
		}
	}
	return string(v)
}

// Age in whole years from a YYYY-MM-DD birthday, 0 when unknown
func Age(birthday string, now time.Time) int {
	born, err := time.Parse("2006-01-02", birthday)
	if err != nil || born.After(now) {
		return 0
	}

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// SystemPrompt describes the user to the model
func SystemPrompt(profile preference.UserProfile, now time.Time) string {
	var b strings.Builder
	b.WriteString("당신은 '데이트메이트 AI'입니다. 한국어로 친근하게 데이트 코스를 추천하세요.\n\n")
	b.WriteString("## 사용자 프로필\n")

	dateType := notSet
	if label, ok := dateTypeLabels[profile.DateType]; ok {
		dateType = label
	}
	fmt.Fprintf(&b, "- 데이트 유형: %s\n", dateType)
	fmt.Fprintf(&b, "- MBTI: %s\n", orNotSet(profile.MBTI))
	if age := Age(profile.Birthday, now); age > 0 {
		fmt.Fprintf(&b, "- 나이: %d세\n", age)
	}

	location := notSet
	if profile.Location != nil {
		location = profile.Location.City + " " + profile.Location.District
	}
	fmt.Fprintf(&b, "- 거주 지역: %s\n", location)

	liked := preference.TagLabels(profile.LikedTags)
	fmt.Fprintf(&b, "- 좋아하는 키워드: %s\n", joinOr(liked, notSet))
	disliked := preference.TagLabels(profile.DislikedTags)
	fmt.Fprintf(&b, "- 싫어하는 키워드: %s\n", joinOr(disliked, "없음"))

	vibe := notSet
	if profile.SelectedVibe != "" {
		vibe = vibeLabel(profile.SelectedVibe)
	}
	fmt.Fprintf(&b, "- 선호 분위기: %s\n", vibe)

	return b.String()
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

// conversation converts history and the new message into model turns
func conversation(system string, history []Message, message string) []generator.Message {
	messages := make([]generator.Message, 0, len(history)+2)
	messages = append(messages, generator.Message{Role: "system", Content: system})
	for _, m := range history {
		role := "assistant"
		if m.Role == RoleUser {
			role = "user"
		}
		messages = append(messages, generator.Message{Role: role, Content: m.Content})
	}
	return append(messages, generator.Message{Role: "user", Content: message})
}
