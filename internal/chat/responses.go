// internal/chat/responses.go
// Keyword intent detection and the canned replies used when no model is
// configured or the model call fails.

package chat

import "strings"

// keywordRules are checked in order; the first hit wins
var keywordRules = []struct {
	category Category
	keywords []string
}{
	{CategoryRecommend, []string{"추천", "코스"}},
	{CategoryAlternative, []string{"다른", "대안"}},
	{CategoryFood, []string{"맛집", "먹"}},
	{CategoryVibe, []string{"분위기", "감성"}},
}

// Classify maps a message to its intent category
func Classify(message string) Category {
	lower := strings.ToLower(message)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryDefault
}

var cannedResponses = map[Category][]string{
	CategoryRecommend: {
		"오늘 기분에 딱 맞는 코스를 찾았어! 성수동 감성 투어 어때요? 빈티지 카페에서 시작해서 서울숲 산책, 그리고 분위기 좋은 와인바로 마무리하는 코스에요 🌿",
		"혹시 오늘 날씨 좋은 거 알아요? 야외 활동 포함된 코스를 추천할게요. 한강 피크닉 → 망원시장 먹방 → 연남동 카페 루트가 딱이에요!",
	},
	CategoryAlternative: {
		"다른 코스도 있어요! 북촌 한옥마을 산책 → 삼청동 갤러리 → 이태원 루프탑 바 코스는 어떨까요? 감성 충전 보장이에요 ✨",
		"이번엔 좀 더 힙한 코스 어때요? 을지로 공장 카페 → 종로 빈티지 샵 → 익선동 한옥 와인바! 레트로 무드 가득한 하루가 될 거예요.",
	},
	CategoryFood: {
		"맛집이라면 제가 전문이죠! 지금 위치 기준으로 500m 내에 평점 4.5 이상 맛집이 3개나 있어요. 특히 수제 파스타집이 대기 없이 바로 갈 수 있어요 🍝",
	},
	CategoryVibe: {
		"분위기 좋은 곳이요? 지금 시간대면 노을 지는 한강뷰 카페를 추천해요. 창가 자리에서 보는 석양이 정말 예술이에요! 예약도 가능하니까 바로 잡아줄까요? 🌅",
	},
	CategoryDefault: {
		"좋은 질문이에요! 더 자세히 알려주면 딱 맞는 코스를 찾아줄게요. 오늘 어떤 분위기를 원하세요?",
		"오 재밌겠다! 혹시 특별히 가고 싶은 지역이 있어요? 아니면 제가 취향에 맞춰서 골라줄게요 😊",
		"알겠어요! 조금만 기다려주세요, 최적의 코스를 만들어볼게요... 🎯",
	},
}

const welcomeMessage = "안녕하세요! 저는 데이트메이트 AI예요 💕\n오늘 어떤 데이트를 계획하고 있나요? 제가 완벽한 코스를 만들어 드릴게요!"

var defaultQuickReplies = []QuickReply{
	{ID: "q1", Label: "코스 추천해줘", Action: CategoryRecommend},
	{ID: "q2", Label: "다른 장소 보여줘", Action: CategoryAlternative},
	{ID: "q3", Label: "근처 맛집 알려줘", Action: CategoryFood},
	{ID: "q4", Label: "분위기 좋은 곳", Action: CategoryVibe},
}

var funFactCard = TMICard{
	Type:    "fun_fact",
	Title:   "알고 계셨나요?",
	Content: "이 근처에는 1960년대 인쇄소를 개조한 카페가 있어요. 오래된 활판인쇄기가 인테리어로 남아있답니다!",
	Icon:    "💡",
}

// cannedResponse picks one reply for the category; pick returns an index in [0, n)
func cannedResponse(category Category, pick func(n int) int) string {
	responses, ok := cannedResponses[category]
	if !ok || len(responses) == 0 {
		responses = cannedResponses[CategoryDefault]
	}
	return responses[pick(len(responses))]
}

// QuickReplies returns a copy of the suggestion chips
func QuickReplies() []QuickReply {
	return append([]QuickReply(nil), defaultQuickReplies...)
}
