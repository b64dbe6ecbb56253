// internal/preference/catalog.go
// Static catalogues shown during onboarding

package preference

import "strings"

// TagCategory groups preference tags on the onboarding screen
type TagCategory string

const (
	TagCategoryVibe     TagCategory = "vibe"
	TagCategoryPlace    TagCategory = "place"
	TagCategoryFood     TagCategory = "food"
	TagCategoryActivity TagCategory = "activity"
	TagCategoryStyle    TagCategory = "style"
	TagCategoryTime     TagCategory = "time"
)

type Tag struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Category    TagCategory `json:"category"`
	Emoji       string      `json:"emoji"`
}

type VibeOption struct {
	ID          Vibe   `json:"id"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

type MBTIOption struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type BalanceOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type BalanceQuestion struct {
	ID      string        `json:"id"`
	OptionA BalanceOption `json:"option_a"`
	OptionB BalanceOption `json:"option_b"`
}

// Tags is the fixed tag catalogue
var Tags = []Tag{
	{ID: "t1", Label: "#모노톤", Description: "차분하고 세련된 분위기", Category: TagCategoryVibe, Emoji: "🖤"},
	{ID: "t2", Label: "#빈티지", Description: "레트로 감성이 물씬", Category: TagCategoryVibe, Emoji: "📻"},
	{ID: "t3", Label: "#자연", Description: "초록빛 힐링 스팟", Category: TagCategoryVibe, Emoji: "🌿"},
	{ID: "t4", Label: "#야경", Description: "반짝이는 밤의 낭만", Category: TagCategoryVibe, Emoji: "🌃"},
	{ID: "t5", Label: "#레트로", Description: "과거로 떠나는 타임슬립", Category: TagCategoryVibe, Emoji: "🎞️"},
	{ID: "t6", Label: "#미니멀", Description: "군더더기 없는 깔끔함", Category: TagCategoryVibe, Emoji: "◻️"},

	{ID: "t7", Label: "#LP바", Description: "아날로그 감성 한 잔", Category: TagCategoryPlace, Emoji: "🎵"},
	{ID: "t8", Label: "#루프탑", Description: "하늘 가까운 핫플", Category: TagCategoryPlace, Emoji: "🏙️"},
	{ID: "t9", Label: "#한옥", Description: "전통과 현대의 만남", Category: TagCategoryPlace, Emoji: "🏛️"},
	{ID: "t10", Label: "#카페", Description: "커피 한 잔의 여유", Category: TagCategoryPlace, Emoji: "☕"},
	{ID: "t11", Label: "#북카페", Description: "책과 커피의 조합", Category: TagCategoryPlace, Emoji: "📚"},
	{ID: "t12", Label: "#갤러리", Description: "예술 작품 속 데이트", Category: TagCategoryPlace, Emoji: "🖼️"},

	{ID: "t13", Label: "#오마카세", Description: "셰프가 이끄는 미식", Category: TagCategoryFood, Emoji: "🍣"},
	{ID: "t14", Label: "#와인", Description: "한 잔에 담긴 로맨스", Category: TagCategoryFood, Emoji: "🍷"},
	{ID: "t15", Label: "#브런치", Description: "여유로운 아침 식사", Category: TagCategoryFood, Emoji: "🥞"},
	{ID: "t16", Label: "#스트릿푸드", Description: "길거리 먹방 투어", Category: TagCategoryFood, Emoji: "🌮"},
	{ID: "t17", Label: "#파인다이닝", Description: "특별한 날의 코스 요리", Category: TagCategoryFood, Emoji: "🍽️"},
	{ID: "t18", Label: "#이자카야", Description: "일본식 감성 술집", Category: TagCategoryFood, Emoji: "🏮"},

	{ID: "t19", Label: "#전시", Description: "문화 예술 나들이", Category: TagCategoryActivity, Emoji: "🎨"},
	{ID: "t20", Label: "#피크닉", Description: "도시락 들고 공원으로", Category: TagCategoryActivity, Emoji: "🧺"},
	{ID: "t21", Label: "#영화", Description: "팝콘과 함께하는 시간", Category: TagCategoryActivity, Emoji: "🎬"},
	{ID: "t22", Label: "#공방체험", Description: "함께 만드는 추억", Category: TagCategoryActivity, Emoji: "🎭"},

	{ID: "t23", Label: "#사진맛집", Description: "인스타 감성 폭발", Category: TagCategoryStyle, Emoji: "📸"},
	{ID: "t24", Label: "#힙플레이스", Description: "트렌드 세터의 선택", Category: TagCategoryStyle, Emoji: "🔥"},
	{ID: "t25", Label: "#로컬맛집", Description: "현지인만 아는 숨은 맛집", Category: TagCategoryStyle, Emoji: "📍"},

	{ID: "t26", Label: "#선셋", Description: "노을 속 황금빛 데이트", Category: TagCategoryTime, Emoji: "🌅"},
	{ID: "t27", Label: "#낮산책", Description: "햇살 아래 여유 산책", Category: TagCategoryTime, Emoji: "☀️"},
	{ID: "t28", Label: "#밤문화", Description: "밤이 더 빛나는 도시", Category: TagCategoryTime, Emoji: "🌙"},
}

var VibeOptions = []VibeOption{
	{ID: VibeRomantic, Label: "로맨틱", Emoji: "💕", Description: "설렘 가득한 하루"},
	{ID: VibeHip, Label: "힙한", Emoji: "🔥", Description: "트렌디한 핫플 투어"},
	{ID: VibeChill, Label: "여유로운", Emoji: "🌿", Description: "느긋한 힐링 코스"},
	{ID: VibeAdventure, Label: "모험적인", Emoji: "🗺️", Description: "새로운 발견의 연속"},
	{ID: VibeEmotional, Label: "감성적인", Emoji: "🎨", Description: "감성 충전 코스"},
	{ID: VibeFoodie, Label: "맛집 투어", Emoji: "🍽️", Description: "미식가의 하루"},
}

var MBTIOptions = []MBTIOption{
	{Type: "ISTJ", Label: "현실주의자", Description: "책임감 있고 신중한", Emoji: "📋"},
	{Type: "ISFJ", Label: "수호자", Description: "따뜻하고 헌신적인", Emoji: "🛡️"},
	{Type: "INFJ", Label: "옹호자", Description: "통찰력 있는 이상주의자", Emoji: "🔮"},
	{Type: "INTJ", Label: "전략가", Description: "독립적인 전략적 사고가", Emoji: "♟️"},
	{Type: "ISTP", Label: "장인", Description: "대담하고 실용적인", Emoji: "🔧"},
	{Type: "ISFP", Label: "모험가", Description: "유연하고 매력적인", Emoji: "🎨"},
	{Type: "INFP", Label: "중재자", Description: "이상주의적 감성파", Emoji: "🌙"},
	{Type: "INTP", Label: "논리술사", Description: "혁신적인 발명가", Emoji: "💡"},
	{Type: "ESTP", Label: "사업가", Description: "에너지 넘치는 모험가", Emoji: "⚡"},
	{Type: "ESFP", Label: "연예인", Description: "자유로운 영혼의 엔터테이너", Emoji: "🎭"},
	{Type: "ENFP", Label: "활동가", Description: "열정적인 자유영혼", Emoji: "🦋"},
	{Type: "ENTP", Label: "변론가", Description: "대담한 발명가", Emoji: "🚀"},
	{Type: "ESTJ", Label: "경영자", Description: "체계적이고 결단력 있는", Emoji: "📊"},
	{Type: "ESFJ", Label: "집정관", Description: "사교적이고 배려 깊은", Emoji: "🤝"},
	{Type: "ENFJ", Label: "선도자", Description: "카리스마 넘치는 리더", Emoji: "✨"},
	{Type: "ENTJ", Label: "통솔자", Description: "대담하고 상상력 풍부한", Emoji: "👑"},
}

var BalanceQuestions = []BalanceQuestion{
	{
		ID:      "bq1",
		OptionA: BalanceOption{ID: "bq1a", Label: "조용한 골목 카페", Emoji: "☕"},
		OptionB: BalanceOption{ID: "bq1b", Label: "활기찬 루프탑 바", Emoji: "🍸"},
	},
	{
		ID:      "bq2",
		OptionA: BalanceOption{ID: "bq2a", Label: "노을 지는 한강", Emoji: "🌅"},
		OptionB: BalanceOption{ID: "bq2b", Label: "반짝이는 도시 야경", Emoji: "🌃"},
	},
	{
		ID:      "bq3",
		OptionA: BalanceOption{ID: "bq3a", Label: "분위기 있는 파인다이닝", Emoji: "🍽️"},
		OptionB: BalanceOption{ID: "bq3b", Label: "정겨운 포장마차", Emoji: "🏮"},
	},
}

// Catalog bundles everything the onboarding screens need
type Catalog struct {
	Tags             []Tag             `json:"tags"`
	Vibes            []VibeOption      `json:"vibes"`
	MBTI             []MBTIOption      `json:"mbti"`
	BalanceQuestions []BalanceQuestion `json:"balance_questions"`
	DateTypes        []DateType        `json:"date_types"`
}

// GetCatalog returns the static catalogues
func GetCatalog() *Catalog {
	return &Catalog{
		Tags:             Tags,
		Vibes:            VibeOptions,
		MBTI:             MBTIOptions,
		BalanceQuestions: BalanceQuestions,
		DateTypes:        AllDateTypes,
	}
}

// FindTag looks a tag up by identifier
func FindTag(id string) (Tag, bool) {
	for _, tag := range Tags {
		if tag.ID == id {
			return tag, true
		}
	}
	return Tag{}, false
}

// TagLabels resolves tag identifiers to their labels without the leading '#'.
// Unknown identifiers are dropped.
func TagLabels(ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag, ok := FindTag(id); ok {
			labels = append(labels, StripHash(tag.Label))
		}
	}
	return labels
}

// StripHash removes the first '#' of a tag label
func StripHash(label string) string {
	return strings.Replace(label, "#", "", 1)
}

// IsValidBalanceAnswer checks that the option belongs to the question
func IsValidBalanceAnswer(questionID, optionID string) bool {
	for _, q := range BalanceQuestions {
		if q.ID == questionID {
			return q.OptionA.ID == optionID || q.OptionB.ID == optionID
		}
	}
	return false
}
