// internal/course/seed.go
// Sample Seoul courses loaded into an empty catalogue (SEED_SAMPLE_COURSES).

package course

import (
	"context"
	"fmt"
	"time"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

// SeedSampleCourses inserts the sample catalogue when no course exists yet.
// It returns how many courses were inserted.
func SeedSampleCourses(ctx context.Context, repo Repository) (int, error) {
	count, err := repo.CountCourses(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	base := time.Now().UTC()
	inserted := 0
	for i, c := range SampleCourses() {
		if err := ValidateCourse(c); err != nil {
			return inserted, fmt.Errorf("sample course %s: %w", c.ID, err)
		}
		// keep the listed order when sorting newest first
		c.CreatedAt = base.Add(-time.Duration(i) * time.Minute)
		if err := repo.CreateCourse(ctx, c); err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}

func walk(minutes int) *int {
	return &minutes
}

func mission(courseID string, order int, placeID, description string) *QuestMission {
	return &QuestMission{
		ID:          fmt.Sprintf("%s-m%d", courseID, order),
		PlaceID:     placeID,
		Description: description,
	}
}

// SampleCourses returns a fresh copy of the sample catalogue.
// Only the first stop of each course starts unlocked.
func SampleCourses() []*Course {
	return []*Course{
		{
			ID:            "seongsu-emotional",
			Title:         "성수동 감성 투어",
			BlindTitle:    "새로운 모험이 기다려요",
			BlindSubtitle: "감성이 이끄는 곳으로",
			Description:   "빈티지 카페에서 시작해 서울숲을 걷고 와인바에서 마무리하는 코스",
			Tags:          []string{"#빈티지", "#카페", "#자연", "#와인", "#사진맛집"},
			HeroImageURL:  "/images/courses/seongsu.jpg",
			TotalDuration: 240,
			TotalDistance: 2.1,
			Vibe:          preference.VibeEmotional,
			DateType:      preference.DateTypeCouple,
			Region:        "성동구",
			Stops: Stops{
				{
					Order: 1,
					Place: Place{
						ID: "p-seongsu-cafe", Name: "대림창고", Category: "카페", Rating: 4.5,
						Description: "공장을 개조한 갤러리형 카페", Address: "서울 성동구 성수이로 78",
						Latitude: 37.5418, Longitude: 127.0565, RecommendedMenus: []string{"플랫화이트"},
						EstimatedTime: 60, BlindHint: "붉은 벽돌 속 예술 공간", BlindTitle: "???",
					},
					QuestMission: mission("seongsu-emotional", 1, "p-seongsu-cafe", "벽돌 벽 앞에서 인증샷 남기기"),
					IsUnlocked:   true,
				},
				{
					Order: 2,
					Place: Place{
						ID: "p-seoul-forest", Name: "서울숲", Category: "공원", Rating: 4.7,
						Description: "도심 속 숲길 산책", Address: "서울 성동구 뚝섬로 273",
						Latitude: 37.5444, Longitude: 127.0374,
						EstimatedTime: 90, BlindHint: "초록빛 힐링 스팟", BlindTitle: "???",
					},
					WalkingMinutesFromPrev: walk(15),
					QuestMission:           mission("seongsu-emotional", 2, "p-seoul-forest", "사슴 우리 앞에서 함께 사진 찍기"),
				},
				{
					Order: 3,
					Place: Place{
						ID: "p-seongsu-wine", Name: "성수 와인바", Category: "바", Rating: 4.4,
						Description: "내추럴 와인과 LP 음악", Address: "서울 성동구 연무장길 41",
						Latitude: 37.5432, Longitude: 127.0553, RecommendedMenus: []string{"내추럴 와인", "치즈 플레이트"},
						EstimatedTime: 90, BlindHint: "한 잔에 담긴 로맨스", BlindTitle: "???",
					},
					WalkingMinutesFromPrev: walk(10),
					QuestMission:           mission("seongsu-emotional", 3, "p-seongsu-wine", "건배하는 순간 포착하기"),
				},
			},
		},
		{
			ID:            "hangang-chill",
			Title:         "한강 피크닉 & 망원 먹방",
			BlindTitle:    "새로운 모험이 기다려요",
			BlindSubtitle: "감성이 이끄는 곳으로",
			Description:   "한강 피크닉 후 망원시장 먹방, 연남동 카페로 이어지는 코스",
			Tags:          []string{"#피크닉", "#스트릿푸드", "#로컬맛집", "#카페", "#선셋"},
			HeroImageURL:  "/images/courses/hangang.jpg",
			TotalDuration: 270,
			TotalDistance: 3.4,
			Vibe:          preference.VibeChill,
			DateType:      preference.DateTypeFriends,
			Region:        "마포구",
			Stops: Stops{
				{
					Order: 1,
					Place: Place{
						ID: "p-mangwon-park", Name: "망원한강공원", Category: "공원", Rating: 4.6,
						Description: "돗자리 펴고 즐기는 강변 피크닉", Address: "서울 마포구 마포나루길 467",
						Latitude: 37.5553, Longitude: 126.8954,
						EstimatedTime: 90, BlindHint: "도시락 들고 강으로", BlindTitle: "???",
					},
					QuestMission: mission("hangang-chill", 1, "p-mangwon-park", "노을을 배경으로 단체 사진 찍기"),
					IsUnlocked:   true,
				},
				{
					Order: 2,
					Place: Place{
						ID: "p-mangwon-market", Name: "망원시장", Category: "시장", Rating: 4.5,
						Description: "고로케와 닭강정이 유명한 전통시장", Address: "서울 마포구 포은로8길 14",
						Latitude: 37.5560, Longitude: 126.9063, RecommendedMenus: []string{"고로케", "닭강정"},
						EstimatedTime: 60, BlindHint: "현지인만 아는 숨은 맛집", BlindTitle: "???",
					},
					WalkingMinutesFromPrev: walk(15),
					QuestMission:           mission("hangang-chill", 2, "p-mangwon-market", "시장 먹거리 세 가지 맛보기"),
				},
				{
					Order: 3,
					Place: Place{
						ID: "p-yeonnam-cafe", Name: "연남동 루프탑 카페", Category: "카페", Rating: 4.3,
						Description: "연트럴파크가 내려다보이는 카페", Address: "서울 마포구 동교로 262",
						Latitude: 37.5629, Longitude: 126.9245, RecommendedMenus: []string{"아인슈페너"},
						EstimatedTime: 60, BlindHint: "하늘 가까운 핫플", BlindTitle: "???",
					},
					WalkingMinutesFromPrev: walk(10),
					QuestMission:           mission("hangang-chill", 3, "p-yeonnam-cafe", "루프탑에서 하늘 사진 남기기"),
				},
			},
		},
		{
			ID:            "euljiro-hip",
			Title:         "을지로 레트로 나이트",
			BlindTitle:    "새로운 모험이 기다려요",
			BlindSubtitle: "감성이 이끄는 곳으로",
			Description:   "을지로 공장 카페에서 익선동 한옥 와인바까지 레트로 무드 가득한 밤",
			Tags:          []string{"#레트로", "#힙플레이스", "#한옥", "#LP바", "#밤문화"},
			HeroImageURL:  "/images/courses/euljiro.jpg",
			TotalDuration: 240,
			TotalDistance: 1.8,
			Vibe:          preference.VibeHip,
			DateType:      preference.DateTypeCouple,
			Region:        "중구",
			Stops: Stops{
				{
					Order: 1,
					Place: Place{
						ID: "p-euljiro-cafe", Name: "을지로 공장 카페", Category: "카페", Rating: 4.4,
						Description: "인쇄소 골목 속 숨은 카페", Address: "서울 중구 을지로 157",
						Latitude: 37.5662, Longitude: 126.9910, RecommendedMenus: []string{"비엔나 커피"},
						EstimatedTime: 60, BlindHint: "골목 끝 철문 너머", BlindTitle: "???",
					},
					QuestMission: mission("euljiro-hip", 1, "p-euljiro-cafe", "간판 없는 입구 찾아 인증하기"),
					IsUnlocked:   true,
				},
				{
					Order: 2,
					Place: Place{
						ID: "p-jongno-lp", Name: "종로 LP바", Category: "바", Rating: 4.6,
						Description: "신청곡을 틀어주는 LP바", Address: "서울 종로구 돈화문로 32",
						Latitude: 37.5710, Longitude: 126.9918,
						EstimatedTime: 90, BlindHint: "아날로그 감성 한 잔", BlindTitle: "???",
					},
					WalkingMinutesFromPrev: walk(10),
					QuestMission:           mission("euljiro-hip", 2, "p-jongno-lp", "신청곡 메모 사진 찍기"),
				},
				{
					Order: 3,
					Place: Place{
						ID: "p-ikseon-hanok", Name: "익선동 한옥 와인바", Category: "바", Rating: 4.5,
						Description: "한옥 마당에서 즐기는 와인", Address: "서울 종로구 수표로28길 17",
						Latitude: 37.5744, Longitude: 126.9898, RecommendedMenus: []string{"하우스 와인"},
						EstimatedTime: 90, BlindHint: "전통과 현대의 만남", BlindTitle: "???",
					},
					WalkingMinutesFromPrev: walk(10),
					QuestMission:           mission("euljiro-hip", 3, "p-ikseon-hanok", "한옥 처마 아래 투샷 남기기"),
				},
			},
		},
	}
}
