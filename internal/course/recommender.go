// internal/course/recommender.go
// Course scoring against a user's onboarding profile.
// Everything here is pure: no I/O, safe for concurrent use.

package course

import (
	"math"
	"sort"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

const (
	dateTypeMatchPoints   = 30
	vibeMatchPoints       = 25
	vibeCompatiblePoints  = 12
	likedTagPoints        = 7
	likedTagCap           = 20
	dislikedTagPenalty    = 5
	mbtiLetterPoints      = 5
	mbtiCap               = 15
	districtMatchPoints   = 10
	sameCityPoints        = 3
	maxScore              = dateTypeMatchPoints + vibeMatchPoints + likedTagCap + mbtiCap + districtMatchPoints
	maxDisplayedMatchRate = 99
)

// compatibleVibes lists the two near-miss vibes for each selected vibe.
// Not symmetric.
var compatibleVibes = map[preference.Vibe][]preference.Vibe{
	preference.VibeRomantic:  {preference.VibeEmotional, preference.VibeChill},
	preference.VibeHip:       {preference.VibeAdventure, preference.VibeFoodie},
	preference.VibeChill:     {preference.VibeRomantic, preference.VibeEmotional},
	preference.VibeAdventure: {preference.VibeHip, preference.VibeFoodie},
	preference.VibeEmotional: {preference.VibeRomantic, preference.VibeChill},
	preference.VibeFoodie:    {preference.VibeHip, preference.VibeAdventure},
}

// mbtiVibePrefs maps a single MBTI letter to the vibes it leans towards.
// J and P carry no preference.
var mbtiVibePrefs = map[byte][]preference.Vibe{
	'I': {preference.VibeChill, preference.VibeEmotional, preference.VibeRomantic},
	'E': {preference.VibeHip, preference.VibeAdventure, preference.VibeFoodie},
	'F': {preference.VibeRomantic, preference.VibeEmotional},
	'T': {preference.VibeHip, preference.VibeAdventure},
	'N': {preference.VibeEmotional, preference.VibeHip},
	'S': {preference.VibeFoodie, preference.VibeChill},
}

// ScoreCourse rates how well a course fits a profile. The result is in [0, 100].
// Unset profile fields contribute nothing.
func ScoreCourse(c *Course, profile preference.UserProfile) int {
	score := 0

	if profile.DateType != "" && c.DateType == profile.DateType {
		score += dateTypeMatchPoints
	}

	if profile.SelectedVibe != "" {
		if c.Vibe == profile.SelectedVibe {
			score += vibeMatchPoints
		} else if containsVibe(compatibleVibes[profile.SelectedVibe], c.Vibe) {
			score += vibeCompatiblePoints
		}
	}

	// Tags are compared by label. Disliked tags only count once the user
	// has liked something.
	if len(profile.LikedTags) > 0 {
		courseLabels := make([]string, len(c.Tags))
		for i, tag := range c.Tags {
			courseLabels[i] = preference.StripHash(tag)
		}

		liked := countOverlap(courseLabels, preference.TagLabels(profile.LikedTags))
		score += minInt(liked*likedTagPoints, likedTagCap)

		disliked := countOverlap(courseLabels, preference.TagLabels(profile.DislikedTags))
		score -= disliked * dislikedTagPenalty
	}

	if len(profile.MBTI) >= 3 {
		mbtiScore := 0
		for i := 0; i < 3; i++ {
			if containsVibe(mbtiVibePrefs[profile.MBTI[i]], c.Vibe) {
				mbtiScore += mbtiLetterPoints
			}
		}
		score += minInt(mbtiScore, mbtiCap)
	}

	if profile.Location != nil {
		if c.Region == profile.Location.District {
			score += districtMatchPoints
		} else if profile.Location.City == preference.SeoulCity {
			score += sameCityPoints
		}
	}

	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// RankCourses scores every course and orders them best first.
// Equal scores keep their input order. The input slice is not modified.
func RankCourses(courses []*Course, profile preference.UserProfile) []*ScoredCourse {
	ranked := make([]*ScoredCourse, len(courses))
	for i, c := range courses {
		score := ScoreCourse(c, profile)
		ranked[i] = &ScoredCourse{
			Course:       c,
			Score:        score,
			MatchPercent: matchPercent(score),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// GetRecommendedCourses returns the courses ordered by descending score
func GetRecommendedCourses(courses []*Course, profile preference.UserProfile) []*Course {
	ranked := RankCourses(courses, profile)
	out := make([]*Course, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.Course
	}
	return out
}

// GetMatchPercent is the score shown as a percentage. Never 100.
func GetMatchPercent(c *Course, profile preference.UserProfile) int {
	return matchPercent(ScoreCourse(c, profile))
}

func matchPercent(score int) int {
	percent := int(math.Round(float64(score) / maxScore * 100))
	return minInt(percent, maxDisplayedMatchRate)
}

func containsVibe(vibes []preference.Vibe, v preference.Vibe) bool {
	for _, vibe := range vibes {
		if vibe == v {
			return true
		}
	}
	return false
}

// countOverlap counts entries of labels that appear in wanted.
// Duplicates in labels count each time.
func countOverlap(labels, wanted []string) int {
	if len(wanted) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		set[w] = struct{}{}
	}

	count := 0
	for _, label := range labels {
		if _, ok := set[label]; ok {
			count++
		}
	}
	return count
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
