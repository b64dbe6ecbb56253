package transit

import (
	"math"
	"testing"
)

func modes(steps []Step) []Mode {
	out := make([]Mode, len(steps))
	for i, s := range steps {
		out[i] = s.Mode
	}
	return out
}

func durations(steps []Step) []int {
	out := make([]int, len(steps))
	for i, s := range steps {
		out[i] = s.DurationMinutes
	}
	return out
}

func equalModes(a, b []Mode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStepsForDistanceBuckets(t *testing.T) {
	testCases := []struct {
		name      string
		distance  float64
		modes     []Mode
		durations []int
	}{
		{"short walk", 0.5, []Mode{ModeWalk}, []int{6}},
		{"zero distance", 0, []Mode{ModeWalk}, []int{0}},
		{"just under walk limit", 0.79, []Mode{ModeWalk}, []int{10}},
		{"walk limit goes to bus", 0.8, []Mode{ModeWalk, ModeBus, ModeWalk}, []int{3, 2, 2}},
		{"mid bus", 2.0, []Mode{ModeWalk, ModeBus, ModeWalk}, []int{3, 6, 2}},
		{"bus limit goes to subway", 3.0, []Mode{ModeWalk, ModeSubway, ModeWalk}, []int{5, 8, 4}},
		{"long subway", 5.0, []Mode{ModeWalk, ModeSubway, ModeWalk}, []int{5, 13, 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			steps := StepsForDistance(tc.distance, "성수 카페")

			if got := modes(steps); !equalModes(got, tc.modes) {
				t.Errorf("Expected modes %v, got %v", tc.modes, got)
			}
			if got := durations(steps); !equalInts(got, tc.durations) {
				t.Errorf("Expected durations %v, got %v", tc.durations, got)
			}
		})
	}
}

func TestStepsForDistanceDetails(t *testing.T) {
	walk := StepsForDistance(0.5, "서울숲")
	if walk[0].Detail != "약 500m" {
		t.Errorf("Expected walk detail 약 500m, got %q", walk[0].Detail)
	}
	if walk[0].Description != "서울숲까지 도보 이동" {
		t.Errorf("Unexpected walk description %q", walk[0].Description)
	}

	bus := StepsForDistance(2.0, "서울숲")
	if bus[1].Detail != "약 2000m" {
		t.Errorf("Expected bus detail 약 2000m, got %q", bus[1].Detail)
	}
	if bus[1].Description != "서울숲 방면 버스" {
		t.Errorf("Unexpected bus description %q", bus[1].Description)
	}

	subway := StepsForDistance(4.2, "서울숲")
	if subway[1].Detail != "약 5km" {
		t.Errorf("Expected subway detail 약 5km, got %q", subway[1].Detail)
	}
}

func TestTotalMinutes(t *testing.T) {
	if got := TotalMinutes(StepsForDistance(5.0, "x")); got != 22 {
		t.Errorf("Expected 22 minutes, got %d", got)
	}
	if got := TotalMinutes(nil); got != 0 {
		t.Errorf("Expected 0 minutes for no steps, got %d", got)
	}
}

func TestHaversine(t *testing.T) {
	cityHall := Point{Latitude: 37.5665, Longitude: 126.9780}
	gangnam := Point{Latitude: 37.4979, Longitude: 127.0276}

	if d := Haversine(cityHall, cityHall); d != 0 {
		t.Errorf("Expected 0 distance to self, got %f", d)
	}

	if Haversine(cityHall, gangnam) != Haversine(gangnam, cityHall) {
		t.Error("Expected haversine distance to be symmetric")
	}

	// one degree of latitude along a meridian
	oneDegree := Haversine(Point{Latitude: 0, Longitude: 0}, Point{Latitude: 1, Longitude: 0})
	want := earthRadiusKm * math.Pi / 180
	if math.Abs(oneDegree-want) > 1e-9 {
		t.Errorf("Expected %.9f km, got %.9f km", want, oneDegree)
	}
}

func TestStepsUsesCoordinates(t *testing.T) {
	from := Stop{Name: "A", Latitude: 37.5665, Longitude: 126.9780}
	to := Stop{Name: "B", Latitude: 37.5665, Longitude: 126.9780}

	steps := Steps(from, to)
	if len(steps) != 1 || steps[0].Mode != ModeWalk || steps[0].DurationMinutes != 0 {
		t.Errorf("Expected a single zero-minute walk, got %+v", steps)
	}
}

func TestPlan(t *testing.T) {
	stops := []Stop{
		{Name: "어니언 성수", Latitude: 37.5447, Longitude: 127.0565},
		{Name: "서울숲", Latitude: 37.5444, Longitude: 127.0374},
		{Name: "북촌 한옥마을", Latitude: 37.5826, Longitude: 126.9831},
	}

	legs := Plan(stops)
	if len(legs) != 2 {
		t.Fatalf("Expected 2 legs, got %d", len(legs))
	}
	if legs[0].From != "어니언 성수" || legs[0].To != "서울숲" {
		t.Errorf("Unexpected first leg %s -> %s", legs[0].From, legs[0].To)
	}
	for _, leg := range legs {
		if leg.TotalMinutes != TotalMinutes(leg.Steps) {
			t.Errorf("Leg total %d does not match steps", leg.TotalMinutes)
		}
	}
	if legs[1].Steps[1].Mode != ModeSubway {
		t.Errorf("Expected the long leg to use the subway, got %v", modes(legs[1].Steps))
	}

	if got := Plan(stops[:1]); len(got) != 0 {
		t.Errorf("Expected no legs for a single stop, got %d", len(got))
	}
}

func TestRouteDistance(t *testing.T) {
	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 37.5447, Longitude: 127.0565},
		{Latitude: 37.5444, Longitude: 127.0374},
	}

	got := RouteDistance(points)
	want := math.Round(Haversine(points[1], points[2])*10) / 10
	if got != want {
		t.Errorf("Expected %.1f km (first leg skipped), got %.1f km", want, got)
	}

	if RouteDistance(points[:1]) != 0 {
		t.Error("Expected 0 for a single point")
	}
}

func TestValidatePoint(t *testing.T) {
	testCases := []struct {
		name  string
		point Point
		valid bool
	}{
		{"seoul", Point{Latitude: 37.5665, Longitude: 126.9780}, true},
		{"nan latitude", Point{Latitude: math.NaN(), Longitude: 126.9}, false},
		{"infinite longitude", Point{Latitude: 37.5, Longitude: math.Inf(1)}, false},
		{"latitude out of range", Point{Latitude: 91, Longitude: 0}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePoint(tc.point)
			if tc.valid && err != nil {
				t.Errorf("Expected valid point, got %v", err)
			}
			if !tc.valid && err != ErrInvalidCoordinate {
				t.Errorf("Expected ErrInvalidCoordinate, got %v", err)
			}
		})
	}
}
