// internal/transit/transit.go
// Synthetic walk/bus/subway plan between two course stops.
// This is a presentation heuristic, not a routing engine: thresholds and
// multipliers are user-visible and must stay exactly as they are.

package transit

import (
	"errors"
	"fmt"
	"math"
)

// Mode is the way a single step is travelled
type Mode string

const (
	ModeWalk   Mode = "walk"
	ModeBus    Mode = "bus"
	ModeSubway Mode = "subway"
)

const (
	earthRadiusKm = 6371

	// Below this distance the whole leg is walked
	walkOnlyMaxKm = 0.8
	// Below this distance (and at least walkOnlyMaxKm) the leg goes by bus
	busMaxKm = 3.0

	walkKmPerMinute    = 0.08 // ~80m per minute
	busMinutesPerKm    = 3.0
	subwayMinutesPerKm = 2.5
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is a geographic coordinate in degrees
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Stop is anything place-like we can route to
type Stop struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// Point returns the stop's coordinate
func (s Stop) Point() Point {
	return Point{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Step is one segment of a leg
type Step struct {
	Mode            Mode   `json:"mode"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Detail          string `json:"detail,omitempty"`
}

// Leg is the transit between two consecutive stops
type Leg struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	DistanceKm   float64 `json:"distance_km"`
	Steps        []Step  `json:"steps"`
	TotalMinutes int     `json:"total_minutes"`
}

// ValidatePoint rejects coordinates the haversine formula cannot handle.
// Callers are expected to check before calling Steps.
func ValidatePoint(p Point) error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) ||
		math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return ErrInvalidCoordinate
	}
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Haversine returns the great-circle distance between two points in km
func Haversine(from, to Point) float64 {
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(from.Latitude*math.Pi/180)*math.Cos(to.Latitude*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Steps estimates how to get from one stop to the next
func Steps(from, to Stop) []Step {
	return StepsForDistance(Haversine(from.Point(), to.Point()), to.Name)
}

// StepsForDistance buckets a straight-line distance into a synthetic plan.
// The result is never empty.
func StepsForDistance(distanceKm float64, destination string) []Step {
	if distanceKm < walkOnlyMaxKm {
		return []Step{
			{
				Mode:            ModeWalk,
				Description:     fmt.Sprintf("%s까지 도보 이동", destination),
				DurationMinutes: roundInt(distanceKm / walkKmPerMinute),
				Detail:          fmt.Sprintf("약 %dm", roundInt(distanceKm*1000)),
			},
		}
	}

	if distanceKm < busMaxKm {
		return []Step{
			{Mode: ModeWalk, Description: "가까운 버스 정류장까지", DurationMinutes: 3, Detail: "약 200m"},
			{
				Mode:            ModeBus,
				Description:     fmt.Sprintf("%s 방면 버스", destination),
				DurationMinutes: roundInt(distanceKm * busMinutesPerKm),
				Detail:          fmt.Sprintf("약 %dm", roundInt(distanceKm*1000)),
			},
			{Mode: ModeWalk, Description: fmt.Sprintf("%s까지", destination), DurationMinutes: 2, Detail: "약 150m"},
		}
	}

	return []Step{
		{Mode: ModeWalk, Description: "가까운 지하철역까지", DurationMinutes: 5, Detail: "약 400m"},
		{
			Mode:            ModeSubway,
			Description:     fmt.Sprintf("%s 근처 역 하차", destination),
			DurationMinutes: roundInt(distanceKm * subwayMinutesPerKm),
			Detail:          fmt.Sprintf("약 %dkm", int(math.Ceil(distanceKm))),
		},
		{Mode: ModeWalk, Description: fmt.Sprintf("%s까지", destination), DurationMinutes: 4, Detail: "약 300m"},
	}
}

// TotalMinutes sums the durations of a leg's steps
func TotalMinutes(steps []Step) int {
	total := 0
	for _, step := range steps {
		total += step.DurationMinutes
	}
	return total
}

// Plan builds one leg per pair of consecutive stops
func Plan(stops []Stop) []Leg {
	if len(stops) < 2 {
		return []Leg{}
	}

	legs := make([]Leg, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		distance := Haversine(from.Point(), to.Point())
		steps := StepsForDistance(distance, to.Name)

		legs = append(legs, Leg{
			From:         from.Name,
			To:           to.Name,
			DistanceKm:   math.Round(distance*100) / 100,
			Steps:        steps,
			TotalMinutes: TotalMinutes(steps),
		})
	}
	return legs
}

// RouteDistance sums the legs of a route in km, rounded to one decimal.
// Legs touching a point without a latitude are skipped.
func RouteDistance(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		if prev.Latitude == 0 || curr.Latitude == 0 {
			continue
		}
		total += Haversine(prev, curr)
	}
	return math.Round(total*10) / 10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
