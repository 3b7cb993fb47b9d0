package progress

import (
	"fmt"
	"math"
	"sort"

	"github.com/vytor/studyflash/internal/models"
)

const (
	TrendAccelerating     = "accelerating"
	TrendImproving        = "improving"
	TrendStable           = "stable"
	TrendDeclining        = "declining"
	TrendInsufficientData = "insufficient_data"

	velocityWindow  = 7
	projectionSteps = 30
	goalProgress    = 90
	maxTimeToGoal   = 365
)

type Velocity struct {
	Velocity          float64 `json:"velocity"`
	Trend             string  `json:"trend"`
	ProjectedProgress int     `json:"projected_progress"`
	TimeToGoal        *int    `json:"time_to_goal"`
	Confidence        int     `json:"confidence"`
}

// EstimateVelocity fits a least squares line through the most recent progress snapshots.
// The x axis is the snapshot's position in the window, not its date, so gaps between
// snapshots are not weighted.
func EstimateVelocity(history []models.ProgressSnapshot) (Velocity, error) {
	for i, p := range history {
		if p.Date.IsZero() {
			return Velocity{}, fmt.Errorf("%w: snapshot %d has no date", ErrInvalidShape, i)
		}
	}
	if len(history) < 2 {
		return Velocity{Trend: TrendInsufficientData}, nil
	}

	points := make([]models.ProgressSnapshot, len(history))
	copy(points, history)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	if len(points) > velocityWindow {
		points = points[len(points)-velocityWindow:]
	}

	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Progress
		sumXY += x * p.Progress
		sumXX += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	trend := TrendStable
	switch {
	case slope > 1:
		trend = TrendAccelerating
	case slope > 0.1:
		trend = TrendImproving
	case slope < -0.1:
		trend = TrendDeclining
	}

	projected := math.Min(100, math.Max(0, intercept+slope*(n+projectionSteps)))

	v := Velocity{
		Velocity:          roundTo(slope, 2),
		Trend:             trend,
		ProjectedProgress: roundInt(projected),
		Confidence:        confidence(points),
	}
	if slope > 0 {
		current := points[len(points)-1].Progress
		days := int(math.Ceil((goalProgress - current) / slope))
		if days > 0 && days < maxTimeToGoal {
			v.TimeToGoal = &days
		}
	}
	return v, nil
}

// confidence falls as the progress values spread out.
func confidence(points []models.ProgressSnapshot) int {
	var mean float64
	for _, p := range points {
		mean += p.Progress
	}
	mean /= float64(len(points))

	var variance float64
	for _, p := range points {
		d := p.Progress - mean
		variance += d * d
	}
	variance /= float64(len(points))

	return roundInt(math.Max(0, 100-variance))
}
