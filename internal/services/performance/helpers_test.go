package performance

import (
	"math"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func flatCurve(n int, value float64) []models.GrowthPoint {
	pts := make([]models.GrowthPoint, n)
	for i := range pts {
		pts[i] = models.GrowthPoint{Date: day(2020, 1, 1).AddDate(0, i, 0), Value: value}
	}
	return pts
}

func curveOf(values ...float64) []models.GrowthPoint {
	pts := make([]models.GrowthPoint, len(values))
	for i, v := range values {
		pts[i] = models.GrowthPoint{Date: day(2020, 1, 1).AddDate(0, i, 0), Value: v}
	}
	return pts
}
