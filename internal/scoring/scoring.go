package scoring

import "github.com/bekzat/lingotrack/internal/models"

// Summary is the attempt aggregate recomputed from its detail rows. It is a
// pure function of the detail snapshot, never tracked incrementally, so the
// stored aggregate can always be rebuilt after any detail write.
type Summary struct {
	TotalScore     int
	CorrectCount   int
	IncorrectCount int
	SkipCount      int
	AccuracyPct    float64
}

// Aggregate recomputes an attempt's aggregate from all of its details.
// Exercises with no submitted detail are not counted as skipped; SkipCount
// stays 0.
func Aggregate(details []models.AttemptDetail) Summary {
	var sum Summary
	for _, d := range details {
		sum.TotalScore += d.Points
		if d.IsCorrect {
			sum.CorrectCount++
		} else {
			sum.IncorrectCount++
		}
	}
	if len(details) > 0 {
		sum.AccuracyPct = float64(sum.CorrectCount) / float64(len(details)) * 100
	}
	return sum
}

// AwardedPoints applies the points rule for one submission: a correct answer
// earns the caller's override when given, otherwise the exercise's point
// value; a wrong answer earns nothing.
func AwardedPoints(isCorrect bool, override *int, exercisePoints int) int {
	if !isCorrect {
		return 0
	}
	if override != nil {
		return *override
	}
	return exercisePoints
}
