package models

// CoursePrediction is one row of the grade prediction report. CurrentGrade is
// nil when the course has no scored assessments yet. Remaining is 1 minus the
// recorded weight and may be negative when weights sum past 1.
type CoursePrediction struct {
	Course       string   `json:"course"`
	CurrentGrade *float64 `json:"current_grade"`
	TotalWeight  float64  `json:"total_weight"`
	Remaining    float64  `json:"remaining"`
}
