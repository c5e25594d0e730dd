package models

import "time"

// Assessment is a graded (or not yet graded) piece of coursework owned by
// exactly one student. A nil Score means "not yet recorded"; Weight is the
// fraction of the course grade this assessment carries.
type Assessment struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Name      string    `db:"name" json:"name"`
	Weight    *float64  `db:"weight" json:"weight"`
	Score     *float64  `db:"score" json:"score"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScoredAssessment is the projection the grade predictor reads: only rows
// whose score has been recorded. Weight may still be null.
type ScoredAssessment struct {
	Weight *float64 `db:"weight"`
	Score  float64  `db:"score"`
}
