package model

import "time"

// Exercise is a library entry shown on the public exercise pages and
// managed from the admin panel.
type Exercise struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"size:255;not null;index"`
	Description     string     `json:"description" gorm:"type:text"`
	MuscleGroup     string     `json:"muscle_group" gorm:"size:100;index"`
	DifficultyLevel string     `json:"difficulty_level" gorm:"size:50;index"`
	Equipment       string     `json:"equipment" gorm:"size:255"`
	RecommendedSets int        `json:"recommended_sets"`
	RecommendedReps string     `json:"recommended_reps" gorm:"size:100"`
	Instructions    StringList `json:"instructions" gorm:"type:json"`
	ImageURL        string     `json:"image_url" gorm:"size:512"`
	VideoURL        string     `json:"video_url" gorm:"size:512"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ExerciseFilter narrows exercise listings.
type ExerciseFilter struct {
	Search      string
	MuscleGroup string
	Difficulty  string
	Limit       int
	Offset      int
}
