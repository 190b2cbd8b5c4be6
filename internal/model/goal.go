package model

import "time"

// Goal is a submitted goal-intake form. UserID is nil when the form was
// filled in by a visitor without an account.
type Goal struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	UserID             *uint      `json:"user_id" gorm:"index"`
	Name               string     `json:"name" gorm:"size:255;not null"`
	Email              string     `json:"email" gorm:"size:255;not null"`
	Gender             string     `json:"gender" gorm:"size:20"`
	Age                int        `json:"age"`
	Height             float64    `json:"height"`
	CurrentWeight      float64    `json:"current_weight"`
	FitnessGoal        string     `json:"fitness_goal" gorm:"size:100"`
	TargetWeight       *float64   `json:"target_weight"`
	Deadline           *time.Time `json:"deadline"`
	ActivityLevel      string     `json:"activity_level" gorm:"size:100"`
	WorkoutStyle       string     `json:"workout_style" gorm:"size:100"`
	MedicalConditions  string     `json:"medical_conditions" gorm:"type:text"`
	DietaryPreferences StringList `json:"dietary_preferences" gorm:"type:json"`
	FoodAllergies      string     `json:"food_allergies" gorm:"type:text"`
	PlanGenerated      bool       `json:"plan_generated" gorm:"default:false;index"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName keeps the original schema name.
func (Goal) TableName() string { return "user_goals" }
