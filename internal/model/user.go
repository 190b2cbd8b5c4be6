package model

import "time"

// Role values assignable to a user profile.
const (
	RoleNovice  = "novice"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// Subscription status values tracked on a user profile.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionNone     = "none"
)

// User is the credential record. Profile data lives on UserProfile.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	EmailConfirmed bool      `json:"email_confirmed" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// UserProfile carries the member-facing account state for a user.
type UserProfile struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	UserID                uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Email                 string     `json:"email" gorm:"size:255;not null"`
	FullName              string     `json:"full_name" gorm:"size:255"`
	Role                  string     `json:"role" gorm:"size:50;default:'novice';index"`
	SubscriptionStatus    string     `json:"subscription_status" gorm:"size:50;default:'trial';index"`
	SubscriptionPlan      string     `json:"subscription_plan" gorm:"size:100"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"`
	IsFoundingMember      bool       `json:"is_founding_member" gorm:"default:false"`
	Bio                   string     `json:"bio" gorm:"type:text"`
	Specializations       StringList `json:"specializations" gorm:"type:json"`
	ProfileImageURL       string     `json:"profile_image_url" gorm:"size:512"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// AdminUser marks a user id as having admin access. Membership in this
// table is the authorization source of truth; the is_admin token claim
// is display-only.
type AdminUser struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Role      string    `json:"role" gorm:"size:50;default:'admin'"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the original schema name.
func (AdminUser) TableName() string { return "admin_users" }

// UserSnapshot is the current-session view returned by the me endpoint
// and embedded in auth responses. Always built from a fresh query, never
// from token claims.
type UserSnapshot struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"fullname"`
	Role               string `json:"role"`
	IsAdmin            bool   `json:"isAdmin"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	SubscriptionPlan   string `json:"subscriptionPlan,omitempty"`
	IsFoundingMember   bool   `json:"isFoundingMember"`
}
