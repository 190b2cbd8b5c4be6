// Package access decides whether a user's role and subscription state
// grant a named feature. It is a pure lookup over an already-fetched
// user snapshot; callers re-evaluate whenever the snapshot changes.
package access

// User is the minimal view the gate needs.
type User struct {
	Role               string
	SubscriptionStatus string
	IsAdmin            bool
}

// Feature names gated by role and subscription.
const (
	FeaturePersonalizedPlans  = "personalized_plans"
	FeatureCalendarTracker    = "calendar_tracker"
	FeatureProgressTracker    = "progress_tracker"
	FeatureWorkoutSearch      = "workout_search"
	FeatureViewTrainerContent = "view_trainer_content"
	FeatureOnlineStore        = "online_store"
	FeatureGroceryList        = "grocery_list"
	FeatureUploadClasses      = "upload_classes"
	FeatureManageSessions     = "manage_sessions"
	FeatureViewEarnings       = "view_earnings"
	FeatureAffiliateLinks     = "affiliate_links"
	FeatureTrainerDashboard   = "trainer_dashboard"
)

var noviceFeatures = map[string]bool{
	FeaturePersonalizedPlans:  true,
	FeatureCalendarTracker:    true,
	FeatureProgressTracker:    true,
	FeatureWorkoutSearch:      true,
	FeatureViewTrainerContent: true,
	FeatureOnlineStore:        true,
	FeatureGroceryList:        true,
}

// trainerFeatures is a strict superset of noviceFeatures.
var trainerFeatures = func() map[string]bool {
	m := map[string]bool{
		FeatureUploadClasses:    true,
		FeatureManageSessions:   true,
		FeatureViewEarnings:     true,
		FeatureAffiliateLinks:   true,
		FeatureTrainerDashboard: true,
	}
	for f := range noviceFeatures {
		m[f] = true
	}
	return m
}()

// CanAccess reports whether the user may use the feature. Admins bypass
// the check; everyone else needs an active or trial subscription plus
// the feature in their role's set.
func CanAccess(u User, feature string) bool {
	if u.IsAdmin || u.Role == "admin" {
		return true
	}

	if u.SubscriptionStatus != "active" && u.SubscriptionStatus != "trial" {
		return false
	}

	if u.Role == "trainer" {
		return trainerFeatures[feature]
	}
	return noviceFeatures[feature]
}
