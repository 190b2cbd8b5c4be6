package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ajurnie/internal/config"
	"ajurnie/internal/db"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.AdminUser{},
		&model.Exercise{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	exerciseRepo := repository.NewExerciseRepository(gormDB)

	if err := seedAdmin(ctx, userRepo, adminRepo); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	created, skipped, err := seedExercises(ctx, gormDB, exerciseRepo)
	if err != nil {
		log.Fatalf("Failed to seed exercises: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Exercises created: %d", created)
	log.Printf("  - Exercises already present: %d", skipped)
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD, or promotes the account if it already exists.
func seedAdmin(ctx context.Context, userRepo repository.UserRepository, adminRepo repository.AdminRepository) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	user, err := userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user = &model.User{
			Email:          email,
			PasswordHash:   string(hash),
			EmailConfirmed: true,
		}
		if err := userRepo.CreateUser(ctx, user); err != nil {
			return err
		}

		profile := &model.UserProfile{
			UserID:             user.ID,
			Email:              email,
			FullName:           "Administrator",
			Role:               model.RoleAdmin,
			SubscriptionStatus: model.SubscriptionActive,
		}
		if err := userRepo.CreateProfile(ctx, profile); err != nil {
			return err
		}
		log.Printf("Created admin account %s", email)
	} else {
		log.Printf("Admin account %s already exists", email)
	}

	isAdmin, err := adminRepo.IsAdmin(ctx, user.ID)
	if err != nil {
		return err
	}
	if !isAdmin {
		if err := adminRepo.Create(ctx, &model.AdminUser{ID: user.ID, Role: model.RoleAdmin}); err != nil {
			return err
		}
		log.Printf("Granted admin access to user %d", user.ID)
	}

	return nil
}

// seedExercises loads the starter exercise library, skipping names that
// already exist so the script stays re-runnable.
func seedExercises(ctx context.Context, gormDB *gorm.DB, repo repository.ExerciseRepository) (created int, skipped int, err error) {
	for _, exercise := range starterExercises() {
		var count int64
		if err := gormDB.WithContext(ctx).Model(&model.Exercise{}).
			Where("name = ?", exercise.Name).Count(&count).Error; err != nil {
			return created, skipped, err
		}
		if count > 0 {
			skipped++
			continue
		}

		exercise := exercise
		if err := repo.Create(ctx, &exercise); err != nil {
			return created, skipped, err
		}
		created++
	}

	return created, skipped, nil
}

func starterExercises() []model.Exercise {
	return []model.Exercise{
		{
			Name:            "Barbell Back Squat",
			Description:     "Compound lower-body lift performed with a barbell across the upper back.",
			MuscleGroup:     "legs",
			DifficultyLevel: "intermediate",
			Equipment:       "barbell",
			RecommendedSets: 4,
			RecommendedReps: "6-8",
			Instructions: model.StringList{
				"Set the bar on your upper traps and brace your core.",
				"Squat until your thighs are at least parallel to the floor.",
				"Drive through your heels to return to standing.",
			},
		},
		{
			Name:            "Push-Up",
			Description:     "Bodyweight pressing movement for chest, shoulders, and triceps.",
			MuscleGroup:     "chest",
			DifficultyLevel: "beginner",
			Equipment:       "bodyweight",
			RecommendedSets: 3,
			RecommendedReps: "10-15",
			Instructions: model.StringList{
				"Start in a plank with hands under your shoulders.",
				"Lower your chest to just above the floor.",
				"Press back up keeping your body in a straight line.",
			},
		},
		{
			Name:            "Deadlift",
			Description:     "Full-body hinge lifting a loaded barbell from the floor.",
			MuscleGroup:     "back",
			DifficultyLevel: "advanced",
			Equipment:       "barbell",
			RecommendedSets: 3,
			RecommendedReps: "5",
			Instructions: model.StringList{
				"Stand with the bar over mid-foot and grip just outside your knees.",
				"Brace, then stand up by driving your hips forward.",
				"Lower the bar under control along your legs.",
			},
		},
		{
			Name:            "Plank",
			Description:     "Isometric core hold in a straight-arm or forearm position.",
			MuscleGroup:     "core",
			DifficultyLevel: "beginner",
			Equipment:       "bodyweight",
			RecommendedSets: 3,
			RecommendedReps: "30-60s",
			Instructions: model.StringList{
				"Rest on your forearms with elbows under shoulders.",
				"Hold your body in a straight line from head to heels.",
			},
		},
		{
			Name:            "Pull-Up",
			Description:     "Vertical pulling movement from a dead hang on a bar.",
			MuscleGroup:     "back",
			DifficultyLevel: "intermediate",
			Equipment:       "pull-up bar",
			RecommendedSets: 3,
			RecommendedReps: "6-10",
			Instructions: model.StringList{
				"Hang from the bar with an overhand grip.",
				"Pull until your chin clears the bar.",
				"Lower yourself fully between reps.",
			},
		},
		{
			Name:            "Dumbbell Shoulder Press",
			Description:     "Overhead press with dumbbells, seated or standing.",
			MuscleGroup:     "shoulders",
			DifficultyLevel: "beginner",
			Equipment:       "dumbbells",
			RecommendedSets: 3,
			RecommendedReps: "8-12",
			Instructions: model.StringList{
				"Hold the dumbbells at shoulder height, palms forward.",
				"Press overhead until your arms are fully extended.",
				"Lower back to the start under control.",
			},
		},
	}
}
