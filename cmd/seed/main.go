package main

import (
	"fmt"
	"os"
	"time"

	"messaging-service/internal/config"
	"messaging-service/internal/database"
	"messaging-service/internal/models"
	"messaging-service/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed ids so repeated runs converge on the same rows.
var (
	demoGroupID = "6f1c2a8e-0b7d-4c55-9a3e-2d4f1b7c9e10"
	demoUsers   = []models.UserProfile{
		{UserID: "5b0c9f54-3f7a-4bb1-9a7e-0d2f3c1f1b2a", FirstName: "Alice", LastName: "Nguyen"},
		{UserID: "a3d1e0c2-7b44-4b0e-8f5e-6c2b9d1e4f70", FirstName: "Bob", LastName: "Tran"},
		{UserID: "c7e9b3a1-52d6-4f08-b1c4-8a0e6d2f5b39", FirstName: "Carol", LastName: "Le"},
	}
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, ServiceName: "messaging-seed"})
	log := logger.L()

	log.Info().Msg("starting database seeding")

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err := seed(db); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	// Print a token per user so the API can be tried right away.
	for _, u := range demoUsers {
		token, err := devToken(cfg.JWT.Secret, u.UserID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to sign token")
		}
		log.Info().
			Str(logger.FieldUserID, u.UserID).
			Str("name", u.FirstName).
			Str("token", token).
			Msg("seeded user")
	}

	log.Info().Str("group_id", demoGroupID).Msg("database seeding completed")
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range demoUsers {
			profile := demoUsers[i]
			profile.ID = uuid.NewString()
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
				return fmt.Errorf("create profile %s: %w", profile.UserID, err)
			}

			member := models.GroupMember{GroupID: demoGroupID, UserID: profile.UserID, Status: true}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
				return fmt.Errorf("create membership %s: %w", profile.UserID, err)
			}
		}
		return nil
	})
}

func devToken(secret, userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
