package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/server"
	"sukamaju.desa.id/portal/pkg/database"
	"sukamaju.desa.id/portal/pkg/validator"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := seedLetterTypes(db); err != nil {
		log.Fatalf("failed to seed letter types: %v", err)
	}

	if os.Getenv("APP_ENV") == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	validator.RegisterCustomValidators()

	redisClient := connectRedis()

	srv := server.NewServer(db, redisClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := srv.Run(":" + port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// connectRedis returns nil when redis is unreachable. The app degrades to
// uncached reads and no live notifications instead of refusing to start.
func connectRedis() *redis.Client {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, running without redis: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, running without redis: %v", err)
		return nil
	}

	return client
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.LetterType{},
		&entity.LetterRequest{},
		&entity.News{},
		&entity.GalleryItem{},
		&entity.Official{},
		&entity.Upload{},
		&entity.Notification{},
	)
}

func seedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: "admin", Description: "Administrator desa"},
		{Name: "warga", Description: "Warga desa"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// seedLetterTypes inserts the standard catalog on first boot. Existing
// codes are left alone so admin edits survive restarts.
func seedLetterTypes(db *gorm.DB) error {
	defaults := []entity.LetterType{
		{Code: "SKD", Name: "Surat Keterangan Domisili", FormTemplate: entity.FormTemplateDomicile, Active: true, DisplayOrder: 1},
		{Code: "SKU", Name: "Surat Keterangan Usaha", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 2},
		{Code: "SKTM", Name: "Surat Keterangan Tidak Mampu", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 3},
		{Code: "SKCK", Name: "Surat Pengantar SKCK", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 4},
		{Code: "SKKL", Name: "Surat Keterangan Kelahiran", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 5},
		{Code: "SKKM", Name: "Surat Keterangan Kematian", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 6},
		{Code: "SKPD", Name: "Surat Keterangan Pindah Domisili", FormTemplate: entity.FormTemplateMove, Active: true, DisplayOrder: 7},
		{Code: "SKBM", Name: "Surat Keterangan Belum Menikah", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 8},
		{Code: "SKP", Name: "Surat Keterangan Penghasilan", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 9},
		{Code: "SKBN", Name: "Surat Keterangan Beda Nama", FormTemplate: entity.FormTemplateGeneral, Active: true, DisplayOrder: 10},
	}

	for _, lt := range defaults {
		var count int64
		if err := db.Model(&entity.LetterType{}).
			Where("code = ?", lt.Code).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&lt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	username := "admin"
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	hash := string(hashedPasswordBytes)
	adminUser := entity.User{
		Username:       &username,
		FullName:       "Administrator Desa",
		PasswordHash:   &hash,
		RoleID:         &adminRole.ID,
		HasSetPassword: true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	return nil
}
