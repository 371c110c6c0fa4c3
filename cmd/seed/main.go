package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strings"

	"ofiz/internal/database"
	"ofiz/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

var plans = []domain.Plan{
	{
		ID:                domain.PlanMasterFree,
		Audience:          domain.PlanForMaster,
		Name:              "Gratis",
		Price:             0,
		ApplicationsLimit: 5,
		ContactsLimit:     3,
		IsActive:          true,
	},
	{
		ID:                domain.PlanMasterPro,
		Audience:          domain.PlanForMaster,
		Name:              "Pro",
		Price:             990,
		ApplicationsLimit: 50,
		ContactsLimit:     30,
		IsActive:          true,
	},
	{
		ID:                domain.PlanMasterPremium,
		Audience:          domain.PlanForMaster,
		Name:              "Premium",
		Price:             1990,
		ApplicationsLimit: -1,
		ContactsLimit:     -1,
		IsFeatured:        true,
		IsActive:          true,
	},
	{
		ID:                domain.PlanBusinessStandard,
		Audience:          domain.PlanForBusiness,
		Name:              "Empresa",
		Price:             2990,
		ApplicationsLimit: -1,
		ContactsLimit:     50,
		CanPostAds:        true,
		IsActive:          true,
	},
	{
		ID:                domain.PlanBusinessPremium,
		Audience:          domain.PlanForBusiness,
		Name:              "Empresa Premium",
		Price:             4990,
		ApplicationsLimit: -1,
		ContactsLimit:     -1,
		IsFeatured:        true,
		CanPostAds:        true,
		IsActive:          true,
	},
}

func main() {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		dsn = "ofiz.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	log.Println("Seeding subscription plans...")
	for _, p := range plans {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&p).Error; err != nil {
			log.Fatal("plan seed failed: ", err)
		}
	}

	adminEmail := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	if adminEmail == "" {
		adminEmail = "admin@ofiz.uy"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
		log.Println("ADMIN_PASSWORD not set, using the default dev password")
	}

	var count int64
	db.Model(&domain.User{}).Where("email = ?", adminEmail).Count(&count)
	if count == 0 {
		log.Println("Creating admin user...")
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		admin := domain.User{
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			Name:         "Administrador",
			ReferralCode: newReferralCode(),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatal("admin seed failed: ", err)
		}
	}

	log.Println("Seed done.")
}

func newReferralCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		log.Fatal(err)
	}
	return strings.ToUpper(hex.EncodeToString(b))
}
