package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/membership-management/internal/admin"
	"github.com/frahmantamala/membership-management/internal/auth"
	departmentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/department"
	subscriptionDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/subscription"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the reference tables and two sample accounts for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := gorm.Open(gormPostgres.Open(cfg.Database.Source), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open db: %v", err)
		}

		if clearData {
			for _, table := range []string{"password_reset_otps", "user_payments", "users", "registration_statuses", "subscription_types", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedStatuses(db)
		seedDepartments(db)
		seedSubscriptionTypes(db)
		seedUsers(db)
	},
}

func seedStatuses(db *gorm.DB) {
	statuses := []userDatamodel.RegistrationStatus{
		{ID: admin.StatusSubmitted, StatusName: "Submitted"},
		{ID: admin.StatusPending, StatusName: "Pending"},
		{ID: admin.StatusApproved, StatusName: "Approved"},
		{ID: admin.StatusRejected, StatusName: "Rejected"},
	}
	for _, s := range statuses {
		if err := db.Where("id = ?", s.ID).FirstOrCreate(&s).Error; err != nil {
			log.Fatalf("failed to seed registration status %s: %v", s.StatusName, err)
		}
	}
	fmt.Println("Seeded registration statuses")
}

func seedDepartments(db *gorm.DB) {
	departments := []departmentDatamodel.Department{
		{ID: 1, Name: "Engineering", IsActive: true},
		{ID: 2, Name: "Finance", IsActive: true},
		{ID: 3, Name: "Operations", IsActive: true},
	}
	for _, d := range departments {
		if err := db.Where("id = ?", d.ID).FirstOrCreate(&d).Error; err != nil {
			log.Fatalf("failed to seed department %s: %v", d.Name, err)
		}
	}
	fmt.Println("Seeded departments")
}

func seedSubscriptionTypes(db *gorm.DB) {
	types := []subscriptionDatamodel.SubscriptionType{
		{ID: admin.SubscriptionLifetime, Name: "Lifetime", Price: 2500000, IsActive: true},
		{ID: admin.SubscriptionYearly, Name: "Yearly", Price: 500000, IsActive: true},
	}
	for _, t := range types {
		if err := db.Where("id = ?", t.ID).FirstOrCreate(&t).Error; err != nil {
			log.Fatalf("failed to seed subscription type %s: %v", t.Name, err)
		}
	}
	fmt.Println("Seeded subscription types")
}

func seedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	now := time.Now()
	users := []userDatamodel.User{
		{
			FirstName: "Padil", LastName: "Admin", Email: "padil@mail.com",
			PasswordHash: string(hash), PhoneNumber: "08111111111",
			DepartmentID: 1, RoleID: auth.RoleAdmin, SubscriptionTypeID: admin.SubscriptionLifetime,
			RegistrationStatusID: admin.StatusApproved, IsActive: true,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			FirstName: "Fadhil", LastName: "Member", Email: "fadhil@mail.com",
			PasswordHash: string(hash), PhoneNumber: "08122222222",
			DepartmentID: 1, RoleID: auth.RoleRegular, SubscriptionTypeID: admin.SubscriptionYearly,
			RegistrationStatusID: admin.StatusPending, IsActive: true,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&userDatamodel.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			log.Fatalf("failed to check user %s: %v", u.Email, err)
		}
		if count > 0 {
			fmt.Printf("User %s already exists, skipping\n", u.Email)
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
		fmt.Printf("Seeded user %s\n", u.Email)
	}
}
