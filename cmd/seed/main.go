package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ojtlog/internal/config"
	"ojtlog/internal/db"
	"ojtlog/internal/model"
	"ojtlog/internal/repository"
)

// Seeds a demo technician with a supervisor bank and a spread of entries
// for local development. Idempotent: re-running updates nothing that
// already exists.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Entry{}, &model.Supervisor{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)
	supervisorRepo := repository.NewSupervisorRepository(gormDB)

	user, created, err := seedUser(ctx, userRepo, "tech@example.com", "password123", "Demo Technician", "EMP-0042", false)
	if err != nil {
		log.Fatalf("Failed to seed technician: %v", err)
	}
	if _, _, err := seedUser(ctx, userRepo, "admin@example.com", "password123", "Demo Admin", "", true); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if !created {
		log.Println("Demo technician already present, leaving existing data alone")
		return
	}

	supervisors := []model.Supervisor{
		{UserID: user.ID, Name: "J. Smith", Email: "j.smith@example.com", Phone: "555-1000", CertificationLevel: model.CertificationLevelII, Company: "Acme Inspection"},
		{UserID: user.ID, Name: "R. Lee", Email: "r.lee@example.com", Phone: "555-2000", CertificationLevel: model.CertificationLevelIII, Company: "Apex NDT"},
	}
	for i := range supervisors {
		if err := supervisorRepo.Create(ctx, &supervisors[i]); err != nil {
			log.Fatalf("Failed to seed supervisor: %v", err)
		}
	}

	entries := []model.Entry{
		{UserID: user.ID, Date: date(2024, 1, 10), Location: "Site A", Method: model.MethodUTThk, Hours: decimal.NewFromFloat(3.0)},
		{UserID: user.ID, Date: date(2024, 1, 11), Location: "Site A", Method: model.MethodET, Hours: decimal.NewFromFloat(2.5)},
		{UserID: user.ID, Date: date(2024, 1, 12), Location: "Site B", Method: model.MethodET, Hours: decimal.NewFromFloat(1.0)},
		{UserID: user.ID, Date: date(2024, 1, 15), Location: "Site C", Method: model.MethodMT, Hours: decimal.NewFromFloat(4.0)},
	}
	if err := entryRepo.CreateBatch(ctx, entries); err != nil {
		log.Fatalf("Failed to seed entries: %v", err)
	}

	log.Printf("Seed completed: technician %s with %d supervisors and %d entries", user.Email, len(supervisors), len(entries))
}

func seedUser(ctx context.Context, repo repository.UserRepository, email, password, name, employeeNumber string, admin bool) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	user := &model.User{
		Email:          email,
		Name:           name,
		EmployeeNumber: employeeNumber,
		PasswordHash:   string(hash),
		Admin:          admin,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
