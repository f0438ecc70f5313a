package main

import (
	"log"
	"os"
	"time"

	"canbrs/internal/database"
	"canbrs/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "canbrs.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Admin{},
		&domain.Resident{},
		&domain.RegistrationKey{},
		&domain.Listing{},
		&domain.Reservation{},
		&domain.ReservationItem{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children before parents)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservation_items")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM registration_keys")
	db.Exec("DELETE FROM residents")
	db.Exec("DELETE FROM admins")

	// ================== ADMIN ==================
	log.Println("Creating admin...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.Admin{
		Name:         "Barangay Administrator",
		Sitio:        "Sitio Uno",
		Email:        "admin@canbrs.local",
		Phone:        "09170000001",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@canbrs.local / admin123")

	// Spare registration key for onboarding a second admin.
	db.Create(&domain.RegistrationKey{Key: "seed-registration-key-0001"})
	log.Println("Registration key created: seed-registration-key-0001")

	// ================== RESIDENTS ==================
	log.Println("Creating residents...")
	residentHash, _ := bcrypt.GenerateFromPassword([]byte("resident123"), bcrypt.DefaultCost)
	resident := domain.Resident{
		Firstname:      "Juan",
		Lastname:       "Dela Cruz",
		Birthdate:      time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Gender:         "Male",
		BlkNum:         "12",
		LotNum:         "4",
		Sitio:          "Sitio Uno",
		Phone:          "09171234567",
		PasswordHash:   string(residentHash),
		Role:           domain.RoleResident,
		ValidIDNumber:  "PH-0001-2345",
		IsApproved:     true,
		IsVerified:     true,
		Classification: domain.ClassificationRegular,
	}
	db.Create(&resident)

	pendingHash, _ := bcrypt.GenerateFromPassword([]byte("resident123"), bcrypt.DefaultCost)
	pending := domain.Resident{
		Firstname:     "Maria",
		Lastname:      "Santos",
		Birthdate:     time.Date(1955, 11, 3, 0, 0, 0, 0, time.UTC),
		Gender:        "Female",
		BlkNum:        "7",
		LotNum:        "2",
		Sitio:         "Sitio Dos",
		Phone:         "09179876543",
		PasswordHash:  string(pendingHash),
		Role:          domain.RoleResident,
		ValidIDNumber: "PH-0002-6789",
		IsApproved:    false,
	}
	db.Create(&pending)
	log.Println("Residents created: 09171234567 (approved), 09179876543 (pending) / resident123")

	// ================== LISTINGS ==================
	log.Println("Creating listings...")
	listings := []domain.Listing{
		{
			Name:        "Monobloc Chair",
			Description: "Stackable plastic chair for events",
			Kind:        domain.ListingEquipment,
			Inventory:   200,
		},
		{
			Name:        "Folding Table",
			Description: "Six-seater folding table",
			Kind:        domain.ListingEquipment,
			Inventory:   40,
		},
		{
			Name:        "Sound System",
			Description: "Speaker pair with mixer and two microphones",
			Kind:        domain.ListingEquipment,
			Inventory:   3,
		},
		{
			Name:        "Event Tent",
			Description: "20x20 ft tent with frame",
			Kind:        domain.ListingEquipment,
			Inventory:   10,
		},
		{
			Name:        "Barangay Covered Court",
			Description: "Multi-purpose covered court for sports and gatherings",
			Kind:        domain.ListingFacility,
			Address:     "Barangay Hall Compound, Main Road",
		},
		{
			Name:        "Multi-Purpose Hall",
			Description: "Air-conditioned hall for meetings and seminars",
			Kind:        domain.ListingFacility,
			Address:     "2F Barangay Hall, Main Road",
		},
	}
	for i := range listings {
		db.Create(&listings[i])
	}

	log.Println("Seed completed")
	log.Println("Test accounts:")
	log.Println("Admin: admin@canbrs.local / admin123")
	log.Println("Resident: 09171234567 / resident123")
}
