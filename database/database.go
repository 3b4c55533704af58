package database

import (
	"log"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DATABASE_URL")
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case dsn != "":
		// Assume postgres DSN even without schema prefix
		dialector = postgres.Open(dsn)
	default:
		dbPath := "wastetrack.db"
		dialector = sqlite.Open(dbPath)
		dsn = dbPath
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("database connection failed:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}
	if err := SeedMasterData(db); err != nil {
		log.Fatal("master data seed failed:", err)
	}

	DB = db
	log.Println("📦 database connected and migrated on", dsn)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Client{},
		&models.WasteCategory{},
		&models.WasteType{},
		&models.RecyclingTechnology{},
		&models.Facility{},
		&models.PickupLocation{},
		&models.VehicleType{},
		&models.WasteData{},
		&models.RecyclingProcess{},
		&models.Report{},
		&models.ReportQuestion{},
		&models.ReportQuestionTemplate{},
	)
}

// SeedMasterData inserts the static waste taxonomy and the report question
// templates. Safe to run on every boot.
func SeedMasterData(db *gorm.DB) error {
	taxonomy := map[string][]models.WasteType{
		"Plastics": {
			{Name: "PET Bottles", CO2PerKg: 2.3},
			{Name: "HDPE Containers", CO2PerKg: 1.8},
			{Name: "Mixed Plastics", CO2PerKg: 1.5},
		},
		"Paper & Cardboard": {
			{Name: "Cardboard", CO2PerKg: 0.9},
			{Name: "Office Paper", CO2PerKg: 1.1},
		},
		"Metals": {
			{Name: "Aluminium Cans", CO2PerKg: 9.1},
			{Name: "Scrap Steel", CO2PerKg: 1.4},
		},
		"Glass": {
			{Name: "Glass Bottles", CO2PerKg: 0.3},
		},
		"Organics": {
			{Name: "Food Waste", CO2PerKg: 0.5},
			{Name: "Garden Waste", CO2PerKg: 0.4},
		},
		"E-Waste": {
			{Name: "Electronics", CO2PerKg: 4.2},
		},
	}

	for categoryName, types := range taxonomy {
		var category models.WasteCategory
		if err := db.Where(models.WasteCategory{Name: categoryName}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
		for _, wt := range types {
			record := models.WasteType{WasteCategoryID: category.ID, Name: wt.Name}
			if err := db.Where(record).
				Attrs(models.WasteType{CO2PerKg: wt.CO2PerKg}).
				FirstOrCreate(&record).Error; err != nil {
				return err
			}
		}
	}

	questions := []string{
		"What were the main sustainability achievements during this period?",
		"How does this period's recycling performance compare to the previous one?",
		"What recommendations do you have to improve the diversion rate?",
		"Which waste streams contributed most to emissions avoided?",
	}
	for _, q := range questions {
		if err := db.Where(models.ReportQuestionTemplate{Text: q}).
			FirstOrCreate(&models.ReportQuestionTemplate{}).Error; err != nil {
			return err
		}
	}
	return nil
}
