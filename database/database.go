package database

import (
	"fmt"
	"log"
	"os"
	"time"
	"vocab-center/config"
	"vocab-center/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() *gorm.DB {
	databaseSignal := config.AppConfig.DatabaseURL

	// GORM logger configuration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      false,       // Don't include params in the SQL log
			Colorful:                  true,        // Enable color
		},
	)

	db, err := gorm.Open(mysql.Open(databaseSignal), &gorm.Config{
		Logger: newLogger,
		// Surface unique-key violations as gorm.ErrDuplicatedKey so the
		// username constraint (not a prior read) decides duplicate registration.
		TranslateError: true,
	})
	if err != nil {
		panic(fmt.Errorf("Failed to connect database: %s", err))
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.WordClass{},
		&models.Word{},
		&models.Set{},
		&models.WordSet{},
	)
	if err != nil {
		panic(fmt.Errorf("failed to migrate database: %w", err))
	}

	DB = db
	fmt.Println("Database connection successful and migrations complete.")

	SeedWordClasses(DB)
	return db
}

// SeedWordClasses inserts the fixed word-class reference rows if they are
// missing. The application reads these when creating/editing words and never
// mutates them.
func SeedWordClasses(db *gorm.DB) {
	classes := []string{
		"noun",
		"verb",
		"adjective",
		"adverb",
		"pronoun",
		"numeral",
		"measure word",
		"particle",
		"conjunction",
		"interjection",
	}

	for _, name := range classes {
		var existing models.WordClass
		if err := db.Where("name = ?", name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.WordClass{Name: name}).Error; err != nil {
				log.Printf("Failed to seed word class %s: %v\n", name, err)
			} else {
				log.Printf("Seeded word class: %s\n", name)
			}
		}
	}
}
