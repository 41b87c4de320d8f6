package database

import (
	"fmt"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pos_manager/config"
	"pos_manager/model"
)

// ConnectDB opens the Postgres connection and migrates the schema. The handle
// is returned to the caller and injected into handlers; no package-level
// singleton is kept.
func ConnectDB() *gorm.DB {
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	fmt.Println("Connection Opened to Database")

	db.AutoMigrate(
		&model.Organization{},
		&model.UserProfile{},
		&model.Item{},
		&model.Variant{},
		&model.ModifierGroup{},
		&model.ModifierOption{},
		&model.ItemModifierGroup{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderItemModifier{},
		&model.Payment{},
	)
	fmt.Println("Database Migrated")

	SeedData(db)
	return db
}
