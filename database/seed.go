package database

import (
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pos_manager/constants"
	"pos_manager/model"
)

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// SeedData creates a demo organization with a small catalog so a fresh
// install has something to sell. Every block is FirstOrCreate, safe to rerun.
func SeedData(db *gorm.DB) {
	org := model.Organization{
		Name:         "Demo Coffee Co",
		Slug:         "demo-coffee-co",
		BusinessType: "cafe",
		Email:        "owner@demo-coffee.test",
		Country:      "US",
		Timezone:     "America/New_York",
		Currency:     "USD",
		Status:       "active",
	}
	if err := db.Where(model.Organization{Slug: org.Slug}).FirstOrCreate(&org).Error; err != nil {
		log.Println("failed to seed organization:", err)
		return
	}

	pin, err := bcrypt.GenerateFromPassword([]byte("1234"), 10)
	if err != nil {
		log.Println("failed to hash seed pin:", err)
		return
	}
	profiles := []model.UserProfile{
		{UserID: "seed-admin", OrganizationID: org.ID, Role: constants.RoleAdmin, FirstName: "Demo", LastName: "Admin", PinCode: string(pin), IsActive: true},
		{UserID: "seed-cashier", OrganizationID: org.ID, Role: constants.RoleCashier, FirstName: "Demo", LastName: "Cashier", PinCode: string(pin), IsActive: true},
	}
	for _, profile := range profiles {
		if err := db.Where(model.UserProfile{UserID: profile.UserID, OrganizationID: org.ID}).
			FirstOrCreate(&profile).Error; err != nil {
			log.Println("failed to seed profile:", profile.UserID, "error:", err)
		}
	}

	sizeGroup := model.ModifierGroup{
		OrganizationID: org.ID,
		Name:           "Size",
		SelectionType:  constants.SelectionSingle,
		MinSelections:  1,
		IsRequired:     true,
		SortOrder:      0,
	}
	if err := db.Where(model.ModifierGroup{OrganizationID: org.ID, Name: sizeGroup.Name}).
		FirstOrCreate(&sizeGroup).Error; err != nil {
		log.Println("failed to seed modifier group:", err)
	}
	options := []model.ModifierOption{
		{ModifierGroupID: sizeGroup.ID, Name: "Small", PriceAdjustment: money("0"), IsDefault: true, IsActive: true, SortOrder: 0},
		{ModifierGroupID: sizeGroup.ID, Name: "Medium", PriceAdjustment: money("0.50"), IsActive: true, SortOrder: 1},
		{ModifierGroupID: sizeGroup.ID, Name: "Large", PriceAdjustment: money("1.00"), IsActive: true, SortOrder: 2},
	}
	for _, opt := range options {
		if err := db.Where(model.ModifierOption{ModifierGroupID: sizeGroup.ID, Name: opt.Name}).
			FirstOrCreate(&opt).Error; err != nil {
			log.Println("failed to seed modifier option:", opt.Name, "error:", err)
		}
	}

	items := []model.Item{
		{OrganizationID: org.ID, Name: "Latte", ItemType: "beverage", BasePrice: money("4.50"), TaxRate: money("8"), Category: "Coffee", IsActive: true},
		{OrganizationID: org.ID, Name: "Americano", ItemType: "beverage", BasePrice: money("3.25"), TaxRate: money("8"), Category: "Coffee", IsActive: true},
		{OrganizationID: org.ID, Name: "Croissant", ItemType: "food", BasePrice: money("3.75"), TaxRate: money("8"), Category: "Bakery", IsActive: true},
	}
	for _, item := range items {
		if err := db.Where(model.Item{OrganizationID: org.ID, Name: item.Name}).
			FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed item:", item.Name, "error:", err)
			continue
		}
		if item.Category == "Coffee" {
			link := model.ItemModifierGroup{ItemID: item.ID, ModifierGroupID: sizeGroup.ID, SortOrder: 0}
			if err := db.Where(model.ItemModifierGroup{ItemID: item.ID, ModifierGroupID: sizeGroup.ID}).
				FirstOrCreate(&link).Error; err != nil {
				log.Println("failed to seed item modifier link:", err)
			}
		}
	}
}
