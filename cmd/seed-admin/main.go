// seed-admin creates or updates the admin user (username: garageAdmin),
// creating a default garage and base currency when the database is empty.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/models"
	"github.com/torquehub/garage_backend/utils"
)

const (
	adminUsername = "garageAdmin"
	adminPassword = "G@rageAdmin"
	adminName     = "Garage Admin"

	defaultGarageName = "Main Garage"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	var garage models.Garage
	err := db.WithContext(ctx).First(&garage).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup garage: %v\n", err)
			os.Exit(1)
		}
		created, err := models.CreateGarage(ctx, &models.NewGarage{Name: defaultGarageName})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create garage: %v\n", err)
			os.Exit(1)
		}
		garage = *created
		fmt.Printf("Created garage: %q (id=%s)\n", garage.Name, garage.ID)
	}

	ctx = utils.SetGarageIdInContext(ctx, garage.ID)
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Seed")
	ctx = utils.SetIsAdminInContext(ctx, true)

	// base currency
	var currency models.Currency
	err = db.WithContext(ctx).Where("garage_id = ?", garage.ID).First(&currency).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup currency: %v\n", err)
			os.Exit(1)
		}
		created, err := models.CreateCurrency(ctx, &models.NewCurrency{
			CurrencyName:   "Myanmar Kyat",
			Symbol:         "MMK",
			IsBaseCurrency: utils.NewTrue(),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create currency: %v\n", err)
			os.Exit(1)
		}
		currency = *created
		if _, err := models.SetGarageBaseCurrency(ctx, garage.ID, currency.ID); err != nil {
			fmt.Fprintf(os.Stderr, "failed to set base currency: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created base currency: %q (id=%d)\n", currency.CurrencyName, currency.ID)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			GarageId: garage.ID,
			Username: adminUsername,
			Name:     adminName,
			Password: string(hashed),
			Role:     models.UserRoleAdmin,
			IsActive: utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q (role=Admin)\n", adminUsername)
		return
	}

	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).Updates(map[string]any{
		"password":  string(hashed),
		"name":      adminName,
		"is_active": utils.NewTrue(),
		"garage_id": garage.ID,
		"role":      models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user: username=%q (role=Admin)\n", adminUsername)
}
