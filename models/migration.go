package models

import (
	"log"

	"github.com/torquehub/garage_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Garage{}, &User{},
		&Currency{},
		&Client{}, &Vehicle{},
		&Document{}, &DocumentLineItem{},
		&Payment{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
