package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

// Garage is the tenant. Every other table carries its id in garage_id and
// every query is scoped by it.
type Garage struct {
	ID             string    `gorm:"primary_key;size:36" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone          string    `gorm:"size:50;default:null" json:"phone"`
	Address        string    `gorm:"size:255;default:null" json:"address"`
	Timezone       string    `gorm:"size:100;default:'Asia/Yangon'" json:"timezone"`
	BaseCurrencyId int       `gorm:"default:null" json:"base_currency_id"`
	IsActive       *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewGarage struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

func CreateGarage(ctx context.Context, input *NewGarage) (*Garage, error) {
	db := config.GetDB()

	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, errors.New("invalid phone number")
		}
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "Asia/Yangon"
	}

	garage := Garage{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Phone:    input.Phone,
		Address:  input.Address,
		Timezone: timezone,
		IsActive: utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&garage).Error; err != nil {
		return nil, err
	}

	return &garage, nil
}

func GetGarage(ctx context.Context, id string) (*Garage, error) {
	db := config.GetDB()
	var garage Garage
	if err := db.WithContext(ctx).First(&garage, "id = ?", id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &garage, nil
}

func SetGarageBaseCurrency(ctx context.Context, id string, currencyId int) (*Garage, error) {
	db := config.GetDB()
	garage, err := GetGarage(ctx, id)
	if err != nil {
		return nil, err
	}
	garage.BaseCurrencyId = currencyId
	if err := db.WithContext(ctx).Save(garage).Error; err != nil {
		return nil, err
	}
	return garage, nil
}
