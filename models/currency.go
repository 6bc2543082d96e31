package models

import (
	"context"
	"errors"
	"time"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

type Currency struct {
	ID             int       `gorm:"primary_key" json:"id"`
	GarageId       string    `gorm:"index;not null" json:"garage_id" binding:"required"`
	CurrencyName   string    `gorm:"size:100;not null" json:"currency_name" binding:"required"`
	Symbol         string    `gorm:"size:10;not null" json:"symbol" binding:"required"`
	IsBaseCurrency *bool     `gorm:"default:false" json:"is_base_currency"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCurrency struct {
	CurrencyName   string `json:"currency_name" binding:"required"`
	Symbol         string `json:"symbol" binding:"required"`
	IsBaseCurrency *bool  `json:"is_base_currency"`
}

func (input *NewCurrency) validate(ctx context.Context, garageId string, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Currency](ctx, garageId, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Currency](ctx, garageId, "currency_name", input.CurrencyName, id); err != nil {
		return err
	}
	return nil
}

func CreateCurrency(ctx context.Context, input *NewCurrency) (*Currency, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, 0); err != nil {
		return nil, err
	}

	isBase := input.IsBaseCurrency
	if isBase == nil {
		isBase = utils.NewFalse()
	}

	currency := Currency{
		GarageId:       garageId,
		CurrencyName:   input.CurrencyName,
		Symbol:         input.Symbol,
		IsBaseCurrency: isBase,
	}

	if err := db.WithContext(ctx).Create(&currency).Error; err != nil {
		return nil, err
	}

	return &currency, nil
}

func UpdateCurrency(ctx context.Context, id int, input *NewCurrency) (*Currency, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, id); err != nil {
		return nil, err
	}

	currency, err := utils.FetchModel[Currency](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	currency.CurrencyName = input.CurrencyName
	currency.Symbol = input.Symbol
	if input.IsBaseCurrency != nil {
		currency.IsBaseCurrency = input.IsBaseCurrency
	}

	if err := db.WithContext(ctx).Save(currency).Error; err != nil {
		return nil, err
	}

	return currency, nil
}

func DeleteCurrency(ctx context.Context, id int) (*Currency, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	currency, err := utils.FetchModel[Currency](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	documentCount, err := utils.ResourceCountWhere[Document](ctx, garageId, "currency_id = ?", id)
	if err != nil {
		return nil, err
	}
	if documentCount > 0 {
		return nil, errors.New("currency is used by documents and cannot be deleted")
	}

	if err := db.WithContext(ctx).Delete(currency).Error; err != nil {
		return nil, err
	}

	return currency, nil
}

func GetCurrency(ctx context.Context, id int) (*Currency, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}
	return utils.FetchModel[Currency](ctx, garageId, id)
}

func GetCurrencies(ctx context.Context) ([]*Currency, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}
	return utils.FetchAllModels[Currency](ctx, garageId)
}
