package models

import (
	"context"
	"errors"
	"time"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

type Vehicle struct {
	ID             int       `gorm:"primary_key" json:"id"`
	GarageId       string    `gorm:"index;not null" json:"garage_id" binding:"required"`
	ClientId       int       `gorm:"index;not null" json:"client_id" binding:"required"`
	RegistrationNo string    `gorm:"size:50;not null" json:"registration_no" binding:"required"`
	Make           string    `gorm:"size:100;default:null" json:"make"`
	Model          string    `gorm:"size:100;default:null" json:"model"`
	Year           int       `gorm:"default:null" json:"year"`
	Color          string    `gorm:"size:50;default:null" json:"color"`
	Mileage        int       `gorm:"default:null" json:"mileage"`
	Notes          string    `gorm:"type:text;default:null" json:"notes"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVehicle struct {
	ClientId       int    `json:"client_id" binding:"required"`
	RegistrationNo string `json:"registration_no" binding:"required"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	Color          string `json:"color"`
	Mileage        int    `json:"mileage"`
	Notes          string `json:"notes"`
}

type VehiclesEdge Edge[Vehicle]
type VehiclesConnection struct {
	Edges    []*VehiclesEdge `json:"edges"`
	PageInfo *PageInfo       `json:"pageInfo"`
}

func (v Vehicle) GetCursor() string {
	return v.RegistrationNo
}

func (input *NewVehicle) validate(ctx context.Context, garageId string, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Vehicle](ctx, garageId, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateResourceId[Client](ctx, garageId, input.ClientId); err != nil {
		return errors.New("client not found")
	}
	if err := utils.ValidateUnique[Vehicle](ctx, garageId, "registration_no", input.RegistrationNo, id); err != nil {
		return err
	}
	return nil
}

func CreateVehicle(ctx context.Context, input *NewVehicle) (*Vehicle, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, 0); err != nil {
		return nil, err
	}

	vehicle := Vehicle{
		GarageId:       garageId,
		ClientId:       input.ClientId,
		RegistrationNo: input.RegistrationNo,
		Make:           input.Make,
		Model:          input.Model,
		Year:           input.Year,
		Color:          input.Color,
		Mileage:        input.Mileage,
		Notes:          input.Notes,
	}

	if err := db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}

	return &vehicle, nil
}

func UpdateVehicle(ctx context.Context, id int, input *NewVehicle) (*Vehicle, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, id); err != nil {
		return nil, err
	}

	vehicle, err := utils.FetchModel[Vehicle](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	vehicle.ClientId = input.ClientId
	vehicle.RegistrationNo = input.RegistrationNo
	vehicle.Make = input.Make
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.Color = input.Color
	vehicle.Mileage = input.Mileage
	vehicle.Notes = input.Notes

	if err := db.WithContext(ctx).Save(vehicle).Error; err != nil {
		return nil, err
	}

	return vehicle, nil
}

func DeleteVehicle(ctx context.Context, id int) (*Vehicle, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	vehicle, err := utils.FetchModel[Vehicle](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	documentCount, err := utils.ResourceCountWhere[Document](ctx, garageId, "vehicle_id = ?", id)
	if err != nil {
		return nil, err
	}
	if documentCount > 0 {
		return nil, errors.New("vehicle has documents and cannot be deleted")
	}

	if err := db.WithContext(ctx).Delete(vehicle).Error; err != nil {
		return nil, err
	}

	return vehicle, nil
}

func GetVehicle(ctx context.Context, id int) (*Vehicle, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}
	return utils.FetchModel[Vehicle](ctx, garageId, id)
}

func PaginateVehicles(ctx context.Context, limit *int, after *string, clientID *int, registrationNo *string) (*VehiclesConnection, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("garage_id = ?", garageId)
	if clientID != nil && *clientID > 0 {
		dbCtx.Where("client_id = ?", *clientID)
	}
	if registrationNo != nil && *registrationNo != "" {
		dbCtx.Where("registration_no LIKE ?", "%"+*registrationNo+"%")
	}

	edges, pageInfo, err := FetchPagePureCursor[Vehicle](dbCtx, *limit, after, "registration_no", ">")
	if err != nil {
		return nil, err
	}
	var vehiclesConnection VehiclesConnection
	vehiclesConnection.PageInfo = pageInfo
	for _, edge := range edges {
		vehicleEdge := VehiclesEdge(edge)
		vehiclesConnection.Edges = append(vehiclesConnection.Edges, &vehicleEdge)
	}

	return &vehiclesConnection, err
}
