package models

import (
	"context"
	"errors"
	"time"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

type Client struct {
	ID          int        `gorm:"primary_key" json:"id"`
	GarageId    string     `gorm:"index;not null" json:"garage_id" binding:"required"`
	ClientType  ClientType `gorm:"type:enum('Individual','Company');default:'Individual'" json:"client_type"`
	Name        string     `gorm:"size:100;default:null" json:"name"`
	CompanyName string     `gorm:"size:100;default:null" json:"company_name"`
	ContactName string     `gorm:"size:100;default:null" json:"contact_name"`
	Email       string     `gorm:"size:255;not null" json:"email" binding:"required"`
	Phone       string     `gorm:"size:50;default:null" json:"phone"`
	Address     string     `gorm:"size:255;default:null" json:"address"`
	Notes       string     `gorm:"type:text;default:null" json:"notes"`
	IsActive    *bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	ClientType  ClientType `json:"client_type"`
	Name        string     `json:"name"`
	CompanyName string     `json:"company_name"`
	ContactName string     `json:"contact_name"`
	Email       string     `json:"email" binding:"required"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Notes       string     `json:"notes"`
	IsActive    *bool      `json:"is_active"`
}

type ClientsEdge Edge[Client]
type ClientsConnection struct {
	Edges    []*ClientsEdge `json:"edges"`
	PageInfo *PageInfo      `json:"pageInfo"`
}

// name is not unique across clients, so paging tiebreaks on id
func (c Client) GetCursor() string {
	return c.Name
}

func (c Client) GetId() int {
	return c.ID
}

// validate input for both create & update. (id = 0 for create)
func (input *NewClient) validate(ctx context.Context, garageId string, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Client](ctx, garageId, id); err != nil {
			return err
		}
	}
	// which name is mandatory depends on the client type
	switch input.ClientType {
	case ClientTypeCompany:
		if input.CompanyName == "" {
			return errors.New("company name is required for company clients")
		}
	default:
		if input.Name == "" {
			return errors.New("name is required for individual clients")
		}
	}
	if !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if err := utils.ValidateUnique[Client](ctx, garageId, "email", input.Email, id); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, 0); err != nil {
		return nil, err
	}

	clientType := input.ClientType
	if clientType == "" {
		clientType = ClientTypeIndividual
	}
	isActive := input.IsActive
	if isActive == nil {
		isActive = utils.NewTrue()
	}

	client := Client{
		GarageId:    garageId,
		ClientType:  clientType,
		Name:        input.Name,
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Notes:       input.Notes,
		IsActive:    isActive,
	}

	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func UpdateClient(ctx context.Context, id int, input *NewClient) (*Client, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	if err := input.validate(ctx, garageId, id); err != nil {
		return nil, err
	}

	client, err := utils.FetchModel[Client](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	client.ClientType = input.ClientType
	client.Name = input.Name
	client.CompanyName = input.CompanyName
	client.ContactName = input.ContactName
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address
	client.Notes = input.Notes
	if input.IsActive != nil {
		client.IsActive = input.IsActive
	}

	if err := db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}

	return client, nil
}

func DeleteClient(ctx context.Context, id int) (*Client, error) {
	db := config.GetDB()

	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	client, err := utils.FetchModel[Client](ctx, garageId, id)
	if err != nil {
		return nil, err
	}

	documentCount, err := utils.ResourceCountWhere[Document](ctx, garageId, "client_id = ?", id)
	if err != nil {
		return nil, err
	}
	if documentCount > 0 {
		return nil, errors.New("client has documents and cannot be deleted")
	}

	if err := db.WithContext(ctx).Delete(client).Error; err != nil {
		return nil, err
	}

	return client, nil
}

func GetClient(ctx context.Context, id int) (*Client, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}
	return utils.FetchModel[Client](ctx, garageId, id)
}

func PaginateClients(ctx context.Context, limit *int, after *string, name *string) (*ClientsConnection, error) {
	garageId, ok := utils.GetGarageIdFromContext(ctx)
	if !ok || garageId == "" {
		return nil, errors.New("garage id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("garage_id = ?", garageId)
	if name != nil && *name != "" {
		dbCtx.Where("name LIKE ? OR company_name LIKE ?", "%"+*name+"%", "%"+*name+"%")
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Client](dbCtx, *limit, after, "name", ">")
	if err != nil {
		return nil, err
	}
	var clientsConnection ClientsConnection
	clientsConnection.PageInfo = pageInfo
	for _, edge := range edges {
		clientEdge := ClientsEdge(edge)
		clientsConnection.Edges = append(clientsConnection.Edges, &clientEdge)
	}

	return &clientsConnection, err
}
