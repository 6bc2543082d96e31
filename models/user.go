package models

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	GarageId  string    `gorm:"index;not null" json:"garage_id" binding:"required"`
	Username  string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name      string    `gorm:"size:100;default:null" json:"name"`
	Email     string    `gorm:"size:255;default:null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-" binding:"required"`
	Role      UserRole  `gorm:"type:enum('A','S');default:'S'" json:"role"`
	IsActive  *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	GarageId string   `json:"garage_id" binding:"required"`
	Username string   `json:"username" binding:"required"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func sessionLifespan() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("TOKEN_HOUR_LIFESPAN"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Hour * time.Duration(hours)
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()

	if _, err := GetGarage(ctx, input.GarageId); err != nil {
		return nil, errors.New("garage not found")
	}
	// username is unique across garages; blank garageId checks globally
	if err := utils.ValidateUnique[User](ctx, "", "username", input.Username, 0); err != nil {
		return nil, err
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleStaff
	}

	user := User{
		GarageId: input.GarageId,
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials, issues a signed token, and registers it as an
// active session so Logout can revoke it before expiry.
func Login(ctx context.Context, input *LoginInput) (*AuthPayload, error) {
	db := config.GetDB()

	var user User
	if err := db.WithContext(ctx).First(&user, "username = ?", input.Username).Error; err != nil {
		return nil, errors.New("invalid username or password")
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, errors.New("user is deactivated")
	}
	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role), user.GarageId)
	if err != nil {
		return nil, err
	}

	if err := config.SetRedisValue("Token:"+token, user.Username, sessionLifespan()); err != nil {
		return nil, err
	}

	return &AuthPayload{Token: token, User: &user}, nil
}

func Logout(ctx context.Context) error {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return errors.New("no active session")
	}
	return config.RemoveRedisKey("Token:" + token)
}

func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &user, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	return utils.FetchSingleModel[User](ctx, id)
}
