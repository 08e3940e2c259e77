package models

import "time"

type Role string

const (
	RolePhotographer Role = "PHOTOGRAPHER"
	RoleClient       Role = "CLIENT"
)

// Identity holds the fields every account variant shares. Registration and
// password handling live outside this service.
type Identity struct {
	Name  string `gorm:"type:varchar(25);not null" json:"name"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role  Role   `gorm:"type:varchar(20);not null" json:"role"`
}

type Photographer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Identity  `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Photographer) TableName() string {
	return "photographers"
}

type Client struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Identity    `gorm:"embedded"`
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
