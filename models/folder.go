package models

import "time"

type Folder struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID   uint         `gorm:"not null;index" json:"owner_id"`
	Owner     Photographer `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
