package models

import "time"

type ShareLinkState string

const (
	ShareLinkActive  ShareLinkState = "active"
	ShareLinkExpired ShareLinkState = "expired"
	ShareLinkRevoked ShareLinkState = "revoked"
)

type ShareLink struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Token          string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpirationDate *time.Time `json:"expiration_date"`
	Active         bool       `gorm:"not null;default:true" json:"active"`
	AccessCount    int64      `gorm:"not null;default:0" json:"access_count"`
	FolderID       uint       `gorm:"not null;index" json:"folder_id"`
	Folder         Folder     `gorm:"foreignKey:FolderID" json:"-"`
	LastClientID   *uint      `gorm:"index" json:"last_client_id,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
}

// State derives the lifecycle state at now. Revocation wins over expiration.
func (l ShareLink) State(now time.Time) ShareLinkState {
	if !l.Active {
		return ShareLinkRevoked
	}
	if l.ExpirationDate != nil && now.After(*l.ExpirationDate) {
		return ShareLinkExpired
	}
	return ShareLinkActive
}

func (l ShareLink) IsValidAt(now time.Time) bool {
	return l.State(now) == ShareLinkActive
}
