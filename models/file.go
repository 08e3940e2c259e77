package models

import "time"

// File is the metadata row of a stored upload. StoredName is the generated
// object key; Name is the display name supplied by the uploader.
type File struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	StoredName  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Size        int64     `gorm:"not null" json:"size"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	FolderID    uint      `gorm:"not null;index" json:"folder_id"`
	Folder      Folder    `gorm:"foreignKey:FolderID" json:"-"`
	UploadDate  time.Time `gorm:"index" json:"upload_date"`
}
