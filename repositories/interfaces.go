package repositories

import (
	"context"
	"time"

	"github.com/Viniciustertuliano/photovault/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type PhotographerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, photographer *models.Photographer) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (models.Photographer, error)
}

type ClientRepository interface {
	Create(ctx context.Context, tx *gorm.DB, client *models.Client) error
	ListByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Client, error)
}

type FolderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	// GetByID preloads the owning photographer.
	GetByID(ctx context.Context, tx *gorm.DB, folderID uint) (models.Folder, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]models.Folder, error)
	UpdateName(ctx context.Context, tx *gorm.DB, folderID uint, name string) error
	DeleteByID(ctx context.Context, tx *gorm.DB, folderID uint) error
}

type FileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, file *models.File) error
	// GetByID preloads the containing folder.
	GetByID(ctx context.Context, tx *gorm.DB, fileID uint) (models.File, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, folderID uint) ([]models.File, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, fileID uint) error
}

type ShareLinkRepository interface {
	Create(ctx context.Context, tx *gorm.DB, link *models.ShareLink) error
	// GetByID and GetByToken preload the folder.
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (models.ShareLink, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (models.ShareLink, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, folderID uint) ([]models.ShareLink, error)
	Deactivate(ctx context.Context, tx *gorm.DB, id uint) error
	UpdateExpiration(ctx context.Context, tx *gorm.DB, id uint, expiration time.Time) error
	// RecordAccess increments access_count in SQL. It reports false when the link
	// was deactivated concurrently and nothing was updated.
	RecordAccess(ctx context.Context, tx *gorm.DB, id uint, clientID *uint, at time.Time) (bool, error)
	DeleteByFolder(ctx context.Context, tx *gorm.DB, folderID uint) error
}

type ShareAccessLogRepository interface {
	Append(ctx context.Context, entry models.ShareAccess) error
	Recent(ctx context.Context, shareLinkID uint, limit int) ([]models.ShareAccess, error)
	Clear(ctx context.Context, shareLinkID uint) error
}

type Container struct {
	TxManager     TxManager
	Photographers PhotographerRepository
	Clients       ClientRepository
	Folders       FolderRepository
	Files         FileRepository
	ShareLinks    ShareLinkRepository
	AccessLog     ShareAccessLogRepository
}
