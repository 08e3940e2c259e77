package repositories

import (
	"context"
	"time"

	"github.com/Viniciustertuliano/photovault/models"

	"gorm.io/gorm"
)

type GormShareLinkRepository struct {
	db *gorm.DB
}

func NewGormShareLinkRepository(db *gorm.DB) *GormShareLinkRepository {
	return &GormShareLinkRepository{db: db}
}

func (r *GormShareLinkRepository) Create(ctx context.Context, tx *gorm.DB, link *models.ShareLink) error {
	return useTx(ctx, r.db, tx).Omit("Folder").Create(link).Error
}

func (r *GormShareLinkRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (models.ShareLink, error) {
	var link models.ShareLink
	err := useTx(ctx, r.db, tx).Preload("Folder").First(&link, id).Error
	return link, err
}

func (r *GormShareLinkRepository) GetByToken(ctx context.Context, tx *gorm.DB, token string) (models.ShareLink, error) {
	var link models.ShareLink
	err := useTx(ctx, r.db, tx).Preload("Folder").Where("token = ?", token).First(&link).Error
	return link, err
}

func (r *GormShareLinkRepository) ListByFolder(ctx context.Context, tx *gorm.DB, folderID uint) ([]models.ShareLink, error) {
	var links []models.ShareLink
	err := useTx(ctx, r.db, tx).Preload("Folder").
		Where("folder_id = ?", folderID).
		Order("created_at DESC, id DESC").
		Find(&links).Error
	return links, err
}

func (r *GormShareLinkRepository) Deactivate(ctx context.Context, tx *gorm.DB, id uint) error {
	return useTx(ctx, r.db, tx).Model(&models.ShareLink{}).
		Where("id = ?", id).
		UpdateColumn("active", false).Error
}

func (r *GormShareLinkRepository) UpdateExpiration(ctx context.Context, tx *gorm.DB, id uint, expiration time.Time) error {
	return useTx(ctx, r.db, tx).Model(&models.ShareLink{}).
		Where("id = ?", id).
		UpdateColumn("expiration_date", expiration).Error
}

func (r *GormShareLinkRepository) RecordAccess(ctx context.Context, tx *gorm.DB, id uint, clientID *uint, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"access_count":     gorm.Expr("access_count + ?", 1),
		"last_accessed_at": at,
	}
	if clientID != nil {
		updates["last_client_id"] = *clientID
	}

	res := useTx(ctx, r.db, tx).Model(&models.ShareLink{}).
		Where("id = ? AND active = ?", id, true).
		UpdateColumns(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormShareLinkRepository) DeleteByFolder(ctx context.Context, tx *gorm.DB, folderID uint) error {
	return useTx(ctx, r.db, tx).Where("folder_id = ?", folderID).Delete(&models.ShareLink{}).Error
}
