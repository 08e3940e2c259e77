package repositories

import (
	"context"

	"github.com/Viniciustertuliano/photovault/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(ctx, r.db, tx).Omit("Owner").Create(folder).Error
}

func (r *GormFolderRepository) GetByID(ctx context.Context, tx *gorm.DB, folderID uint) (models.Folder, error) {
	var folder models.Folder
	err := useTx(ctx, r.db, tx).Preload("Owner").First(&folder, folderID).Error
	return folder, err
}

func (r *GormFolderRepository) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(ctx, r.db, tx).Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) UpdateName(ctx context.Context, tx *gorm.DB, folderID uint, name string) error {
	return useTx(ctx, r.db, tx).Model(&models.Folder{}).Where("id = ?", folderID).Update("name", name).Error
}

func (r *GormFolderRepository) DeleteByID(ctx context.Context, tx *gorm.DB, folderID uint) error {
	return useTx(ctx, r.db, tx).Delete(&models.Folder{}, folderID).Error
}
