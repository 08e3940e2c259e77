package repositories

import (
	"context"

	"github.com/Viniciustertuliano/photovault/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(ctx context.Context, tx *gorm.DB, file *models.File) error {
	return useTx(ctx, r.db, tx).Omit("Folder").Create(file).Error
}

func (r *GormFileRepository) GetByID(ctx context.Context, tx *gorm.DB, fileID uint) (models.File, error) {
	var file models.File
	err := useTx(ctx, r.db, tx).Preload("Folder").First(&file, fileID).Error
	return file, err
}

func (r *GormFileRepository) ListByFolder(ctx context.Context, tx *gorm.DB, folderID uint) ([]models.File, error) {
	var files []models.File
	err := useTx(ctx, r.db, tx).Preload("Folder").
		Where("folder_id = ?", folderID).
		Order("upload_date ASC, id ASC").
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) DeleteByID(ctx context.Context, tx *gorm.DB, fileID uint) error {
	return useTx(ctx, r.db, tx).Delete(&models.File{}, fileID).Error
}
