package repositories

import (
	"context"

	"github.com/Viniciustertuliano/photovault/models"

	"gorm.io/gorm"
)

type GormPhotographerRepository struct {
	db *gorm.DB
}

func NewGormPhotographerRepository(db *gorm.DB) *GormPhotographerRepository {
	return &GormPhotographerRepository{db: db}
}

func (r *GormPhotographerRepository) Create(ctx context.Context, tx *gorm.DB, photographer *models.Photographer) error {
	photographer.Role = models.RolePhotographer
	return useTx(ctx, r.db, tx).Create(photographer).Error
}

func (r *GormPhotographerRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (models.Photographer, error) {
	var photographer models.Photographer
	err := useTx(ctx, r.db, tx).First(&photographer, id).Error
	return photographer, err
}

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Create(ctx context.Context, tx *gorm.DB, client *models.Client) error {
	client.Role = models.RoleClient
	return useTx(ctx, r.db, tx).Create(client).Error
}

func (r *GormClientRepository) ListByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []models.Client
	err := useTx(ctx, r.db, tx).Where("id IN ?", ids).Find(&clients).Error
	return clients, err
}
