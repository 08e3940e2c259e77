package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/models"
	"github.com/Viniciustertuliano/photovault/repositories"
	"github.com/Viniciustertuliano/photovault/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FolderDescriptor struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	Owner     OwnerSummary `json:"owner"`
}

type FolderService interface {
	Create(ctx context.Context, principal *Principal, name string) (FolderDescriptor, error)
	ListOwned(ctx context.Context, principal *Principal) ([]FolderDescriptor, error)
	Get(ctx context.Context, principal *Principal, folderID uint) (FolderDescriptor, error)
	Rename(ctx context.Context, principal *Principal, folderID uint, name string) (FolderDescriptor, error)
	// Delete removes every file (bytes, then row) and aborts on the first storage
	// failure. Share links and the folder row go in one transaction afterwards.
	Delete(ctx context.Context, principal *Principal, folderID uint) error
}

type folderService struct {
	txManager     repositories.TxManager
	photographers repositories.PhotographerRepository
	folders       repositories.FolderRepository
	files         repositories.FileRepository
	links         repositories.ShareLinkRepository
	accessLog     repositories.ShareAccessLogRepository
	backend       storage.Backend
}

func NewFolderService(
	txManager repositories.TxManager,
	photographers repositories.PhotographerRepository,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	links repositories.ShareLinkRepository,
	accessLog repositories.ShareAccessLogRepository,
	backend storage.Backend,
) FolderService {
	if accessLog == nil {
		accessLog = repositories.NoopShareAccessLogRepository{}
	}
	return &folderService{
		txManager:     txManager,
		photographers: photographers,
		folders:       folders,
		files:         files,
		links:         links,
		accessLog:     accessLog,
		backend:       backend,
	}
}

func (s *folderService) Create(ctx context.Context, principal *Principal, name string) (FolderDescriptor, error) {
	if !principal.IsAuthenticated() || principal.Role != models.RolePhotographer {
		return FolderDescriptor{}, newForbidden("Only photographers can create folders")
	}
	name, err := normalizeFolderName(name)
	if err != nil {
		return FolderDescriptor{}, err
	}

	owner, err := s.photographers.GetByID(ctx, nil, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FolderDescriptor{}, newNotFound("Photographer", principal.ID)
		}
		return FolderDescriptor{}, newInternal("Could not load photographer", err)
	}

	folder := models.Folder{Name: name, OwnerID: owner.ID}
	if err := s.folders.Create(ctx, nil, &folder); err != nil {
		return FolderDescriptor{}, newInternal("Could not create folder", err)
	}
	folder.Owner = owner
	return describeFolder(folder), nil
}

func (s *folderService) ListOwned(ctx context.Context, principal *Principal) ([]FolderDescriptor, error) {
	if !principal.IsAuthenticated() || principal.Role != models.RolePhotographer {
		return nil, newForbidden("Only photographers own folders")
	}

	folders, err := s.folders.ListByOwner(ctx, nil, principal.ID)
	if err != nil {
		return nil, newInternal("Could not list folders", err)
	}
	out := make([]FolderDescriptor, 0, len(folders))
	for _, f := range folders {
		out = append(out, describeFolder(f))
	}
	return out, nil
}

func (s *folderService) Get(ctx context.Context, principal *Principal, folderID uint) (FolderDescriptor, error) {
	folder, err := s.loadOwned(ctx, principal, folderID, "You can only view your own folders")
	if err != nil {
		return FolderDescriptor{}, err
	}
	return describeFolder(folder), nil
}

func (s *folderService) Rename(ctx context.Context, principal *Principal, folderID uint, name string) (FolderDescriptor, error) {
	name, err := normalizeFolderName(name)
	if err != nil {
		return FolderDescriptor{}, err
	}
	folder, err := s.loadOwned(ctx, principal, folderID, "You can only update your own folders")
	if err != nil {
		return FolderDescriptor{}, err
	}

	if err := s.folders.UpdateName(ctx, nil, folder.ID, name); err != nil {
		return FolderDescriptor{}, newInternal("Could not update folder", err)
	}
	folder.Name = name
	return describeFolder(folder), nil
}

func (s *folderService) Delete(ctx context.Context, principal *Principal, folderID uint) error {
	folder, err := s.loadOwned(ctx, principal, folderID, "You can only delete your own folders")
	if err != nil {
		return err
	}

	files, err := s.files.ListByFolder(ctx, nil, folder.ID)
	if err != nil {
		return newInternal("Could not list files", err)
	}
	for _, f := range files {
		if err := deleteStoredFile(ctx, s.backend, s.files, f); err != nil {
			return err
		}
	}

	links, err := s.links.ListByFolder(ctx, nil, folder.ID)
	if err != nil {
		return newInternal("Could not list share links", err)
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.links.DeleteByFolder(ctx, tx, folder.ID); err != nil {
			return err
		}
		return s.folders.DeleteByID(ctx, tx, folder.ID)
	})
	if err != nil {
		return newInternal("Could not delete folder", err)
	}

	for _, link := range links {
		if err := s.accessLog.Clear(ctx, link.ID); err != nil {
			logger.Warn("share access history not cleared", zap.Uint("share_link_id", link.ID), zap.Error(err))
		}
	}

	logger.Info("folder deleted",
		zap.Uint("folder_id", folder.ID), zap.Int("files", len(files)), zap.Int("share_links", len(links)))
	return nil
}

func (s *folderService) loadOwned(ctx context.Context, principal *Principal, folderID uint, denied string) (models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Folder{}, newNotFound("Folder", folderID)
		}
		return models.Folder{}, newInternal("Could not load folder", err)
	}
	if !principal.Owns(folder) {
		return models.Folder{}, newForbidden(denied)
	}
	return folder, nil
}

func normalizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newInvalidInput("Folder name is required")
	}
	if utf8.RuneCountInString(name) > 255 {
		return "", newInvalidInput("Folder name must be at most 255 characters")
	}
	return name, nil
}

func describeFolder(folder models.Folder) FolderDescriptor {
	return FolderDescriptor{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
		Owner:     OwnerSummary{ID: folder.OwnerID, Name: folder.Owner.Name},
	}
}
