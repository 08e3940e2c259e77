package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Viniciustertuliano/photovault/config"
	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/models"
	"github.com/Viniciustertuliano/photovault/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxShareLinkDays bounds a single expiration or renewal request.
const maxShareLinkDays = 3650

type ShareLinkDescriptor struct {
	ID             uint                  `json:"id"`
	Token          string                `json:"token"`
	ShareURL       string                `json:"shareUrl"`
	CreatedAt      time.Time             `json:"createdAt"`
	ExpirationDate *time.Time            `json:"expirationDate"`
	Active         bool                  `json:"active"`
	State          models.ShareLinkState `json:"state"`
	AccessCount    int64                 `json:"accessCount"`
	FolderID       uint                  `json:"folderId"`
	FolderName     string                `json:"folderName"`
}

type OwnerSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FolderAccess is what an anonymous holder of a share token sees.
type FolderAccess struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"createdAt"`
	Owner     OwnerSummary     `json:"owner"`
	Files     []FileDescriptor `json:"files"`
}

type ShareLinkService interface {
	Create(ctx context.Context, principal *Principal, folderID uint, expirationDays *int) (ShareLinkDescriptor, error)
	Revoke(ctx context.Context, principal *Principal, id uint) error
	Renew(ctx context.Context, principal *Principal, id uint, additionalDays int) (ShareLinkDescriptor, error)
	AccessByToken(ctx context.Context, token string, accessor *Principal) (FolderAccess, error)
	ListByFolder(ctx context.Context, principal *Principal, folderID uint) ([]ShareLinkDescriptor, error)
	RecentAccesses(ctx context.Context, principal *Principal, id uint, limit int) ([]models.ShareAccess, error)
	// ResolveValid looks a token up and checks validity without counting an access.
	ResolveValid(ctx context.Context, token string) (models.ShareLink, error)
}

type shareLinkService struct {
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	links     repositories.ShareLinkRepository
	clients   repositories.ClientRepository
	accessLog repositories.ShareAccessLogRepository
	now       func() time.Time
	newToken  func() string
}

func NewShareLinkService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	links repositories.ShareLinkRepository,
	clients repositories.ClientRepository,
	accessLog repositories.ShareAccessLogRepository,
) ShareLinkService {
	if accessLog == nil {
		accessLog = repositories.NoopShareAccessLogRepository{}
	}
	return &shareLinkService{
		folders:   folders,
		files:     files,
		links:     links,
		clients:   clients,
		accessLog: accessLog,
		now:       time.Now,
		newToken:  uuid.NewString,
	}
}

func (s *shareLinkService) Create(ctx context.Context, principal *Principal, folderID uint, expirationDays *int) (ShareLinkDescriptor, error) {
	if expirationDays != nil && *expirationDays < 1 {
		return ShareLinkDescriptor{}, newInvalidInput("Expiration days must be at least 1")
	}
	if expirationDays != nil && *expirationDays > maxShareLinkDays {
		return ShareLinkDescriptor{}, newInvalidInput(fmt.Sprintf("Expiration days must be at most %d", maxShareLinkDays))
	}

	folder, err := s.loadFolder(ctx, folderID)
	if err != nil {
		return ShareLinkDescriptor{}, err
	}
	if !principal.Owns(folder) {
		return ShareLinkDescriptor{}, newForbidden("You can only create share links for your own folders")
	}

	now := s.now()
	link := models.ShareLink{
		CreatedAt: now,
		Active:    true,
		FolderID:  folder.ID,
	}
	if expirationDays != nil {
		exp := now.AddDate(0, 0, *expirationDays)
		link.ExpirationDate = &exp
	}

	// One retry on a token collision; a second collision is not expected from UUIDv4.
	for attempt := 0; ; attempt++ {
		link.ID = 0
		link.Token = s.newToken()
		err = s.links.Create(ctx, nil, &link)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt > 0 {
			return ShareLinkDescriptor{}, newInternal("Could not create share link", err)
		}
		logger.Warn("share token collision, regenerating", zap.Uint("folder_id", folder.ID))
	}

	link.Folder = folder
	logger.Info("share link created", zap.Uint("share_link_id", link.ID), zap.Uint("folder_id", folder.ID))
	return s.describe(link), nil
}

func (s *shareLinkService) Revoke(ctx context.Context, principal *Principal, id uint) error {
	link, err := s.loadLink(ctx, id)
	if err != nil {
		return err
	}
	if !principal.Owns(link.Folder) {
		return newForbidden("You can only revoke your own share links")
	}
	if !link.Active {
		return nil
	}

	if err := s.links.Deactivate(ctx, nil, link.ID); err != nil {
		return newInternal("Could not revoke share link", err)
	}
	logger.Info("share link revoked", zap.Uint("share_link_id", link.ID))
	return nil
}

func (s *shareLinkService) Renew(ctx context.Context, principal *Principal, id uint, additionalDays int) (ShareLinkDescriptor, error) {
	if additionalDays < 1 {
		return ShareLinkDescriptor{}, newInvalidInput("Additional days must be at least 1")
	}
	if additionalDays > maxShareLinkDays {
		return ShareLinkDescriptor{}, newInvalidInput(fmt.Sprintf("Additional days must be at most %d", maxShareLinkDays))
	}

	link, err := s.loadLink(ctx, id)
	if err != nil {
		return ShareLinkDescriptor{}, err
	}
	if !principal.Owns(link.Folder) {
		return ShareLinkDescriptor{}, newForbidden("You can only renew your own share links")
	}
	if link.ExpirationDate == nil {
		return ShareLinkDescriptor{}, newInvalidInput("This link never expires and cannot be renewed")
	}

	// Extends from the stored expiration, and leaves a revoked link revoked.
	exp := link.ExpirationDate.AddDate(0, 0, additionalDays)
	if err := s.links.UpdateExpiration(ctx, nil, link.ID, exp); err != nil {
		return ShareLinkDescriptor{}, newInternal("Could not renew share link", err)
	}
	link.ExpirationDate = &exp
	return s.describe(link), nil
}

func (s *shareLinkService) ResolveValid(ctx context.Context, token string) (models.ShareLink, error) {
	token = strings.TrimSpace(token)
	link, err := s.links.GetByToken(ctx, nil, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ShareLink{}, newNotFoundBy("ShareLink", "token", token)
		}
		return models.ShareLink{}, newInternal("Could not load share link", err)
	}

	switch link.State(s.now()) {
	case models.ShareLinkRevoked:
		return models.ShareLink{}, revokedError()
	case models.ShareLinkExpired:
		return models.ShareLink{}, newForbiddenCause("This link has expired", ErrShareLinkExpired)
	}
	return link, nil
}

func (s *shareLinkService) AccessByToken(ctx context.Context, token string, accessor *Principal) (FolderAccess, error) {
	link, err := s.ResolveValid(ctx, token)
	if err != nil {
		return FolderAccess{}, err
	}

	var clientID *uint
	if accessor.IsClient() {
		id := accessor.ID
		clientID = &id
	}

	now := s.now()
	counted, err := s.links.RecordAccess(ctx, nil, link.ID, clientID, now)
	if err != nil {
		return FolderAccess{}, newInternal("Could not record share link access", err)
	}
	if !counted {
		return FolderAccess{}, revokedError()
	}

	folder, err := s.loadFolder(ctx, link.FolderID)
	if err != nil {
		return FolderAccess{}, err
	}
	files, err := s.files.ListByFolder(ctx, nil, folder.ID)
	if err != nil {
		return FolderAccess{}, newInternal("Could not list files", err)
	}

	entry := models.ShareAccess{
		ShareLinkID: link.ID,
		ClientID:    clientID,
		AccessCount: link.AccessCount + 1,
		AccessedAt:  now,
	}
	if err := s.accessLog.Append(ctx, entry); err != nil {
		logger.Warn("share access history write failed", zap.Uint("share_link_id", link.ID), zap.Error(err))
	}

	out := FolderAccess{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
		Owner:     OwnerSummary{ID: folder.Owner.ID, Name: folder.Owner.Name},
		Files:     make([]FileDescriptor, 0, len(files)),
	}
	for _, f := range files {
		out.Files = append(out.Files, describeFile(f, folder.Name, link.Token))
	}
	return out, nil
}

func (s *shareLinkService) ListByFolder(ctx context.Context, principal *Principal, folderID uint) ([]ShareLinkDescriptor, error) {
	folder, err := s.loadFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !principal.Owns(folder) {
		return nil, newForbidden("You can only view share links of your own folders")
	}

	links, err := s.links.ListByFolder(ctx, nil, folder.ID)
	if err != nil {
		return nil, newInternal("Could not list share links", err)
	}

	out := make([]ShareLinkDescriptor, 0, len(links))
	for _, link := range links {
		link.Folder = folder
		out = append(out, s.describe(link))
	}
	return out, nil
}

func (s *shareLinkService) RecentAccesses(ctx context.Context, principal *Principal, id uint, limit int) ([]models.ShareAccess, error) {
	link, err := s.loadLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.Owns(link.Folder) {
		return nil, newForbidden("You can only view access history of your own share links")
	}

	entries, err := s.accessLog.Recent(ctx, link.ID, limit)
	if err != nil {
		return nil, newInternal("Could not load access history", err)
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		if e.ClientID != nil {
			ids = append(ids, *e.ClientID)
		}
	}
	if len(ids) == 0 || s.clients == nil {
		return entries, nil
	}

	clients, err := s.clients.ListByIDs(ctx, nil, ids)
	if err != nil {
		logger.Warn("client names not resolved for access history", zap.Uint("share_link_id", link.ID), zap.Error(err))
		return entries, nil
	}
	names := make(map[uint]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	for i := range entries {
		if entries[i].ClientID != nil {
			entries[i].ClientName = names[*entries[i].ClientID]
		}
	}
	return entries, nil
}

func (s *shareLinkService) loadFolder(ctx context.Context, folderID uint) (models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Folder{}, newNotFound("Folder", folderID)
		}
		return models.Folder{}, newInternal("Could not load folder", err)
	}
	return folder, nil
}

func (s *shareLinkService) loadLink(ctx context.Context, id uint) (models.ShareLink, error) {
	link, err := s.links.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ShareLink{}, newNotFound("ShareLink", id)
		}
		return models.ShareLink{}, newInternal("Could not load share link", err)
	}
	return link, nil
}

func (s *shareLinkService) describe(link models.ShareLink) ShareLinkDescriptor {
	return ShareLinkDescriptor{
		ID:             link.ID,
		Token:          link.Token,
		ShareURL:       config.AppConfig.Share.PublicBaseURL + "/share/" + link.Token,
		CreatedAt:      link.CreatedAt,
		ExpirationDate: link.ExpirationDate,
		Active:         link.Active,
		State:          link.State(s.now()),
		AccessCount:    link.AccessCount,
		FolderID:       link.FolderID,
		FolderName:     link.Folder.Name,
	}
}

func revokedError() *AppError {
	return newForbiddenCause("This link has been revoked", ErrShareLinkRevoked)
}
