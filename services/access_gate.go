package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Viniciustertuliano/photovault/models"
	"github.com/Viniciustertuliano/photovault/repositories"

	"gorm.io/gorm"
)

// AccessGate decides whether a caller may read a stored file.
type AccessGate interface {
	// AuthorizeDownload grants access through exactly one path. A non-empty
	// shareToken is checked first and the principal is then ignored.
	AuthorizeDownload(ctx context.Context, fileID uint, shareToken string, principal *Principal) (models.File, error)
}

type accessGate struct {
	shareLinks ShareLinkService
	files      repositories.FileRepository
}

func NewAccessGate(shareLinks ShareLinkService, files repositories.FileRepository) AccessGate {
	return &accessGate{shareLinks: shareLinks, files: files}
}

func (g *accessGate) AuthorizeDownload(ctx context.Context, fileID uint, shareToken string, principal *Principal) (models.File, error) {
	if token := strings.TrimSpace(shareToken); token != "" {
		link, err := g.shareLinks.ResolveValid(ctx, token)
		if err != nil {
			return models.File{}, err
		}
		file, err := g.loadFile(ctx, fileID)
		if err != nil {
			return models.File{}, err
		}
		if file.FolderID != link.FolderID {
			return models.File{}, newForbidden("This file does not belong to the shared folder")
		}
		return file, nil
	}

	if principal.IsAuthenticated() {
		file, err := g.loadFile(ctx, fileID)
		if err != nil {
			return models.File{}, err
		}
		if !principal.Owns(file.Folder) {
			return models.File{}, newForbidden("You do not have access to this file")
		}
		return file, nil
	}

	return models.File{}, newForbidden("Access denied. Provide a valid shareToken or authenticate.")
}

func (g *accessGate) loadFile(ctx context.Context, fileID uint) (models.File, error) {
	file, err := g.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, newNotFound("File", fileID)
		}
		return models.File{}, newInternal("Could not load file", err)
	}
	return file, nil
}
