package services

import (
	"github.com/Viniciustertuliano/photovault/repositories"
	"github.com/Viniciustertuliano/photovault/storage"
)

type Container struct {
	Folder    FolderService
	File      FileService
	ShareLink ShareLinkService
	Gate      AccessGate
	Thumbnail ThumbnailService
}

func NewContainer(repos repositories.Container, backend storage.Backend) *Container {
	shareLinks := NewShareLinkService(repos.Folders, repos.Files, repos.ShareLinks, repos.Clients, repos.AccessLog)
	return &Container{
		Folder:    NewFolderService(repos.TxManager, repos.Photographers, repos.Folders, repos.Files, repos.ShareLinks, repos.AccessLog, backend),
		File:      NewFileService(repos.Folders, repos.Files, backend),
		ShareLink: shareLinks,
		Gate:      NewAccessGate(shareLinks, repos.Files),
		Thumbnail: NewThumbnailService(backend),
	}
}
