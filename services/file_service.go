package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Viniciustertuliano/photovault/config"
	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/models"
	"github.com/Viniciustertuliano/photovault/repositories"
	"github.com/Viniciustertuliano/photovault/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FileDescriptor struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	UploadDate  time.Time `json:"uploadDate"`
	FolderID    uint      `json:"folderId"`
	FolderName  string    `json:"folderName"`
	DownloadURL string    `json:"downloadUrl"`
}

// FileContent is an opened stored file. The caller closes Body.
type FileContent struct {
	File models.File
	Body io.ReadCloser
}

type FileService interface {
	Upload(ctx context.Context, principal *Principal, folderID uint, content io.Reader, originalName string, declaredSize int64, contentType string) (FileDescriptor, error)
	ListByFolder(ctx context.Context, folderID uint) ([]FileDescriptor, error)
	Read(ctx context.Context, fileID uint) (FileContent, error)
	Delete(ctx context.Context, principal *Principal, fileID uint) error
}

type fileService struct {
	folders repositories.FolderRepository
	files   repositories.FileRepository
	backend storage.Backend
	now     func() time.Time
}

func NewFileService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	backend storage.Backend,
) FileService {
	return &fileService{
		folders: folders,
		files:   files,
		backend: backend,
		now:     time.Now,
	}
}

func (s *fileService) Upload(ctx context.Context, principal *Principal, folderID uint, content io.Reader, originalName string, declaredSize int64, contentType string) (FileDescriptor, error) {
	if content == nil || declaredSize == 0 {
		return FileDescriptor{}, newInvalidInput("File cannot be empty")
	}

	name := sanitizeFilename(originalName)
	ext := extensionOf(name)
	if !isExtensionAllowed(ext) {
		allowed := config.AppConfig.Storage.AllowedExtensionList()
		return FileDescriptor{}, newInvalidInput("File type not allowed. Allowed types: " + strings.Join(allowed, ", "))
	}

	maxSize := config.AppConfig.Storage.MaxFileSize
	if maxSize > 0 && declaredSize > maxSize {
		return FileDescriptor{}, sizeExceeded(maxSize)
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FileDescriptor{}, newNotFound("Folder", folderID)
		}
		return FileDescriptor{}, newInternal("Could not load folder", err)
	}
	if !principal.Owns(folder) {
		return FileDescriptor{}, newForbidden("You can only upload files to your own folders")
	}

	reader := bufio.NewReader(content)
	if _, err := reader.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return FileDescriptor{}, newInvalidInput("File cannot be empty")
		}
		return FileDescriptor{}, newStorageFailure("Could not read uploaded file "+name, err)
	}

	storedName := uuid.NewString() + "." + strings.ToLower(ext)
	var body io.Reader = reader
	if maxSize > 0 {
		body = io.LimitReader(reader, maxSize+1)
	}
	counter := &countingReader{r: body}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = getMimeType(ext)
	}

	if err := s.backend.Put(ctx, storedName, counter, declaredSize, contentType); err != nil {
		return FileDescriptor{}, newStorageFailure("Could not store file "+name, err)
	}
	if maxSize > 0 && counter.n > maxSize {
		if err := s.backend.Delete(ctx, storedName); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			logger.Warn("oversized upload could not be removed", zap.String("stored_name", storedName), zap.Error(err))
		}
		return FileDescriptor{}, sizeExceeded(maxSize)
	}

	file := models.File{
		Name:        name,
		StoredName:  storedName,
		Size:        counter.n,
		ContentType: contentType,
		FolderID:    folder.ID,
		UploadDate:  s.now(),
	}
	if err := s.files.Create(ctx, nil, &file); err != nil {
		logger.Warn("file metadata not saved, stored object left behind",
			zap.String("stored_name", storedName), zap.Uint("folder_id", folder.ID), zap.Error(err))
		return FileDescriptor{}, newStorageFailure("Could not save file metadata", err)
	}

	logger.Debugf("file %d stored as %s in folder %d", file.ID, storedName, folder.ID)
	return describeFile(file, folder.Name, ""), nil
}

func (s *fileService) ListByFolder(ctx context.Context, folderID uint) ([]FileDescriptor, error) {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("Folder", folderID)
		}
		return nil, newInternal("Could not load folder", err)
	}

	files, err := s.files.ListByFolder(ctx, nil, folder.ID)
	if err != nil {
		return nil, newInternal("Could not list files", err)
	}

	out := make([]FileDescriptor, 0, len(files))
	for _, f := range files {
		out = append(out, describeFile(f, folder.Name, ""))
	}
	return out, nil
}

func (s *fileService) Read(ctx context.Context, fileID uint) (FileContent, error) {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return FileContent{}, err
	}

	body, err := s.backend.Open(ctx, file.StoredName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return FileContent{}, newStorageFailure("Stored object is missing for file: "+file.Name, err)
		}
		return FileContent{}, newStorageFailure("Could not read file: "+file.Name, err)
	}
	return FileContent{File: file, Body: body}, nil
}

func (s *fileService) Delete(ctx context.Context, principal *Principal, fileID uint) error {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return err
	}
	if !principal.Owns(file.Folder) {
		return newForbidden("You can only delete your own files")
	}
	return deleteStoredFile(ctx, s.backend, s.files, file)
}

func (s *fileService) loadFile(ctx context.Context, fileID uint) (models.File, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, newNotFound("File", fileID)
		}
		return models.File{}, newInternal("Could not load file", err)
	}
	return file, nil
}

// deleteStoredFile removes the cached thumbnail and the object, then the row.
// An object that is already gone counts as deleted; any other storage error
// keeps the row.
func deleteStoredFile(ctx context.Context, backend storage.Backend, files repositories.FileRepository, file models.File) error {
	for _, key := range []string{thumbnailKey(file.StoredName), file.StoredName} {
		if err := backend.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return newStorageFailure("Could not delete file: "+file.Name, err)
		}
	}

	if err := files.DeleteByID(ctx, nil, file.ID); err != nil {
		return newInternal("Could not delete file metadata", err)
	}
	logger.Debugf("file %d deleted from folder %d", file.ID, file.FolderID)
	return nil
}

func describeFile(file models.File, folderName string, shareToken string) FileDescriptor {
	if folderName == "" {
		folderName = file.Folder.Name
	}
	url := fmt.Sprintf("/files/%d", file.ID)
	if shareToken != "" {
		url += "?shareToken=" + shareToken
	}
	return FileDescriptor{
		ID:          file.ID,
		Name:        file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
		UploadDate:  file.UploadDate,
		FolderID:    file.FolderID,
		FolderName:  folderName,
		DownloadURL: url,
	}
}

func sizeExceeded(maxSize int64) *AppError {
	return newInvalidInput(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxSize/(1024*1024)))
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
