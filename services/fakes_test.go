package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/Viniciustertuliano/photovault/config"
	"github.com/Viniciustertuliano/photovault/models"
	"github.com/Viniciustertuliano/photovault/storage"

	"gorm.io/gorm"
)

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	m.calls++
	return fn(nil)
}

type fakePhotographerRepo struct {
	byID map[uint]models.Photographer
}

func newFakePhotographerRepo() *fakePhotographerRepo {
	return &fakePhotographerRepo{byID: map[uint]models.Photographer{}}
}

func (r *fakePhotographerRepo) Create(_ context.Context, _ *gorm.DB, p *models.Photographer) error {
	if p.ID == 0 {
		p.ID = uint(len(r.byID) + 1)
	}
	p.Role = models.RolePhotographer
	r.byID[p.ID] = *p
	return nil
}

func (r *fakePhotographerRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (models.Photographer, error) {
	p, ok := r.byID[id]
	if !ok {
		return models.Photographer{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeClientRepo struct {
	byID    map[uint]models.Client
	listErr error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: map[uint]models.Client{}}
}

func (r *fakeClientRepo) Create(_ context.Context, _ *gorm.DB, c *models.Client) error {
	c.Role = models.RoleClient
	r.byID[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) ListByIDs(_ context.Context, _ *gorm.DB, ids []uint) ([]models.Client, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Client
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFolderRepo struct {
	byID          map[uint]models.Folder
	photographers *fakePhotographerRepo
	nextID        uint
	getErr        error
	deleteErr     error
	deleted       []uint
}

func newFakeFolderRepo(photographers *fakePhotographerRepo) *fakeFolderRepo {
	return &fakeFolderRepo{byID: map[uint]models.Folder{}, photographers: photographers, nextID: 1}
}

func (r *fakeFolderRepo) Create(_ context.Context, _ *gorm.DB, folder *models.Folder) error {
	if folder.ID == 0 {
		folder.ID = r.nextID
		r.nextID++
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	stored := *folder
	stored.Owner = models.Photographer{}
	r.byID[folder.ID] = stored
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, _ *gorm.DB, folderID uint) (models.Folder, error) {
	if r.getErr != nil {
		return models.Folder{}, r.getErr
	}
	folder, ok := r.byID[folderID]
	if !ok {
		return models.Folder{}, gorm.ErrRecordNotFound
	}
	if r.photographers != nil {
		folder.Owner = r.photographers.byID[folder.OwnerID]
	}
	return folder, nil
}

func (r *fakeFolderRepo) ListByOwner(ctx context.Context, _ *gorm.DB, ownerID uint) ([]models.Folder, error) {
	var out []models.Folder
	for id := range r.byID {
		if r.byID[id].OwnerID == ownerID {
			f, _ := r.GetByID(ctx, nil, id)
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFolderRepo) UpdateName(_ context.Context, _ *gorm.DB, folderID uint, name string) error {
	f, ok := r.byID[folderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Name = name
	r.byID[folderID] = f
	return nil
}

func (r *fakeFolderRepo) DeleteByID(_ context.Context, _ *gorm.DB, folderID uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, folderID)
	r.deleted = append(r.deleted, folderID)
	return nil
}

type fakeFileRepo struct {
	byID      map[uint]models.File
	folders   *fakeFolderRepo
	nextID    uint
	createErr error
}

func newFakeFileRepo(folders *fakeFolderRepo) *fakeFileRepo {
	return &fakeFileRepo{byID: map[uint]models.File{}, folders: folders, nextID: 1}
}

func (r *fakeFileRepo) Create(_ context.Context, _ *gorm.DB, file *models.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	if file.ID == 0 {
		file.ID = r.nextID
		r.nextID++
	}
	stored := *file
	stored.Folder = models.Folder{}
	r.byID[file.ID] = stored
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, _ *gorm.DB, fileID uint) (models.File, error) {
	file, ok := r.byID[fileID]
	if !ok {
		return models.File{}, gorm.ErrRecordNotFound
	}
	if r.folders != nil {
		file.Folder, _ = r.folders.GetByID(ctx, nil, file.FolderID)
	}
	return file, nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, _ *gorm.DB, folderID uint) ([]models.File, error) {
	var out []models.File
	for id, f := range r.byID {
		if f.FolderID == folderID {
			full, _ := r.GetByID(ctx, nil, id)
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFileRepo) DeleteByID(_ context.Context, _ *gorm.DB, fileID uint) error {
	delete(r.byID, fileID)
	return nil
}

type fakeShareLinkRepo struct {
	byID      map[uint]models.ShareLink
	folders   *fakeFolderRepo
	nextID    uint
	createErr []error
}

func newFakeShareLinkRepo(folders *fakeFolderRepo) *fakeShareLinkRepo {
	return &fakeShareLinkRepo{byID: map[uint]models.ShareLink{}, folders: folders, nextID: 1}
}

func (r *fakeShareLinkRepo) Create(_ context.Context, _ *gorm.DB, link *models.ShareLink) error {
	if len(r.createErr) > 0 {
		err := r.createErr[0]
		r.createErr = r.createErr[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range r.byID {
		if existing.Token == link.Token {
			return gorm.ErrDuplicatedKey
		}
	}
	link.ID = r.nextID
	r.nextID++
	stored := *link
	stored.Folder = models.Folder{}
	r.byID[link.ID] = stored
	return nil
}

func (r *fakeShareLinkRepo) withFolder(ctx context.Context, link models.ShareLink) models.ShareLink {
	if r.folders != nil {
		link.Folder, _ = r.folders.GetByID(ctx, nil, link.FolderID)
	}
	return link
}

func (r *fakeShareLinkRepo) GetByID(ctx context.Context, _ *gorm.DB, id uint) (models.ShareLink, error) {
	link, ok := r.byID[id]
	if !ok {
		return models.ShareLink{}, gorm.ErrRecordNotFound
	}
	return r.withFolder(ctx, link), nil
}

func (r *fakeShareLinkRepo) GetByToken(ctx context.Context, _ *gorm.DB, token string) (models.ShareLink, error) {
	for _, link := range r.byID {
		if link.Token == token {
			return r.withFolder(ctx, link), nil
		}
	}
	return models.ShareLink{}, gorm.ErrRecordNotFound
}

func (r *fakeShareLinkRepo) ListByFolder(ctx context.Context, _ *gorm.DB, folderID uint) ([]models.ShareLink, error) {
	var out []models.ShareLink
	for _, link := range r.byID {
		if link.FolderID == folderID {
			out = append(out, r.withFolder(ctx, link))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeShareLinkRepo) Deactivate(_ context.Context, _ *gorm.DB, id uint) error {
	link := r.byID[id]
	link.Active = false
	r.byID[id] = link
	return nil
}

func (r *fakeShareLinkRepo) UpdateExpiration(_ context.Context, _ *gorm.DB, id uint, expiration time.Time) error {
	link := r.byID[id]
	link.ExpirationDate = &expiration
	r.byID[id] = link
	return nil
}

func (r *fakeShareLinkRepo) RecordAccess(_ context.Context, _ *gorm.DB, id uint, clientID *uint, at time.Time) (bool, error) {
	link, ok := r.byID[id]
	if !ok || !link.Active {
		return false, nil
	}
	link.AccessCount++
	link.LastAccessedAt = &at
	if clientID != nil {
		cid := *clientID
		link.LastClientID = &cid
	}
	r.byID[id] = link
	return true, nil
}

func (r *fakeShareLinkRepo) DeleteByFolder(_ context.Context, _ *gorm.DB, folderID uint) error {
	for id, link := range r.byID {
		if link.FolderID == folderID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeAccessLog struct {
	entries   []models.ShareAccess
	appendErr error
	cleared   []uint
}

func (l *fakeAccessLog) Append(_ context.Context, entry models.ShareAccess) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	l.entries = append([]models.ShareAccess{entry}, l.entries...)
	return nil
}

func (l *fakeAccessLog) Recent(_ context.Context, shareLinkID uint, limit int) ([]models.ShareAccess, error) {
	var out []models.ShareAccess
	for _, e := range l.entries {
		if e.ShareLinkID == shareLinkID && (limit <= 0 || len(out) < limit) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *fakeAccessLog) Clear(_ context.Context, shareLinkID uint) error {
	l.cleared = append(l.cleared, shareLinkID)
	return nil
}

type fakeBackend struct {
	objects   map[string][]byte
	putErr    error
	deleteErr map[string]error
	deletes   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{objects: map[string][]byte{}, deleteErr: map[string]error{}}
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) EnsureRoot(context.Context) error { return nil }

func (b *fakeBackend) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBackend) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := b.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *fakeBackend) Delete(_ context.Context, key string) error {
	b.deletes = append(b.deletes, key)
	if err := b.deleteErr[key]; err != nil {
		return err
	}
	if _, ok := b.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(b.objects, key)
	return nil
}

// fixture wires the fakes the way NewContainer wires real repositories.
type fixture struct {
	photographers *fakePhotographerRepo
	clients       *fakeClientRepo
	folders       *fakeFolderRepo
	files         *fakeFileRepo
	links         *fakeShareLinkRepo
	accessLog     *fakeAccessLog
	backend       *fakeBackend
	tx            *fakeTxManager
	now           time.Time
}

func newFixture() *fixture {
	config.AppConfig = &config.Config{
		Storage: config.StorageConfig{
			MaxFileSize:       10_000_000,
			AllowedExtensions: "jpg,png",
			ThumbnailDir:      "thumbnails",
		},
		Thumbnail: config.ThumbnailConfig{Width: 64, Height: 64, Quality: 80},
	}

	photographers := newFakePhotographerRepo()
	folders := newFakeFolderRepo(photographers)
	return &fixture{
		photographers: photographers,
		clients:       newFakeClientRepo(),
		folders:       folders,
		files:         newFakeFileRepo(folders),
		links:         newFakeShareLinkRepo(folders),
		accessLog:     &fakeAccessLog{},
		backend:       newFakeBackend(),
		tx:            &fakeTxManager{},
		now:           time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) addOwner(id uint, name string) {
	_ = f.photographers.Create(context.Background(), nil, &models.Photographer{ID: id, Identity: models.Identity{Name: name, Email: name + "@example.com"}})
}

func (f *fixture) addFolder(ownerID uint, name string) models.Folder {
	folder := models.Folder{Name: name, OwnerID: ownerID}
	_ = f.folders.Create(context.Background(), nil, &folder)
	return folder
}

func (f *fixture) addFile(folderID uint, name string, content string) models.File {
	file := models.File{Name: name, StoredName: name + ".stored", Size: int64(len(content)), FolderID: folderID, UploadDate: f.now}
	_ = f.files.Create(context.Background(), nil, &file)
	f.backend.objects[file.StoredName] = []byte(content)
	return file
}

func (f *fixture) fileService() *fileService {
	svc := NewFileService(f.folders, f.files, f.backend).(*fileService)
	svc.now = f.clock
	return svc
}

func (f *fixture) shareLinkService() *shareLinkService {
	svc := NewShareLinkService(f.folders, f.files, f.links, f.clients, f.accessLog).(*shareLinkService)
	svc.now = f.clock
	return svc
}

func (f *fixture) folderService() FolderService {
	return NewFolderService(f.tx, f.photographers, f.folders, f.files, f.links, f.accessLog, f.backend)
}

var errDisk = errors.New("disk failure")
