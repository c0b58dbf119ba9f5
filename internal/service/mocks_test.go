package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/babyduj/shower-api/internal/domain"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthRepo) FindByNames(ctx context.Context, displayName, familyName string) (domain.User, error) {
	args := m.Called(ctx, displayName, familyName)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockAuthRepo) SetAdmin(ctx context.Context, id uint, admin bool) (domain.User, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) SetAdmin(ctx context.Context, id uint, admin bool) (domain.User, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockVoteRepo struct {
	mock.Mock
}

func (m *mockVoteRepo) Upsert(ctx context.Context, userID uint, gender domain.Gender) (domain.Vote, error) {
	args := m.Called(ctx, userID, gender)
	return args.Get(0).(domain.Vote), args.Error(1)
}

func (m *mockVoteRepo) FindAll(ctx context.Context) ([]domain.Vote, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vote), args.Error(1)
}

type mockPredictionRepo struct {
	mock.Mock
}

func (m *mockPredictionRepo) Upsert(ctx context.Context, userID uint, p domain.Prediction) (domain.Prediction, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(domain.Prediction), args.Error(1)
}

func (m *mockPredictionRepo) FindByUserID(ctx context.Context, userID uint) (domain.Prediction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Prediction), args.Error(1)
}

func (m *mockPredictionRepo) FindAll(ctx context.Context) ([]domain.Prediction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

func (m *mockPredictionRepo) Stats(ctx context.Context) (domain.PredictionStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PredictionStats), args.Error(1)
}

type mockRevealRepo struct {
	mock.Mock
}

func (m *mockRevealRepo) Save(ctx context.Context, reveal domain.Reveal) (domain.Reveal, error) {
	args := m.Called(ctx, reveal)
	return args.Get(0).(domain.Reveal), args.Error(1)
}

func (m *mockRevealRepo) Find(ctx context.Context) (domain.Reveal, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Reveal), args.Error(1)
}

type mockGiftRepo struct {
	mock.Mock
}

func (m *mockGiftRepo) Create(ctx context.Context, gift domain.Gift) (domain.Gift, error) {
	args := m.Called(ctx, gift)
	return args.Get(0).(domain.Gift), args.Error(1)
}

func (m *mockGiftRepo) FindByID(ctx context.Context, id uint) (domain.Gift, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Gift), args.Error(1)
}

func (m *mockGiftRepo) FindAll(ctx context.Context) ([]domain.Gift, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Gift), args.Error(1)
}

func (m *mockGiftRepo) Reserve(ctx context.Context, id, userID uint) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockGiftRepo) Unreserve(ctx context.Context, id, userID uint) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockGiftRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockGuestBookRepo struct {
	mock.Mock
}

func (m *mockGuestBookRepo) Upsert(ctx context.Context, authorID uint, message string, private bool) (domain.GuestBookEntry, error) {
	args := m.Called(ctx, authorID, message, private)
	return args.Get(0).(domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookRepo) FindByID(ctx context.Context, id uint) (domain.GuestBookEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookRepo) FindVisible(ctx context.Context, viewer domain.User) ([]domain.GuestBookEntry, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).([]domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookRepo) Update(ctx context.Context, entry domain.GuestBookEntry) (domain.GuestBookEntry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockGalleryRepo struct {
	mock.Mock
}

func (m *mockGalleryRepo) Create(ctx context.Context, photo domain.Photo) (domain.Photo, error) {
	args := m.Called(ctx, photo)
	return args.Get(0).(domain.Photo), args.Error(1)
}

func (m *mockGalleryRepo) FindByID(ctx context.Context, id uint) (domain.Photo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Photo), args.Error(1)
}

func (m *mockGalleryRepo) FindAll(ctx context.Context, viewerID uint) ([]domain.Photo, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *mockGalleryRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGalleryRepo) Like(ctx context.Context, photoID, userID uint) (bool, error) {
	args := m.Called(ctx, photoID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockGalleryRepo) Unlike(ctx context.Context, photoID, userID uint) (bool, error) {
	args := m.Called(ctx, photoID, userID)
	return args.Bool(0), args.Error(1)
}

type mockPhotoStore struct {
	mock.Mock
}

func (m *mockPhotoStore) StorePhoto(ctx context.Context, filename, contentType string, data []byte) (string, string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.String(1), args.Error(2)
}

type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(event domain.Event) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.EventType {
	types := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

var (
	guest = domain.User{ID: 1, DisplayName: "Alex", FamilyName: "Dupont"}
	other = domain.User{ID: 2, DisplayName: "Sam", FamilyName: "Martin"}
	admin = domain.User{ID: 9, DisplayName: "Root", FamilyName: "Admin", Admin: true}
)
