package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/api/middleware"
	"github.com/babyduj/shower-api/internal/domain"
)

var (
	guest = domain.User{ID: 1, DisplayName: "Alice", FamilyName: "Martin"}
	admin = domain.User{ID: 9, DisplayName: "Mum", FamilyName: "Martin", Admin: true}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// signedIn stands in for the JWT middleware: it marks the request as coming
// from userID, or leaves it anonymous when userID is 0.
func signedIn(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.ContextKeyUserID, userID)
		}
		ctx.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handler-test")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// knownUsers answers GetUser for guest and admin.
func knownUsers() *mockUserService {
	svc := &mockUserService{}
	svc.On("GetUser", mock.Anything, guest.ID).Return(guest, nil).Maybe()
	svc.On("GetUser", mock.Anything, admin.ID).Return(admin, nil).Maybe()
	return svc
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) SetAdmin(ctx context.Context, actor domain.User, id uint, isAdmin bool) (domain.User, error) {
	args := m.Called(ctx, actor, id, isAdmin)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, displayName, familyName, pin string) (domain.User, error) {
	args := m.Called(ctx, displayName, familyName, pin)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, displayName, familyName, pin string) (domain.User, error) {
	args := m.Called(ctx, displayName, familyName, pin)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockVoteService struct {
	mock.Mock
}

func (m *mockVoteService) CastVote(ctx context.Context, voter domain.User, gender domain.Gender) (domain.Vote, error) {
	args := m.Called(ctx, voter, gender)
	return args.Get(0).(domain.Vote), args.Error(1)
}

func (m *mockVoteService) Board(ctx context.Context, viewer domain.User, reveal bool) (domain.VoteBoard, error) {
	args := m.Called(ctx, viewer, reveal)
	return args.Get(0).(domain.VoteBoard), args.Error(1)
}

type mockResultsService struct {
	mock.Mock
}

func (m *mockResultsService) SetReveal(ctx context.Context, actor domain.User, gender domain.Gender, at time.Time) (domain.Reveal, error) {
	args := m.Called(ctx, actor, gender, at)
	return args.Get(0).(domain.Reveal), args.Error(1)
}

func (m *mockResultsService) Results(ctx context.Context) (domain.Results, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Results), args.Error(1)
}

type mockGiftService struct {
	mock.Mock
}

func (m *mockGiftService) ListGifts(ctx context.Context) (domain.GiftList, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GiftList), args.Error(1)
}

func (m *mockGiftService) CreateGift(ctx context.Context, actor domain.User, gift domain.Gift) (domain.Gift, error) {
	args := m.Called(ctx, actor, gift)
	return args.Get(0).(domain.Gift), args.Error(1)
}

func (m *mockGiftService) ReserveGift(ctx context.Context, actor domain.User, id uint) (domain.Gift, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Gift), args.Error(1)
}

func (m *mockGiftService) UnreserveGift(ctx context.Context, actor domain.User, id uint) (domain.Gift, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Gift), args.Error(1)
}

func (m *mockGiftService) DeleteGift(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockGuestBookService struct {
	mock.Mock
}

func (m *mockGuestBookService) List(ctx context.Context, viewer domain.User) ([]domain.GuestBookEntry, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).([]domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookService) Get(ctx context.Context, viewer domain.User, id uint) (domain.GuestBookEntry, error) {
	args := m.Called(ctx, viewer, id)
	return args.Get(0).(domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookService) Sign(ctx context.Context, author domain.User, message string, private bool) (domain.GuestBookEntry, error) {
	args := m.Called(ctx, author, message, private)
	return args.Get(0).(domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookService) Edit(ctx context.Context, actor domain.User, id uint, message string, private *bool) (domain.GuestBookEntry, error) {
	args := m.Called(ctx, actor, id, message, private)
	return args.Get(0).(domain.GuestBookEntry), args.Error(1)
}

func (m *mockGuestBookService) Delete(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockGalleryService struct {
	mock.Mock
}

func (m *mockGalleryService) ListPhotos(ctx context.Context, viewer domain.User) ([]domain.Photo, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *mockGalleryService) AddPhoto(ctx context.Context, actor domain.User, photo domain.Photo) (domain.Photo, error) {
	args := m.Called(ctx, actor, photo)
	return args.Get(0).(domain.Photo), args.Error(1)
}

func (m *mockGalleryService) UploadPhoto(ctx context.Context, actor domain.User, upload domain.PhotoUpload) (domain.Photo, error) {
	args := m.Called(ctx, actor, upload)
	return args.Get(0).(domain.Photo), args.Error(1)
}

func (m *mockGalleryService) DeletePhoto(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockGalleryService) Like(ctx context.Context, user domain.User, photoID uint) error {
	return m.Called(ctx, user, photoID).Error(0)
}

func (m *mockGalleryService) Unlike(ctx context.Context, user domain.User, photoID uint) error {
	return m.Called(ctx, user, photoID).Error(0)
}
