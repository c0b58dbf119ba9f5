package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/service"
)

func newGuestBookRouter(userID uint, svc GuestBookService) *gin.Engine {
	h := NewGuestBookHandler(svc, knownUsers())

	r := gin.New()
	r.Use(signedIn(userID))
	r.GET("/guestbook", h.HandleListEntries)
	r.GET("/guestbook/:entryID", h.HandleGetEntry)
	r.PUT("/guestbook/me", h.HandleSign)
	r.PATCH("/guestbook/:entryID", h.HandleEditEntry)
	r.DELETE("/guestbook/:entryID", h.HandleDeleteEntry)
	return r
}

func TestHandleListEntries_PassesViewer(t *testing.T) {
	entries := []domain.GuestBookEntry{{ID: 1, Author: guest, Message: "hello"}}

	svc := &mockGuestBookService{}
	svc.On("List", mock.Anything, domain.User{}).Return(entries, nil).Once()
	svc.On("List", mock.Anything, admin).Return(entries, nil).Once()

	rec := doJSON(t, newGuestBookRouter(0, svc), http.MethodGet, "/guestbook", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, newGuestBookRouter(admin.ID, svc), http.MethodGet, "/guestbook", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.AssertExpectations(t)
}

func TestHandleGetEntry_HiddenIsNotFound(t *testing.T) {
	svc := &mockGuestBookService{}
	svc.On("Get", mock.Anything, domain.User{}, uint(5)).Return(domain.GuestBookEntry{}, service.ErrEntryNotFound)

	rec := doJSON(t, newGuestBookRouter(0, svc), http.MethodGet, "/guestbook/5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSign(t *testing.T) {
	svc := &mockGuestBookService{}
	svc.On("Sign", mock.Anything, guest, "Congratulations!", true).
		Return(domain.GuestBookEntry{ID: 1, Author: guest, Message: "Congratulations!", IsPrivate: true}, nil)

	r := newGuestBookRouter(guest.ID, svc)

	rec := doJSON(t, r, http.MethodPut, "/guestbook/me", map[string]interface{}{"message": "Congratulations!", "is_private": true})
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.GuestBookEntry
	decode(t, rec, &got)
	assert.True(t, got.IsPrivate)

	rec = doJSON(t, r, http.MethodPut, "/guestbook/me", map[string]interface{}{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}

func TestHandleEditEntry_NotAuthor(t *testing.T) {
	svc := &mockGuestBookService{}
	svc.On("Edit", mock.Anything, guest, uint(7), "edited", (*bool)(nil)).Return(domain.GuestBookEntry{}, service.ErrPermissionDenied)

	rec := doJSON(t, newGuestBookRouter(guest.ID, svc), http.MethodPatch, "/guestbook/7", map[string]interface{}{"message": "edited"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleDeleteEntry(t *testing.T) {
	svc := &mockGuestBookService{}
	svc.On("Delete", mock.Anything, admin, uint(7)).Return(nil)
	svc.On("Delete", mock.Anything, admin, uint(8)).Return(service.ErrEntryNotFound)

	r := newGuestBookRouter(admin.ID, svc)
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, "/guestbook/7", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/guestbook/8", nil).Code)
}

func TestHandleEditEntry_PassesVisibility(t *testing.T) {
	public := false
	svc := &mockGuestBookService{}
	svc.On("Edit", mock.Anything, guest, uint(7), "now public", &public).
		Return(domain.GuestBookEntry{ID: 7, Author: guest, Message: "now public"}, nil)

	rec := doJSON(t, newGuestBookRouter(guest.ID, svc), http.MethodPatch, "/guestbook/7",
		map[string]interface{}{"message": "now public", "is_private": false})
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

// memGuestBook is an in-memory guest book used to run the handlers over the
// real service.
type memGuestBook struct {
	entries map[uint]domain.GuestBookEntry
}

func (m *memGuestBook) Upsert(_ context.Context, authorID uint, message string, private bool) (domain.GuestBookEntry, error) {
	for id, e := range m.entries {
		if e.Author.ID == authorID {
			e.Message, e.IsPrivate = message, private
			m.entries[id] = e
			return e, nil
		}
	}

	e := domain.GuestBookEntry{ID: uint(len(m.entries) + 100), Author: domain.User{ID: authorID}, Message: message, IsPrivate: private}
	m.entries[e.ID] = e
	return e, nil
}

func (m *memGuestBook) FindByID(_ context.Context, id uint) (domain.GuestBookEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return domain.GuestBookEntry{}, service.ErrEntryNotFound
	}

	return e, nil
}

func (m *memGuestBook) FindVisible(_ context.Context, viewer domain.User) ([]domain.GuestBookEntry, error) {
	var out []domain.GuestBookEntry
	for _, e := range m.entries {
		if e.VisibleTo(viewer) {
			out = append(out, e)
		}
	}

	return out, nil
}

func (m *memGuestBook) Update(_ context.Context, entry domain.GuestBookEntry) (domain.GuestBookEntry, error) {
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *memGuestBook) Delete(_ context.Context, id uint) error {
	delete(m.entries, id)
	return nil
}

func TestGuestBook_MessageOnlyEditKeepsEntryPrivate(t *testing.T) {
	repo := &memGuestBook{entries: map[uint]domain.GuestBookEntry{
		7: {ID: 7, Author: guest, Message: "secret wishes", IsPrivate: true},
	}}
	svc := service.NewGuestBookService(repo, nil)

	rec := doJSON(t, newGuestBookRouter(guest.ID, svc), http.MethodPatch, "/guestbook/7",
		map[string]interface{}{"message": "secret wishes, typo fixed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.GuestBookEntry
	decode(t, rec, &got)
	assert.True(t, got.IsPrivate)
	assert.Equal(t, "secret wishes, typo fixed", got.Message)

	rec = doJSON(t, newGuestBookRouter(0, svc), http.MethodGet, "/guestbook", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.GuestBookEntry
	decode(t, rec, &listed)
	assert.Empty(t, listed)

	assert.Equal(t, http.StatusNotFound, doJSON(t, newGuestBookRouter(0, svc), http.MethodGet, "/guestbook/7", nil).Code)
}

func TestGuestBook_HiddenEntryIsNotFoundForEveryMethod(t *testing.T) {
	repo := &memGuestBook{entries: map[uint]domain.GuestBookEntry{
		7: {ID: 7, Author: admin, Message: "for the hosts only", IsPrivate: true},
	}}
	r := newGuestBookRouter(guest.ID, service.NewGuestBookService(repo, nil))

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/guestbook/7", nil).Code)
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, r, http.MethodPatch, "/guestbook/7", map[string]interface{}{"message": "peek"}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/guestbook/7", nil).Code)

	assert.Equal(t, "for the hosts only", repo.entries[7].Message)
}
