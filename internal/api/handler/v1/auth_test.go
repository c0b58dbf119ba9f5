package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/config"
	"github.com/babyduj/shower-api/internal/pkg/jwthelper"
	"github.com/babyduj/shower-api/internal/service"
)

const signingKey = "handler-test-key"

func newAuthRouter(svc AuthService) *gin.Engine {
	h := NewAuthHandler(&config.APIConfig{JWTSigningKey: signingKey, JWTTTL: time.Hour}, svc)

	r := gin.New()
	r.POST("/auth/signup", h.HandleSignup)
	r.POST("/auth/login", h.HandleLogin)
	return r
}

func TestHandleSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		setup      func(svc *mockAuthService)
		wantStatus int
	}{
		{
			name: "created",
			body: map[string]string{"display_name": " Alice ", "family_name": "Martin", "pin": "1234"},
			setup: func(svc *mockAuthService) {
				svc.On("Signup", mock.Anything, "Alice", "Martin", "1234").Return(guest, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "pin must be four digits",
			body:       map[string]string{"display_name": "Alice", "family_name": "Martin", "pin": "12a4"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "name needs a letter",
			body:       map[string]string{"display_name": "1234", "family_name": "Martin", "pin": "1234"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing family name",
			body:       map[string]string{"display_name": "Alice", "pin": "1234"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "identity taken",
			body: map[string]string{"display_name": "alice", "family_name": "MARTIN", "pin": "1234"},
			setup: func(svc *mockAuthService) {
				svc.On("Signup", mock.Anything, "alice", "MARTIN", "1234").Return(guest, service.ErrIdentityExists)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := doJSON(t, newAuthRouter(svc), http.MethodPost, "/auth/signup", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSignup_IssuesToken(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Signup", mock.Anything, "Alice", "Martin", "1234").Return(guest, nil)

	rec := doJSON(t, newAuthRouter(svc), http.MethodPost, "/auth/signup",
		map[string]string{"display_name": "Alice", "family_name": "Martin", "pin": "1234"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got response.LoginResponse
	decode(t, rec, &got)
	assert.Equal(t, guest.ID, got.User.ID)
	assert.NotContains(t, rec.Body.String(), `"pin"`)

	claims, err := jwthelper.ParseToken([]byte(signingKey), got.Token)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, claims.UserID)
	assert.Equal(t, "handler-test", claims.UserAgent)
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "wrong credentials", err: service.ErrWrongCredentials, wantStatus: http.StatusUnauthorized},
		{name: "database down", err: fmt.Errorf("s.repo.FindByNames -> %w", assert.AnError), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			svc.On("Login", mock.Anything, "Alice", "Martin", "1234").Return(guest, tt.err)

			rec := doJSON(t, newAuthRouter(svc), http.MethodPost, "/auth/login",
				map[string]string{"display_name": "Alice", "family_name": "Martin", "pin": "1234"})
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
			}
		})
	}
}
