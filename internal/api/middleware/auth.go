package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/pkg/jwthelper"
)

const ContextKeyUserID = "userID"

var (
	errMissingToken      = errors.New("missing bearer token")
	errUserAgentMismatch = errors.New("token was issued to a different client")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		a.identify(ctx, token)
	}
}

// IdentifyJWT lets anonymous requests through but still rejects a token that
// is present and invalid.
func (a *Authenticator) IdentifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		a.identify(ctx, token)
	}
}

func (a *Authenticator) identify(ctx *gin.Context, token string) {
	claims, err := jwthelper.ParseToken(a.signingKey, token)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))
		return
	}

	if claims.UserAgent != ctx.Request.UserAgent() {
		response.RenderErr(ctx, response.ErrUnauthorized(errUserAgentMismatch))
		return
	}

	ctx.Set(ContextKeyUserID, claims.UserID)
	ctx.Next()
}

// UserIDFromContext returns the id stored by VerifyJWT or IdentifyJWT.
func UserIDFromContext(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}

	id, ok := v.(uint)

	return id, ok && id != 0
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
