package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every failed request.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorMsg       string `json:"error,omitempty"`
	Err            error  `json:"-"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return e.ErrorMsg
}

// RenderErr aborts the request with e. Server errors are logged with the
// request id and their message is not sent to the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     http.StatusText(http.StatusBadRequest),
		ErrorMsg:       err.Error(),
		Err:            err,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     http.StatusText(http.StatusUnauthorized),
		ErrorMsg:       "wrong display name, family name or PIN",
		Err:            err,
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     http.StatusText(http.StatusUnauthorized),
		ErrorMsg:       err.Error(),
		Err:            err,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     http.StatusText(http.StatusForbidden),
		ErrorMsg:       err.Error(),
		Err:            err,
	}
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	err := fmt.Errorf("%s with %s %v not found", resource, field, value)

	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     http.StatusText(http.StatusNotFound),
		ErrorMsg:       err.Error(),
		Err:            err,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		StatusText:     http.StatusText(http.StatusConflict),
		ErrorMsg:       err.Error(),
		Err:            err,
	}
}

func ErrServiceUnavailable(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusServiceUnavailable,
		StatusText:     http.StatusText(http.StatusServiceUnavailable),
		ErrorMsg:       err.Error(),
		Err:            err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorMsg:       "internal server error",
		Err:            err,
	}
}
