package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babyduj/shower-api/internal/api/handler/v1/request"
	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/service"
)

const uploadFormField = "image"

type GalleryService interface {
	ListPhotos(ctx context.Context, viewer domain.User) ([]domain.Photo, error)
	AddPhoto(ctx context.Context, actor domain.User, photo domain.Photo) (domain.Photo, error)
	UploadPhoto(ctx context.Context, actor domain.User, upload domain.PhotoUpload) (domain.Photo, error)
	DeletePhoto(ctx context.Context, actor domain.User, id uint) error
	Like(ctx context.Context, user domain.User, photoID uint) error
	Unlike(ctx context.Context, user domain.User, photoID uint) error
}

type GalleryHandler struct {
	svc            GalleryService
	uSvc           UserService
	maxUploadBytes int64
}

func NewGalleryHandler(svc GalleryService, uSvc UserService, maxUploadBytes int64) *GalleryHandler {
	return &GalleryHandler{
		svc:            svc,
		uSvc:           uSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleListPhotos godoc
// @Summary      List gallery photos
// @Description  Ordered by pregnancy week, latest first, with like counts.
// @Tags         gallery
// @Produce      json
// @Success      200  {array}   domain.Photo
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery [get]
func (h *GalleryHandler) HandleListPhotos(ctx *gin.Context) {
	viewer, respErr := viewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	photos, err := h.svc.ListPhotos(ctx.Request.Context(), viewer)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPhotos -> h.svc.ListPhotos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, photos)
}

// HandleAddPhoto godoc
// @Summary      Add a photo hosted elsewhere
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddPhotoRequest  true  "request body"
// @Success      201      {object}  domain.Photo
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /gallery [post]
// @Security     BearerAuth
func (h *GalleryHandler) HandleAddPhoto(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddPhotoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photo, err := h.svc.AddPhoto(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		h.renderWriteErr(ctx, "HandleAddPhoto", err)
		return
	}

	ctx.JSON(http.StatusCreated, photo)
}

// HandleUploadPhoto godoc
// @Summary      Upload a photo
// @Description  Stores the image and a thumbnail in object storage. Returns 503 when storage is not configured.
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        week_number  formData  int     true   "Pregnancy week"
// @Param        image        formData  file    true   "JPEG or PNG image"
// @Success      201          {object}  domain.Photo
// @Failure      400          {object}  response.Err
// @Failure      401          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      503          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /gallery/upload [post]
// @Security     BearerAuth
func (h *GalleryHandler) HandleUploadPhoto(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if h.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxUploadBytes)
	}

	var req request.UploadPhotoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	header, err := ctx.FormFile(uploadFormField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s: %w", uploadFormField, err)))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	photo, err := h.svc.UploadPhoto(ctx.Request.Context(), actor, domain.PhotoUpload{
		Title:       req.Title,
		Description: req.Description,
		WeekNumber:  req.WeekNumber,
		Filename:    header.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	})
	if err != nil {
		h.renderWriteErr(ctx, "HandleUploadPhoto", err)
		return
	}

	ctx.JSON(http.StatusCreated, photo)
}

// HandleDeletePhoto godoc
// @Summary      Delete a photo
// @Tags         gallery
// @Param        photoID  path  int  true  "Photo ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{photoID} [delete]
// @Security     BearerAuth
func (h *GalleryHandler) HandleDeletePhoto(ctx *gin.Context) {
	h.handlePhotoAction(ctx, "HandleDeletePhoto", h.svc.DeletePhoto)
}

// HandleLike godoc
// @Summary      Like a photo
// @Description  Liking twice keeps a single like.
// @Tags         gallery
// @Param        photoID  path  int  true  "Photo ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{photoID}/like [put]
// @Security     BearerAuth
func (h *GalleryHandler) HandleLike(ctx *gin.Context) {
	h.handlePhotoAction(ctx, "HandleLike", h.svc.Like)
}

// HandleUnlike godoc
// @Summary      Remove my like
// @Tags         gallery
// @Param        photoID  path  int  true  "Photo ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gallery/{photoID}/like [delete]
// @Security     BearerAuth
func (h *GalleryHandler) HandleUnlike(ctx *gin.Context) {
	h.handlePhotoAction(ctx, "HandleUnlike", h.svc.Unlike)
}

func (h *GalleryHandler) handlePhotoAction(ctx *gin.Context, name string, action func(context.Context, domain.User, uint) error) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	photoID, respErr := parseID(ctx, "photoID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := action(ctx.Request.Context(), user, photoID); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("photo", "ID", photoID))
			return
		}

		h.renderWriteErr(ctx, name, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *GalleryHandler) renderWriteErr(ctx *gin.Context, name string, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrInvalidPhoto):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrUploadsDisabled):
		response.RenderErr(ctx, response.ErrServiceUnavailable(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", name, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
