package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

var (
	ErrPhotoNotFound   = repository.ErrPhotoNotFound
	ErrInvalidPhoto    = errors.New("invalid photo")
	ErrUploadsDisabled = errors.New("photo uploads are not configured")
)

type GalleryRepository interface {
	Create(ctx context.Context, photo domain.Photo) (domain.Photo, error)
	FindByID(ctx context.Context, id uint) (domain.Photo, error)
	FindAll(ctx context.Context, viewerID uint) ([]domain.Photo, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, photoID, userID uint) (bool, error)
	Unlike(ctx context.Context, photoID, userID uint) (bool, error)
}

// PhotoStore keeps uploaded images and returns their public URLs.
type PhotoStore interface {
	StorePhoto(ctx context.Context, filename, contentType string, data []byte) (imageURL, thumbnailURL string, err error)
}

type GalleryService struct {
	repo   GalleryRepository
	store  PhotoStore
	events EventPublisher
}

// NewGalleryService wires the gallery. store may be nil, in which case only
// photos with an external URL can be added.
func NewGalleryService(repo GalleryRepository, store PhotoStore, events EventPublisher) *GalleryService {
	return &GalleryService{
		repo:   repo,
		store:  store,
		events: publisherOrNoop(events),
	}
}

func (s *GalleryService) ListPhotos(ctx context.Context, viewer domain.User) ([]domain.Photo, error) {
	photos, err := s.repo.FindAll(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return photos, nil
}

func (s *GalleryService) AddPhoto(ctx context.Context, actor domain.User, photo domain.Photo) (domain.Photo, error) {
	if !actor.Admin {
		return domain.Photo{}, ErrPermissionDenied
	}

	photo.Title = strings.TrimSpace(photo.Title)
	photo.ImageURL = strings.TrimSpace(photo.ImageURL)
	if photo.ImageURL == "" {
		return domain.Photo{}, fmt.Errorf("%w: image url is required", ErrInvalidPhoto)
	}
	if err := checkPhoto(photo.Title, photo.WeekNumber); err != nil {
		return domain.Photo{}, err
	}

	return s.create(ctx, actor, photo)
}

// UploadPhoto stores the image and its thumbnail, then records the photo.
func (s *GalleryService) UploadPhoto(ctx context.Context, actor domain.User, upload domain.PhotoUpload) (domain.Photo, error) {
	if !actor.Admin {
		return domain.Photo{}, ErrPermissionDenied
	}
	if s.store == nil {
		return domain.Photo{}, ErrUploadsDisabled
	}

	upload.Title = strings.TrimSpace(upload.Title)
	if err := checkPhoto(upload.Title, upload.WeekNumber); err != nil {
		return domain.Photo{}, err
	}
	if len(upload.Data) == 0 {
		return domain.Photo{}, fmt.Errorf("%w: image file is empty", ErrInvalidPhoto)
	}
	if upload.ContentType != "image/jpeg" && upload.ContentType != "image/png" {
		return domain.Photo{}, fmt.Errorf("%w: only JPEG and PNG images are accepted, got %s", ErrInvalidPhoto, upload.ContentType)
	}

	imageURL, thumbURL, err := s.store.StorePhoto(ctx, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("s.store.StorePhoto -> %w", err)
	}

	return s.create(ctx, actor, domain.Photo{
		Title:        upload.Title,
		Description:  strings.TrimSpace(upload.Description),
		ImageURL:     imageURL,
		ThumbnailURL: thumbURL,
		WeekNumber:   upload.WeekNumber,
	})
}

func (s *GalleryService) DeletePhoto(ctx context.Context, actor domain.User, id uint) error {
	if !actor.Admin {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventPhotoDeleted, id, actor.ID))

	return nil
}

// Like is idempotent: liking twice keeps a single like.
func (s *GalleryService) Like(ctx context.Context, user domain.User, photoID uint) error {
	if _, err := s.repo.FindByID(ctx, photoID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.Like(ctx, photoID, user.ID)
	if err != nil {
		return fmt.Errorf("s.repo.Like -> %w", err)
	}

	if created {
		s.events.Publish(newEvent(domain.EventPhotoLiked, photoID, user.ID))
	}

	return nil
}

// Unlike removes the user's like if there is one.
func (s *GalleryService) Unlike(ctx context.Context, user domain.User, photoID uint) error {
	removed, err := s.repo.Unlike(ctx, photoID, user.ID)
	if err != nil {
		return fmt.Errorf("s.repo.Unlike -> %w", err)
	}

	if removed {
		s.events.Publish(newEvent(domain.EventPhotoUnliked, photoID, user.ID))
	}

	return nil
}

func (s *GalleryService) create(ctx context.Context, actor domain.User, photo domain.Photo) (domain.Photo, error) {
	created, err := s.repo.Create(ctx, photo)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventPhotoAdded, created.ID, actor.ID))

	return created, nil
}

func checkPhoto(title string, week int) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPhoto)
	}
	if week < domain.MinPregnancyWeek || week > domain.MaxPregnancyWeek {
		return fmt.Errorf("%w: week must be between %d and %d", ErrInvalidPhoto, domain.MinPregnancyWeek, domain.MaxPregnancyWeek)
	}

	return nil
}
