package repository

import (
	"context"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var ErrPhotoNotFound = dao.ErrPhotoNotFound

type GalleryDAO interface {
	Insert(ctx context.Context, photo dao.Photo) (dao.Photo, error)
	FindByID(ctx context.Context, id uint) (dao.Photo, error)
	FindAll(ctx context.Context) ([]dao.Photo, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, photoID, userID uint) (bool, error)
	Unlike(ctx context.Context, photoID, userID uint) (bool, error)
	CountLikes(ctx context.Context, photoIDs []uint) (map[uint]int, error)
	LikedBy(ctx context.Context, userID uint, photoIDs []uint) (map[uint]bool, error)
}

type GalleryRepository struct {
	dao GalleryDAO
}

func NewGalleryRepository(dao GalleryDAO) *GalleryRepository {
	return &GalleryRepository{
		dao: dao,
	}
}

func (r *GalleryRepository) Create(ctx context.Context, photo domain.Photo) (domain.Photo, error) {
	row := dao.Photo{
		Title:       photo.Title,
		Description: photo.Description,
		ImageURL:    photo.ImageURL,
		WeekNumber:  photo.WeekNumber,
	}
	if photo.ThumbnailURL != "" {
		row.ThumbnailURL = &photo.ThumbnailURL
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return photoToDomain(created), nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id uint) (domain.Photo, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return photoToDomain(found), nil
}

// FindAll lists every photo with its like count and whether viewerID liked it.
// A zero viewerID never matches a like.
func (r *GalleryRepository) FindAll(ctx context.Context, viewerID uint) ([]domain.Photo, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	ids := make([]uint, 0, len(found))
	for _, p := range found {
		ids = append(ids, p.ID)
	}

	counts, err := r.dao.CountLikes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountLikes -> %w", err)
	}

	liked, err := r.dao.LikedBy(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.LikedBy -> %w", err)
	}

	photos := make([]domain.Photo, 0, len(found))
	for _, p := range found {
		photo := photoToDomain(p)
		photo.Likes = counts[p.ID]
		photo.LikedByMe = liked[p.ID]
		photos = append(photos, photo)
	}

	return photos, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GalleryRepository) Like(ctx context.Context, photoID, userID uint) (bool, error) {
	created, err := r.dao.Like(ctx, photoID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Like -> %w", err)
	}

	return created, nil
}

func (r *GalleryRepository) Unlike(ctx context.Context, photoID, userID uint) (bool, error) {
	removed, err := r.dao.Unlike(ctx, photoID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Unlike -> %w", err)
	}

	return removed, nil
}

func photoToDomain(p dao.Photo) domain.Photo {
	photo := domain.Photo{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		WeekNumber:  p.WeekNumber,
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbnailURL != nil {
		photo.ThumbnailURL = *p.ThumbnailURL
	}

	return photo
}
