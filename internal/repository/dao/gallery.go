package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPhotoNotFound = errors.New("photo not found")

type Photo struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"not null;default:''"`
	ImageURL     string `gorm:"column:image_url;not null"`
	ThumbnailURL *string
	WeekNumber   int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Photo) TableName() string {
	return "gallery_photos"
}

type PhotoLike struct {
	PhotoID   uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

type GalleryDAO struct {
	db *gorm.DB
}

func NewGalleryDAO(db *gorm.DB) *GalleryDAO {
	return &GalleryDAO{
		db: db,
	}
}

func (d *GalleryDAO) Insert(ctx context.Context, photo Photo) (Photo, error) {
	result := d.db.WithContext(ctx).Create(&photo)
	if result.Error != nil {
		return Photo{}, result.Error
	}

	return photo, nil
}

func (d *GalleryDAO) FindByID(ctx context.Context, id uint) (Photo, error) {
	var photo Photo

	result := d.db.WithContext(ctx).First(&photo, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Photo{}, ErrPhotoNotFound
		}

		return Photo{}, result.Error
	}

	return photo, nil
}

func (d *GalleryDAO) FindAll(ctx context.Context) ([]Photo, error) {
	var photos []Photo

	result := d.db.WithContext(ctx).Order("week_number DESC, created_at DESC, id DESC").Find(&photos)
	if result.Error != nil {
		return nil, result.Error
	}

	return photos, nil
}

func (d *GalleryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Photo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}

	return nil
}

// Like records a like once. created is false when the pair already existed.
func (d *GalleryDAO) Like(ctx context.Context, photoID, userID uint) (bool, error) {
	like := PhotoLike{PhotoID: photoID, UserID: userID}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Unlike removes exactly the (photo, user) pair and reports whether it existed.
func (d *GalleryDAO) Unlike(ctx context.Context, photoID, userID uint) (bool, error) {
	result := d.db.WithContext(ctx).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Delete(&PhotoLike{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

type likeCount struct {
	PhotoID uint
	Likes   int
}

func (d *GalleryDAO) CountLikes(ctx context.Context, photoIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(photoIDs))
	if len(photoIDs) == 0 {
		return counts, nil
	}

	var rows []likeCount
	result := d.db.WithContext(ctx).Model(&PhotoLike{}).
		Select("photo_id, COUNT(*) AS likes").
		Where("photo_id IN ?", photoIDs).
		Group("photo_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		counts[row.PhotoID] = row.Likes
	}

	return counts, nil
}

func (d *GalleryDAO) LikedBy(ctx context.Context, userID uint, photoIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if userID == 0 || len(photoIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	result := d.db.WithContext(ctx).Model(&PhotoLike{}).
		Where("user_id = ? AND photo_id IN ?", userID, photoIDs).
		Pluck("photo_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}
