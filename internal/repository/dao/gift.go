package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrGiftNotFound = errors.New("gift not found")

type Gift struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description *string
	Price       *float64
	Link        *string

	ReservedByID *uint `gorm:"index"`
	ReservedBy   *User `gorm:"foreignKey:ReservedByID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type GiftDAO struct {
	db *gorm.DB
}

func NewGiftDAO(db *gorm.DB) *GiftDAO {
	return &GiftDAO{
		db: db,
	}
}

func (d *GiftDAO) Insert(ctx context.Context, gift Gift) (Gift, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&gift)
	if result.Error != nil {
		return Gift{}, result.Error
	}

	return gift, nil
}

func (d *GiftDAO) FindByID(ctx context.Context, id uint) (Gift, error) {
	var gift Gift

	result := d.db.WithContext(ctx).Preload("ReservedBy").First(&gift, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Gift{}, ErrGiftNotFound
		}

		return Gift{}, result.Error
	}

	return gift, nil
}

func (d *GiftDAO) FindAll(ctx context.Context) ([]Gift, error) {
	var gifts []Gift

	result := d.db.WithContext(ctx).Preload("ReservedBy").Order("created_at DESC, id DESC").Find(&gifts)
	if result.Error != nil {
		return nil, result.Error
	}

	return gifts, nil
}

// Reserve claims the gift for userID only while it is unreserved. It reports
// whether a row was updated.
func (d *GiftDAO) Reserve(ctx context.Context, id, userID uint) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Gift{}).
		Where("id = ? AND reserved_by_id IS NULL", id).
		Updates(map[string]interface{}{"reserved_by_id": userID, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Unreserve clears the reservation only when userID currently holds it.
func (d *GiftDAO) Unreserve(ctx context.Context, id, userID uint) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Gift{}).
		Where("id = ? AND reserved_by_id = ?", id, userID).
		Updates(map[string]interface{}{"reserved_by_id": nil, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (d *GiftDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Gift{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGiftNotFound
	}

	return nil
}
