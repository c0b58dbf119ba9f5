package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEntryNotFound = errors.New("guest book entry not found")

type GuestBookEntry struct {
	ID        uint   `gorm:"primaryKey"`
	AuthorID  uint   `gorm:"not null;uniqueIndex:uni_guest_book_entries_author_id"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	Message   string `gorm:"not null"`
	IsPrivate bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (GuestBookEntry) TableName() string {
	return "guest_book_entries"
}

// Viewer is who a read is performed for. A zero ID is an anonymous visitor.
type Viewer struct {
	ID    uint
	Admin bool
}

type GuestBookDAO struct {
	db *gorm.DB
}

func NewGuestBookDAO(db *gorm.DB) *GuestBookDAO {
	return &GuestBookDAO{
		db: db,
	}
}

func (d *GuestBookDAO) Upsert(ctx context.Context, entry GuestBookEntry) (GuestBookEntry, error) {
	result := d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "author_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"message", "is_private", "updated_at"}),
		}).
		Create(&entry)
	if result.Error != nil {
		return GuestBookEntry{}, result.Error
	}

	return d.findOne(ctx, "author_id = ?", entry.AuthorID)
}

func (d *GuestBookDAO) FindByID(ctx context.Context, id uint) (GuestBookEntry, error) {
	return d.findOne(ctx, "id = ?", id)
}

// FindVisible returns the entries viewer may read. Private entries of other
// authors are filtered by the query itself and never loaded.
func (d *GuestBookDAO) FindVisible(ctx context.Context, viewer Viewer) ([]GuestBookEntry, error) {
	var entries []GuestBookEntry

	query := d.db.WithContext(ctx).Preload("Author").Order("created_at DESC, id DESC")
	if !viewer.Admin {
		query = query.Where("is_private = ? OR author_id = ?", false, viewer.ID)
	}

	result := query.Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *GuestBookDAO) Update(ctx context.Context, entry GuestBookEntry) (GuestBookEntry, error) {
	result := d.db.WithContext(ctx).Model(&GuestBookEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"message":    entry.Message,
			"is_private": entry.IsPrivate,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return GuestBookEntry{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GuestBookEntry{}, ErrEntryNotFound
	}

	return d.FindByID(ctx, entry.ID)
}

func (d *GuestBookDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&GuestBookEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (d *GuestBookDAO) findOne(ctx context.Context, query string, args ...interface{}) (GuestBookEntry, error) {
	var entry GuestBookEntry

	result := d.db.WithContext(ctx).Preload("Author").Where(query, args...).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GuestBookEntry{}, ErrEntryNotFound
		}

		return GuestBookEntry{}, result.Error
	}

	return entry, nil
}
