package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVoteNotFound = errors.New("vote not found")

type Vote struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:uni_votes_user_id"`
	User   User   `gorm:"foreignKey:UserID"`
	Gender string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

// Upsert writes the identity's vote in a single statement keyed by user_id.
func (d *VoteDAO) Upsert(ctx context.Context, vote Vote) (Vote, error) {
	result := d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"gender", "updated_at"}),
		}).
		Create(&vote)
	if result.Error != nil {
		return Vote{}, result.Error
	}

	return d.FindByUserID(ctx, vote.UserID)
}

func (d *VoteDAO) FindByUserID(ctx context.Context, userID uint) (Vote, error) {
	var vote Vote

	result := d.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vote{}, ErrVoteNotFound
		}

		return Vote{}, result.Error
	}

	return vote, nil
}

func (d *VoteDAO) FindAll(ctx context.Context) ([]Vote, error) {
	var votes []Vote

	result := d.db.WithContext(ctx).Preload("User").Order("updated_at DESC, id DESC").Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}
