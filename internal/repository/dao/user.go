package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrIdentityExists = errors.New("identity already exists")
	ErrUserNotFound   = errors.New("user not found")
)

const identityConstraint = "uni_users_identity"

type User struct {
	ID uint `gorm:"primaryKey"`

	DisplayName string `gorm:"not null"`
	FamilyName  string `gorm:"not null"`
	PINHash     string `gorm:"column:pin_hash;not null"`
	Admin       bool   `gorm:"not null;default:false"`

	LastLoginAt *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, identityConstraint) {
			return User{}, ErrIdentityExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByNames matches both names case-insensitively. Equality on LOWER() is
// used instead of ILIKE so that '%' or '_' typed in a name are not wildcards.
func (d *UserDAO) FindByNames(ctx context.Context, displayName, familyName string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).
		Where("LOWER(display_name) = LOWER(?) AND LOWER(family_name) = LOWER(?)", displayName, familyName).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdateAdmin(ctx context.Context, id uint, admin bool) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("admin", admin)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}

	return constraint == "" || pgErr.ConstraintName == constraint
}
