package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserDAO_Insert_IdentityExists(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: identityConstraint})

	_, err := NewUserDAO(db).Insert(context.Background(), User{DisplayName: "Ana", FamilyName: "Silva", PINHash: "x"})
	assert.ErrorIs(t, err, ErrIdentityExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDAO_Insert_OtherUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_pkey"})

	_, err := NewUserDAO(db).Insert(context.Background(), User{DisplayName: "Ana", FamilyName: "Silva", PINHash: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIdentityExists)
}

func TestUserDAO_FindByNames_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(display_name\) = LOWER\(\$1\) AND LOWER\(family_name\) = LOWER\(\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserDAO(db).FindByNames(context.Background(), "ana", "silva")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDAO_UpdateLastLogin_Missing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "users" SET "last_login_at"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewUserDAO(db).UpdateLastLogin(context.Background(), 99, fixedNow)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGiftDAO_Reserve_AlreadyTaken(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "gifts" SET .* WHERE id = \$\d+ AND reserved_by_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := NewGiftDAO(db).Reserve(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftDAO_Reserve_DBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "gifts"`).WillReturnError(errors.New("db down"))

	_, err := NewGiftDAO(db).Reserve(context.Background(), 1, 2)
	assert.EqualError(t, err, "db down")
}

func TestGiftDAO_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM "gifts"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewGiftDAO(db).Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrGiftNotFound)
}

func TestGiftDAO_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "gifts"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGiftDAO(db).FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrGiftNotFound)
}

func TestGuestBookDAO_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM "guest_book_entries"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewGuestBookDAO(db).Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGalleryDAO_EmptyInputsSkipQueries(t *testing.T) {
	db, mock := newMockDB(t)
	d := NewGalleryDAO(db)

	counts, err := d.CountLikes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)

	liked, err := d.LikedBy(context.Background(), 0, []uint{1, 2})
	require.NoError(t, err)
	assert.Empty(t, liked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevealDAO_Find_NotSet(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "reveals"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewRevealDAO(db).Find(context.Background())
	assert.ErrorIs(t, err, ErrRevealNotFound)
}

func TestGuestBookDAO_FindVisible_FiltersInQuery(t *testing.T) {
	tests := []struct {
		name   string
		viewer Viewer
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name:   "guest sees public entries and their own",
			viewer: Viewer{ID: 2},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`^SELECT \* FROM "guest_book_entries" WHERE \(?is_private = \$1 OR author_id = \$2\)? ORDER BY created_at DESC, id DESC$`).
					WithArgs(false, 2).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
		{
			name:   "anonymous visitor only matches public entries",
			viewer: Viewer{},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`^SELECT \* FROM "guest_book_entries" WHERE \(?is_private = \$1 OR author_id = \$2\)? ORDER BY`).
					WithArgs(false, 0).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
		{
			name:   "admin is not filtered",
			viewer: Viewer{ID: 9, Admin: true},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`^SELECT \* FROM "guest_book_entries" ORDER BY created_at DESC, id DESC$`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.expect(mock)

			entries, err := NewGuestBookDAO(db).FindVisible(context.Background(), tt.viewer)
			require.NoError(t, err)
			assert.Empty(t, entries)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVoteDAO_Upsert_OnConflictUserID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "votes" .* ON CONFLICT \("user_id"\) DO UPDATE SET "gender"="excluded"."gender","updated_at"="excluded"."updated_at" RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(`SELECT \* FROM "votes" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "gender"}).AddRow(4, 2, "boy"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "family_name"}).AddRow(2, "Alex", "Dupont"))

	vote, err := NewVoteDAO(db).Upsert(context.Background(), Vote{UserID: 2, Gender: "boy"})
	require.NoError(t, err)
	assert.Equal(t, uint(4), vote.ID)
	assert.Equal(t, "Alex", vote.User.DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryDAO_Like_OnConflictDoNothing(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "first like", affected: 1, want: true},
		{name: "repeated like", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectExec(`INSERT INTO "photo_likes" .* ON CONFLICT DO NOTHING`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			added, err := NewGalleryDAO(db).Like(context.Background(), 3, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, added)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGalleryDAO_Unlike_RemovesOnlyThePair(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM "photo_likes" WHERE photo_id = \$1 AND user_id = \$2`).
		WithArgs(3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := NewGalleryDAO(db).Unlike(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
