package repository

import (
	"context"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var ErrEntryNotFound = dao.ErrEntryNotFound

type GuestBookDAO interface {
	Upsert(ctx context.Context, entry dao.GuestBookEntry) (dao.GuestBookEntry, error)
	FindByID(ctx context.Context, id uint) (dao.GuestBookEntry, error)
	FindVisible(ctx context.Context, viewer dao.Viewer) ([]dao.GuestBookEntry, error)
	Update(ctx context.Context, entry dao.GuestBookEntry) (dao.GuestBookEntry, error)
	Delete(ctx context.Context, id uint) error
}

type GuestBookRepository struct {
	dao GuestBookDAO
}

func NewGuestBookRepository(dao GuestBookDAO) *GuestBookRepository {
	return &GuestBookRepository{
		dao: dao,
	}
}

func (r *GuestBookRepository) Upsert(ctx context.Context, authorID uint, message string, private bool) (domain.GuestBookEntry, error) {
	saved, err := r.dao.Upsert(ctx, dao.GuestBookEntry{
		AuthorID:  authorID,
		Message:   message,
		IsPrivate: private,
	})
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return entryToDomain(saved), nil
}

func (r *GuestBookRepository) FindByID(ctx context.Context, id uint) (domain.GuestBookEntry, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return entryToDomain(found), nil
}

// FindVisible returns only the entries viewer is allowed to read.
func (r *GuestBookRepository) FindVisible(ctx context.Context, viewer domain.User) ([]domain.GuestBookEntry, error) {
	found, err := r.dao.FindVisible(ctx, dao.Viewer{ID: viewer.ID, Admin: viewer.Admin})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindVisible -> %w", err)
	}

	entries := make([]domain.GuestBookEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, entryToDomain(e))
	}

	return entries, nil
}

func (r *GuestBookRepository) Update(ctx context.Context, entry domain.GuestBookEntry) (domain.GuestBookEntry, error) {
	updated, err := r.dao.Update(ctx, dao.GuestBookEntry{
		ID:        entry.ID,
		Message:   entry.Message,
		IsPrivate: entry.IsPrivate,
	})
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return entryToDomain(updated), nil
}

func (r *GuestBookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func entryToDomain(e dao.GuestBookEntry) domain.GuestBookEntry {
	return domain.GuestBookEntry{
		ID:        e.ID,
		Author:    publicUser(e.Author),
		Message:   e.Message,
		IsPrivate: e.IsPrivate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
