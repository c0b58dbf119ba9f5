package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

const maxMessageLength = 1000

var (
	ErrEntryNotFound  = repository.ErrEntryNotFound
	ErrInvalidMessage = errors.New("message must be between 1 and 1000 characters")
)

type GuestBookRepository interface {
	Upsert(ctx context.Context, authorID uint, message string, private bool) (domain.GuestBookEntry, error)
	FindByID(ctx context.Context, id uint) (domain.GuestBookEntry, error)
	FindVisible(ctx context.Context, viewer domain.User) ([]domain.GuestBookEntry, error)
	Update(ctx context.Context, entry domain.GuestBookEntry) (domain.GuestBookEntry, error)
	Delete(ctx context.Context, id uint) error
}

type GuestBookService struct {
	repo   GuestBookRepository
	events EventPublisher
}

func NewGuestBookService(repo GuestBookRepository, events EventPublisher) *GuestBookService {
	return &GuestBookService{
		repo:   repo,
		events: publisherOrNoop(events),
	}
}

// List returns the entries viewer may read, newest first.
func (s *GuestBookService) List(ctx context.Context, viewer domain.User) ([]domain.GuestBookEntry, error) {
	entries, err := s.repo.FindVisible(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindVisible -> %w", err)
	}

	return entries, nil
}

// Get returns a single entry. A private entry the viewer may not read is
// reported as missing.
func (s *GuestBookService) Get(ctx context.Context, viewer domain.User, id uint) (domain.GuestBookEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !entry.VisibleTo(viewer) {
		return domain.GuestBookEntry{}, ErrEntryNotFound
	}

	return entry, nil
}

// Sign writes author's entry. An identity has at most one entry, so signing
// again edits it.
func (s *GuestBookService) Sign(ctx context.Context, author domain.User, message string, private bool) (domain.GuestBookEntry, error) {
	message, err := cleanMessage(message)
	if err != nil {
		return domain.GuestBookEntry{}, err
	}

	entry, err := s.repo.Upsert(ctx, author.ID, message, private)
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventGuestBookSigned, entry.ID, author.ID))

	return entry, nil
}

// Edit rewrites the message of actor's entry. A nil private keeps the current
// visibility. Entries actor cannot read are reported as missing.
func (s *GuestBookService) Edit(ctx context.Context, actor domain.User, id uint, message string, private *bool) (domain.GuestBookEntry, error) {
	message, err := cleanMessage(message)
	if err != nil {
		return domain.GuestBookEntry{}, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !entry.VisibleTo(actor) {
		return domain.GuestBookEntry{}, ErrEntryNotFound
	}
	if !entry.EditableBy(actor) {
		return domain.GuestBookEntry{}, ErrPermissionDenied
	}

	entry.Message = message
	if private != nil {
		entry.IsPrivate = *private
	}

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return domain.GuestBookEntry{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventGuestBookSigned, updated.ID, actor.ID))

	return updated, nil
}

func (s *GuestBookService) Delete(ctx context.Context, actor domain.User, id uint) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !entry.VisibleTo(actor) {
		return ErrEntryNotFound
	}
	if !entry.DeletableBy(actor) {
		return ErrPermissionDenied
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventGuestBookDeleted, id, actor.ID))

	return nil
}

func cleanMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > maxMessageLength {
		return "", ErrInvalidMessage
	}

	return message, nil
}
