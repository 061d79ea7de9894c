// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package notification

import (
	"context"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
)

// Service manages the per-user inbox.
type Service struct {
	notificationRepo Repository
	logger           *slog.Logger
}

// NewService constructs a new [Service].
func NewService(notificationRepo Repository, logger *slog.Logger) *Service {
	return &Service{notificationRepo: notificationRepo, logger: logger}
}

/*
Notify drops a message into a user's inbox.

Description: This is the emission path the manuscript and order domains
call through their Notifier ports.

Parameters:
  - ctx: context.Context
  - userID: string (The recipient)
  - notifType: string (Machine-readable tag, e.g. order_completed)
  - message: string

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) Notify(ctx context.Context, userID, notifType, message string) error {
	_, err := service.create(ctx, userID, notifType, message)
	return err
}

// create validates and inserts one inbox entry.
func (service *Service) create(ctx context.Context, userID, notifType, message string) (*Notification, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUserID, userID).
		Required(FieldType, notifType).
		Required(FieldMessage, message).MaxLen(FieldMessage, message, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entity := &Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}

	if err := service.notificationRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
ListInbox retrieves the caller's notifications, newest first.

Parameters:
  - ctx: context.Context
  - userID: string
  - limit, offset: Pagination window

Returns:
  - []*Notification: Page of inbox entries
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListInbox(ctx context.Context, userID string, limit, offset int) ([]*Notification, int, error) {
	return service.notificationRepo.ListForUser(ctx, userID, limit, offset)
}

/*
MarkRead stamps one of the caller's notifications as read.

Description: Ownership is checked before the write; a foreign notification
answers NOT_FOUND so IDs leak nothing. Marking an already-read entry keeps
the original read timestamp.

Parameters:
  - ctx: context.Context
  - userID: string (The caller)
  - id: int64

Returns:
  - *Notification: The updated entry
  - error: NotFound or persistence errors
*/
func (service *Service) MarkRead(ctx context.Context, userID string, id int64) (*Notification, error) {
	entity, err := service.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.UserID != userID {
		return nil, apperr.NotFound("Notification")
	}

	if err := service.notificationRepo.MarkRead(ctx, id); err != nil {
		return nil, err
	}

	return service.notificationRepo.FindByID(ctx, id)
}

// # Admin Console

// CreateInput carries an admin-authored announcement.
type CreateInput struct {
	UserID  string
	Type    string
	Message string
}

// AdminCreate inserts a notification on behalf of an admin.
func (service *Service) AdminCreate(ctx context.Context, input CreateInput) (*Notification, error) {
	entity, err := service.create(ctx, input.UserID, input.Type, input.Message)
	if err != nil {
		return nil, err
	}

	service.logger.Info("notification_created",
		slog.Int64("notification_id", entity.ID),
		slog.String("user_id", input.UserID),
		slog.String("type", input.Type),
	)

	return entity, nil
}

// AdminDelete removes an inbox entry.
func (service *Service) AdminDelete(ctx context.Context, id int64) error {
	return service.notificationRepo.Delete(ctx, id)
}
