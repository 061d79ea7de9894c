// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package contact

import (
	"context"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/platform/validate"
)

// Service handles contact form submissions and their admin console.
type Service struct {
	contactRepo Repository
	logger      *slog.Logger
}

// NewService constructs a new [Service].
func NewService(contactRepo Repository, logger *slog.Logger) *Service {
	return &Service{contactRepo: contactRepo, logger: logger}
}

// SubmitInput carries the public form's fields.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

/*
Submit records a contact form submission.

Parameters:
  - ctx: context.Context
  - input: SubmitInput

Returns:
  - *Contact: The stored submission
  - error: Validation or persistence errors
*/
func (service *Service) Submit(ctx context.Context, input SubmitInput) (*Contact, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).Email(FieldEmail, input.Email).
		Required(FieldSubject, input.Subject).MaxLen(FieldSubject, input.Subject, 200).
		Required(FieldBody, input.Body).MaxLen(FieldBody, input.Body, 5000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entity := &Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	}

	if err := service.contactRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	service.logger.Info("contact_submitted", slog.Int64("contact_id", entity.ID))
	return entity, nil
}

// AdminList returns a page of submissions for the support console.
func (service *Service) AdminList(ctx context.Context, limit, offset int) ([]*Contact, int, error) {
	return service.contactRepo.List(ctx, limit, offset)
}

// AdminDelete removes a handled submission.
func (service *Service) AdminDelete(ctx context.Context, id int64) error {
	return service.contactRepo.Delete(ctx, id)
}
