// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package manuscript

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/platform/validate"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// # Collaborator Ports

// BookPublisher materialises an accepted manuscript into a catalogue entry.
// The book package's Service satisfies it.
type BookPublisher interface {
	CreateBook(ctx context.Context, input book.CreateBookInput) (*book.Book, error)
}

// AuthorDirectory resolves author display names at publish time.
// The auth package's PostgresUserRepository satisfies it.
type AuthorDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// Notifier pushes editorial decisions into the author's notification inbox.
// Delivery failures are logged, never propagated: a full inbox must not
// block a publish.
type Notifier interface {
	Notify(ctx context.Context, userID, notifType, message string) error
}

// # Service Layer

// Service orchestrates the editorial pipeline for manuscripts.
type Service struct {
	manuscriptRepo Repository
	publisher      BookPublisher
	authors        AuthorDirectory
	notifier       Notifier
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its collaborator dependencies.
func NewService(
	manuscriptRepo Repository,
	publisher BookPublisher,
	authors AuthorDirectory,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		manuscriptRepo: manuscriptRepo,
		publisher:      publisher,
		authors:        authors,
		notifier:       notifier,
		logger:         logger,
	}
}

// # Author Desk

/*
ListOwn retrieves the author's manuscripts, optionally filtered by state.

Parameters:
  - ctx: context.Context
  - authorID: string
  - status: Status (Empty matches all)
  - limit, offset: Pagination window

Returns:
  - []*Manuscript: Page of manuscripts, content omitted
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListOwn(ctx context.Context, authorID string, status Status, limit, offset int) ([]*Manuscript, int, error) {
	return service.manuscriptRepo.List(ctx, Filter{AuthorID: authorID, Status: status}, limit, offset)
}

/*
Get retrieves a single manuscript with its full content.

Description: Manuscripts are private. Only the owning author and admins
may read one; everyone else sees a 404 rather than a 403 so the resource's
existence is not leaked.

Parameters:
  - ctx: context.Context
  - actorID: string
  - actorRole: sec.UserRole
  - id: int64

Returns:
  - *Manuscript: The hydrated entity
  - error: NotFound for missing rows and unauthorized readers
*/
func (service *Service) Get(ctx context.Context, actorID string, actorRole sec.UserRole, id int64) (*Manuscript, error) {
	entity, err := service.manuscriptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.AuthorID != actorID && !actorRole.AtLeast(sec.RoleAdmin) {
		return nil, apperr.NotFound("Manuscript")
	}

	return entity, nil
}

// DraftInput carries the author-editable manuscript attributes.
type DraftInput struct {
	Title      string
	Synopsis   string
	Genre      string
	Content    string
	PriceCents int64
}

// validateDraft enforces the shared attribute rules for create and update.
func validateDraft(input DraftInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 300).
		MaxLen(FieldSynopsis, input.Synopsis, 2000).
		Positive(FieldPriceCents, input.PriceCents)

	if !book.Genre(input.Genre).IsValid() {
		validator.Custom(FieldGenre, true, "is not a recognised genre")
	}

	return validator.Err()
}

// illegalTransition reports a state machine violation, naming the pair the
// caller attempted.
func illegalTransition(from, to Status) error {
	return apperr.ValidationError("Illegal manuscript status transition", apperr.FieldError{
		Field:   FieldStatus,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	})
}

/*
CreateDraft opens a new manuscript on the author's desk.

Parameters:
  - ctx: context.Context
  - authorID: string
  - input: DraftInput

Returns:
  - *Manuscript: The persisted draft with its generated ID
  - error: Validation or persistence errors
*/
func (service *Service) CreateDraft(ctx context.Context, authorID string, input DraftInput) (*Manuscript, error) {
	if err := validateDraft(input); err != nil {
		return nil, err
	}

	entity := &Manuscript{
		AuthorID:   authorID,
		Title:      input.Title,
		Synopsis:   input.Synopsis,
		Genre:      input.Genre,
		Content:    input.Content,
		PriceCents: input.PriceCents,
	}

	if err := service.manuscriptRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("manuscript_service_create_failed: %w", err)
	}

	service.logger.Info("manuscript_drafted",
		slog.Int64("manuscript_id", entity.ID),
		slog.String("author_id", authorID),
	)

	return entity, nil
}

/*
UpdateDraft replaces the content of an editable manuscript.

Description: Only drafts and revision-requested manuscripts accept edits.
Submitted and decided manuscripts are frozen.

Parameters:
  - ctx: context.Context
  - authorID: string
  - id: int64
  - input: DraftInput

Returns:
  - *Manuscript: The updated entity
  - error: Ownership, state, validation, or persistence errors
*/
func (service *Service) UpdateDraft(ctx context.Context, authorID string, id int64, input DraftInput) (*Manuscript, error) {
	entity, err := service.manuscriptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.AuthorID != authorID {
		return nil, apperr.NotFound("Manuscript")
	}

	if !entity.Status.Editable() {
		return nil, apperr.ValidationError(
			fmt.Sprintf("A %s manuscript cannot be edited", entity.Status),
			apperr.FieldError{
				Field:   FieldStatus,
				Message: fmt.Sprintf("must be %s or %s, got %s", StatusDraft, StatusRevisionRequested, entity.Status),
			})
	}

	if err := validateDraft(input); err != nil {
		return nil, err
	}

	entity.Title = input.Title
	entity.Synopsis = input.Synopsis
	entity.Genre = input.Genre
	entity.Content = input.Content
	entity.PriceCents = input.PriceCents

	if err := service.manuscriptRepo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("manuscript_service_update_failed: %w", err)
	}

	return entity, nil
}

/*
DeleteDraft withdraws an unsubmitted manuscript.

Parameters:
  - ctx: context.Context
  - authorID: string
  - id: int64

Returns:
  - error: Ownership, state, or persistence errors
*/
func (service *Service) DeleteDraft(ctx context.Context, authorID string, id int64) error {
	entity, err := service.manuscriptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if entity.AuthorID != authorID {
		return apperr.NotFound("Manuscript")
	}

	if !entity.Status.Editable() {
		return apperr.ValidationError(
			fmt.Sprintf("A %s manuscript cannot be withdrawn", entity.Status),
			apperr.FieldError{
				Field:   FieldStatus,
				Message: fmt.Sprintf("must be %s or %s, got %s", StatusDraft, StatusRevisionRequested, entity.Status),
			})
	}

	if err := service.manuscriptRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("manuscript_withdrawn", slog.Int64("manuscript_id", id))
	return nil
}

/*
Submit hands a manuscript to the editorial queue.

Description: Legal from draft and revision_requested. The guarded status
update makes a double-submit race lose with a validation error instead of
stamping twice.

Parameters:
  - ctx: context.Context
  - authorID: string
  - id: int64

Returns:
  - *Manuscript: The submitted entity
  - error: Ownership, state, or persistence errors
*/
func (service *Service) Submit(ctx context.Context, authorID string, id int64) (*Manuscript, error) {
	entity, err := service.manuscriptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.AuthorID != authorID {
		return nil, apperr.NotFound("Manuscript")
	}

	if !entity.Status.CanTransition(StatusSubmitted) {
		return nil, illegalTransition(entity.Status, StatusSubmitted)
	}

	if err := service.manuscriptRepo.UpdateStatus(ctx, id, entity.Status, StatusSubmitted, ""); err != nil {
		return nil, err
	}

	service.logger.Info("manuscript_submitted",
		slog.Int64("manuscript_id", id),
		slog.String("author_id", authorID),
	)

	return service.manuscriptRepo.FindByID(ctx, id)
}

// # Editorial Queue

/*
ListQueue retrieves manuscripts for the editorial console.

Parameters:
  - ctx: context.Context
  - filter: Filter (Status and author criteria)
  - limit, offset: Pagination window

Returns:
  - []*Manuscript: Page of manuscripts
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListQueue(ctx context.Context, filter Filter, limit, offset int) ([]*Manuscript, int, error) {
	return service.manuscriptRepo.List(ctx, filter, limit, offset)
}

/*
StartReview claims a submitted manuscript for review.

Description: The guarded transition means exactly one editor wins a
concurrent claim; the loser gets a validation error.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - *Manuscript: The claimed entity
  - error: State or persistence errors
*/
func (service *Service) StartReview(ctx context.Context, id int64) (*Manuscript, error) {
	if err := service.manuscriptRepo.UpdateStatus(ctx, id, StatusSubmitted, StatusInReview, ""); err != nil {
		return nil, err
	}

	service.logger.Info("manuscript_review_started", slog.Int64("manuscript_id", id))
	return service.manuscriptRepo.FindByID(ctx, id)
}

/*
Decide records the editorial verdict on an in-review manuscript.

Description: Legal decisions are accepted, rejected, and revision_requested.
The author is notified with the feedback note.

Parameters:
  - ctx: context.Context
  - id: int64
  - decision: Status
  - feedbackNote: string

Returns:
  - *Manuscript: The decided entity
  - error: Validation, state, or persistence errors
*/
func (service *Service) Decide(ctx context.Context, id int64, decision Status, feedbackNote string) (*Manuscript, error) {
	if !StatusInReview.CanTransition(decision) {
		return nil, apperr.ValidationError("Unknown decision", apperr.FieldError{
			Field:   FieldDecision,
			Message: "must be one of: accepted, rejected, revision_requested",
		})
	}

	if err := service.manuscriptRepo.UpdateStatus(ctx, id, StatusInReview, decision, feedbackNote); err != nil {
		return nil, err
	}

	entity, err := service.manuscriptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("manuscript_decided",
		slog.Int64("manuscript_id", id),
		slog.String("decision", string(decision)),
	)

	message := fmt.Sprintf("Your manuscript %q was %s.", entity.Title, decisionLabel(decision))
	if feedbackNote != "" {
		message += " Editor's note: " + feedbackNote
	}
	service.notifyAuthor(ctx, entity, "manuscript_decision", message)

	return entity, nil
}

/*
Publish materialises an accepted manuscript into a catalogue book.

Description: Creates the book through the shared catalogue path, links it
back to the manuscript, flips the terminal status, and notifies the author.
Publication is an explicit editorial act; acceptance alone never creates a
catalogue entry.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - *book.Book: The freshly listed catalogue entry
  - error: State, catalogue, or persistence errors
*/
func (service *Service) Publish(ctx context.Context, id int64) (*book.Book, error) {
	entity, err := service.manuscriptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.Status != StatusAccepted {
		return nil, illegalTransition(entity.Status, StatusPublished)
	}

	authorName := "Unknown Author"
	if author, err := service.authors.FindByID(ctx, entity.AuthorID); err == nil {
		authorName = author.DisplayName
		if authorName == "" {
			authorName = author.Username
		}
	}

	published, err := service.publisher.CreateBook(ctx, book.CreateBookInput{
		Title:       entity.Title,
		Description: entity.Synopsis,
		Genre:       book.Genre(entity.Genre),
		AuthorID:    &entity.AuthorID,
		AuthorName:  authorName,
		PriceCents:  entity.PriceCents,
	})
	if err != nil {
		return nil, fmt.Errorf("manuscript_service_publish_failed: %w", err)
	}

	if err := service.manuscriptRepo.SetPublished(ctx, id, published.ID); err != nil {
		// The book exists but the link-back lost a race. Surface the error;
		// the admin console can retry the link safely.
		return nil, err
	}

	service.logger.Info("manuscript_published",
		slog.Int64("manuscript_id", id),
		slog.Int64("book_id", published.ID),
	)

	service.notifyAuthor(ctx, entity, "manuscript_published",
		fmt.Sprintf("Your book %q is now live. Readers can find it in the catalogue.", published.Title),
	)

	return published, nil
}

// notifyAuthor delivers an inbox message, logging instead of failing.
func (service *Service) notifyAuthor(ctx context.Context, entity *Manuscript, notifType, message string) {
	if service.notifier == nil {
		return
	}

	if err := service.notifier.Notify(ctx, entity.AuthorID, notifType, message); err != nil {
		service.logger.Warn("manuscript_notify_failed",
			slog.Int64("manuscript_id", entity.ID),
			slog.String("error", err.Error()),
		)
	}
}

// decisionLabel renders a status as inbox-friendly prose.
func decisionLabel(decision Status) string {
	switch decision {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusRevisionRequested:
		return "returned for revision"
	default:
		return string(decision)
	}
}
