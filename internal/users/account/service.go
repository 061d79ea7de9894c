// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/users/auth"
	"github.com/inkwell-press/inkwell/pkg/pagination"
	"github.com/inkwell-press/inkwell/pkg/pointer"
)

// # Service Layer

// Service orchestrates business logic for profile management and the
// administrative user surface.
type Service struct {
	accountRepository AccountRepository
	sessionRevoker    SessionRevoker
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(accountRepo AccountRepository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRevoker:    sessions,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
GetPublicProfile retrieves the public view of an account.

Description: Readers browsing an author's page see this filtered view
instead of the private profile.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *PublicProfile: Filtered profile data
  - error: Not found or execution failures
*/
func (service *Service) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_public_profile_failed: %w", err)
	}
	return PublicView(user), nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - ctx: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	user.DisplayName = pointer.Fallback(input.DisplayName, user.DisplayName)
	user.Bio = pointer.Fallback(input.Bio, user.Bio)

	if err := service.accountRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

/*
DeleteAccount performs an idempotent soft-deletion of a user account.

Description: Flags the account as deleted and immediately terminates all
active security sessions to force a global sign-out. Published books keep
their rows; the author reference becomes orphaned.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := service.accountRepository.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	// Force global revocation of sessions for the deleted account
	_ = service.sessionRevoker.RevokeAll(ctx, userID)

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

// # Administrative Surface

/*
ListUsers returns a paginated view of all accounts for the admin console.

Parameters:
  - ctx: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total account count
  - error: Retrieval failures
*/
func (service *Service) ListUsers(ctx context.Context, params pagination.Params) ([]*auth.User, int, error) {
	users, total, err := service.accountRepository.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_users_failed: %w", err)
	}
	return users, total, nil
}

/*
ChangeRole replaces an account's authorization role.

Description: Promoting a reader to author unlocks manuscript submission.
Admins cannot demote themselves; that would risk locking the platform out
of its own console. All of the target's sessions are revoked so access
tokens carrying the old role expire without a refresh path.

Parameters:
  - ctx: context.Context
  - actorID: string (The admin performing the change)
  - targetID: string
  - role: sec.UserRole

Returns:
  - *auth.User: The updated account
  - error: Validation or storage failures
*/
func (service *Service) ChangeRole(ctx context.Context, actorID, targetID string, role sec.UserRole) (*auth.User, error) {
	if !role.IsValid() {
		return nil, apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   "role",
			Message: "must be one of: reader, author, admin",
		})
	}

	if actorID == targetID {
		return nil, apperr.Forbidden("Admins cannot change their own role")
	}

	if err := service.accountRepository.UpdateRole(ctx, targetID, role); err != nil {
		return nil, fmt.Errorf("account_service_change_role_failed: %w", err)
	}

	// Refresh tokens minted under the old role must not outlive it.
	_ = service.sessionRevoker.RevokeAll(ctx, targetID)

	service.logger.Info("user_role_changed",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
		slog.String("role", string(role)),
	)

	return service.accountRepository.FindByID(ctx, targetID)
}

/*
RetireUser is the administrative variant of account deletion.

Parameters:
  - ctx: context.Context
  - actorID: string
  - targetID: string

Returns:
  - error: Execution failures
*/
func (service *Service) RetireUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.Forbidden("Use the profile endpoint to delete your own account")
	}

	if err := service.DeleteAccount(ctx, targetID); err != nil {
		return err
	}

	service.logger.Warn("user_retired_by_admin",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
	)

	return nil
}
