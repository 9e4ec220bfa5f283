package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vuhoang/dev-connector/adapters/event"
	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/internal/domain/user"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

type DeleteProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	cache       profile.Cache
	events      EventPublisher
	logger      logger.Logger
}

func NewDeleteProfileUseCase(pRepo profile.Repository, uRepo user.Repository, cache profile.Cache, events EventPublisher, log logger.Logger) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

// DeleteProfile removes the caller's profile only; the user account
// stays so they can log in and start over. Deleting an absent profile
// is a no-op success, matching the legacy API.
func (uc *DeleteProfileUseCase) DeleteProfile(ctx context.Context, ownerID uuid.UUID) error {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := uc.profileRepo.Delete(ctx, ownerID); err != nil {
		return err
	}

	invalidateCache(ctx, uc.cache, uc.logger, p.Handle)
	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeDeleted,
		OwnerID:   ownerID,
		Handle:    p.Handle,
	})
	return nil
}

// DeleteAccount removes the profile and then the user account. There
// is no compensation if the second delete fails after the first
// succeeded; the fault is reported as a storage error.
func (uc *DeleteProfileUseCase) DeleteAccount(ctx context.Context, ownerID uuid.UUID) error {
	if err := uc.DeleteProfile(ctx, ownerID); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, ownerID); err != nil {
		return apperror.NewInternal("account deletion failed after profile removal", err)
	}

	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeAccountDeleted,
		OwnerID:   ownerID,
	})
	return nil
}
