package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

type GetProfileUseCase struct {
	profileRepo profile.Repository
	cache       profile.Cache
	logger      logger.Logger
}

func NewGetProfileUseCase(repo profile.Repository, cache profile.Cache, log logger.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		logger:      log,
	}
}

func noProfile() *apperror.AppError {
	return apperror.NewNotFound("noprofile", "There is no profile for this user")
}

func (uc *GetProfileUseCase) GetOwn(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, noProfile()
		}
		return nil, err
	}
	return p, nil
}

func (uc *GetProfileUseCase) GetByHandle(ctx context.Context, rawHandle string) (*profile.Profile, error) {
	handle := profile.NormalizeHandle(rawHandle)

	if uc.cache != nil {
		if cached, err := uc.cache.GetByHandle(ctx, handle); err != nil {
			uc.logger.Warn("Profile cache read failed", zap.String("handle", handle), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	p, err := uc.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, noProfile()
		}
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetByHandle(ctx, p); err != nil {
			uc.logger.Warn("Profile cache write failed", zap.String("handle", handle), zap.Error(err))
		}
	}
	return p, nil
}

func (uc *GetProfileUseCase) GetByUserID(ctx context.Context, rawUserID string) (*profile.Profile, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, noProfile()
	}

	p, err := uc.profileRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, noProfile()
		}
		return nil, err
	}
	return p, nil
}

// ListAll returns every profile; an empty store yields an empty
// slice, never an error.
func (uc *GetProfileUseCase) ListAll(ctx context.Context) ([]profile.Profile, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetAll(ctx); err != nil {
			uc.logger.Warn("Profile list cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	ps, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetAll(ctx, ps); err != nil {
			uc.logger.Warn("Profile list cache write failed", zap.Error(err))
		}
	}
	return ps, nil
}
