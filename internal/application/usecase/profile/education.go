package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vuhoang/dev-connector/adapters/event"
	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

type EducationUseCase struct {
	profileRepo profile.Repository
	cache       profile.Cache
	events      EventPublisher
	logger      logger.Logger
}

func NewEducationUseCase(repo profile.Repository, cache profile.Cache, events EventPublisher, log logger.Logger) *EducationUseCase {
	return &EducationUseCase{
		profileRepo: repo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

type AddEducationInput struct {
	OwnerID      uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (uc *EducationUseCase) Add(ctx context.Context, input AddEducationInput) (*profile.Profile, error) {
	fields := map[string]string{}
	if trimmed(input.School) == "" {
		fields["school"] = "School is required"
	}
	if trimmed(input.Degree) == "" {
		fields["degree"] = "Degree is required"
	}
	if trimmed(input.FieldOfStudy) == "" {
		fields["fieldofstudy"] = "Field of study is required"
	}
	if input.From.IsZero() {
		fields["from"] = "From date is required"
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	p, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("noprofile", "Profile not found")
		}
		return nil, err
	}

	entry := profile.Education{
		ID:           uuid.New(),
		School:       trimmed(input.School),
		Degree:       trimmed(input.Degree),
		FieldOfStudy: trimmed(input.FieldOfStudy),
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  trimmed(input.Description),
	}

	p.Education = append([]profile.Education{entry}, p.Education...)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	invalidateCache(ctx, uc.cache, uc.logger, p.Handle)
	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeEducationAdded,
		OwnerID:   p.OwnerID,
		Handle:    p.Handle,
	})

	return p, nil
}

func (uc *EducationUseCase) Delete(ctx context.Context, ownerID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("noprofile", "Profile not found")
		}
		return nil, err
	}

	idx := -1
	for i, e := range p.Education {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.NewNotFound("education", "Education not found")
	}

	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	invalidateCache(ctx, uc.cache, uc.logger, p.Handle)
	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeEducationRemoved,
		OwnerID:   p.OwnerID,
		Handle:    p.Handle,
	})

	return p, nil
}
