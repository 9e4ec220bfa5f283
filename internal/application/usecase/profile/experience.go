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

type ExperienceUseCase struct {
	profileRepo profile.Repository
	cache       profile.Cache
	events      EventPublisher
	logger      logger.Logger
}

func NewExperienceUseCase(repo profile.Repository, cache profile.Cache, events EventPublisher, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{
		profileRepo: repo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

type AddExperienceInput struct {
	OwnerID     uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

func (uc *ExperienceUseCase) Add(ctx context.Context, input AddExperienceInput) (*profile.Profile, error) {
	fields := map[string]string{}
	if trimmed(input.Title) == "" {
		fields["title"] = "Title is required"
	}
	if trimmed(input.Company) == "" {
		fields["company"] = "Company is required"
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

	entry := profile.Experience{
		ID:          uuid.New(),
		Title:       trimmed(input.Title),
		Company:     trimmed(input.Company),
		Location:    trimmed(input.Location),
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: trimmed(input.Description),
	}

	// Newest-first: new entries go to the front.
	p.Experience = append([]profile.Experience{entry}, p.Experience...)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	invalidateCache(ctx, uc.cache, uc.logger, p.Handle)
	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeExperienceAdded,
		OwnerID:   p.OwnerID,
		Handle:    p.Handle,
	})

	return p, nil
}

func (uc *ExperienceUseCase) Delete(ctx context.Context, ownerID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("noprofile", "Profile not found")
		}
		return nil, err
	}

	idx := -1
	for i, e := range p.Experience {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperror.NewNotFound("experience", "Experience not found")
	}

	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	invalidateCache(ctx, uc.cache, uc.logger, p.Handle)
	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeExperienceRemoved,
		OwnerID:   p.OwnerID,
		Handle:    p.Handle,
	})

	return p, nil
}
