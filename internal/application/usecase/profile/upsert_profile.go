package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vuhoang/dev-connector/adapters/event"
	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type UpsertProfileUseCase struct {
	profileRepo profile.Repository
	cache       profile.Cache
	events      EventPublisher
	logger      logger.Logger
}

func NewUpsertProfileUseCase(repo profile.Repository, cache profile.Cache, events EventPublisher, log logger.Logger) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

// UpsertProfileInput is a partial field bag: nil means the caller did
// not send the field, which is different from sending an empty string.
type UpsertProfileInput struct {
	OwnerID        uuid.UUID
	Handle         *string
	Status         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string
	// Skills is the raw comma-separated input.
	Skills *string
	Youtube, Twitter, Facebook, Linkedin, Instagram *string
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

func (uc *UpsertProfileUseCase) Execute(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {

	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	existing, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	creating := false
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			span.RecordError(err)
			return nil, err
		}
		creating = true
	}

	var handle string
	if input.Handle != nil {
		handle = profile.NormalizeHandle(*input.Handle)
	}

	if err := validateUpsert(input, handle, creating); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var p *profile.Profile
	if creating {
		p = &profile.Profile{
			OwnerID:    input.OwnerID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
			CreatedAt:  now,
		}
	} else {
		p = existing
	}

	oldHandle := p.Handle

	if input.Handle != nil {
		p.Handle = handle
	}
	applyString(&p.Status, input.Status)
	applyString(&p.Company, input.Company)
	applyString(&p.Website, input.Website)
	applyString(&p.Location, input.Location)
	applyString(&p.Bio, input.Bio)
	applyString(&p.GithubUsername, input.GithubUsername)

	if input.Skills != nil {
		p.Skills = profile.SplitSkills(*input.Skills)
	}

	// Build-fresh subrecord policy: the social block is reconstructed
	// from whatever keys the caller sent; it is never patched
	// key-by-key against the stored value.
	p.Social = profile.Social{
		Youtube:   trimmedOrNil(input.Youtube),
		Twitter:   trimmedOrNil(input.Twitter),
		Facebook:  trimmedOrNil(input.Facebook),
		Linkedin:  trimmedOrNil(input.Linkedin),
		Instagram: trimmedOrNil(input.Instagram),
	}

	p.UpdatedAt = now

	// Fast-path rejection only; the unique index on handle is the
	// real guarantee, and Upsert maps its violation to the same error.
	if input.Handle != nil {
		taken, err := uc.profileRepo.HandleTaken(ctx, handle, input.OwnerID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if taken {
			return nil, apperror.NewConflict("handle", "That handle already exists")
		}
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	out, err := uc.profileRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	invalidateCache(ctx, uc.cache, uc.logger, out.Handle)
	if oldHandle != "" && oldHandle != out.Handle {
		invalidateCache(ctx, uc.cache, uc.logger, oldHandle)
	}

	publishEvent(uc.logger, uc.events, event.ProfileEventPayload{
		EventType: event.ProfileEventTypeUpserted,
		OwnerID:   out.OwnerID,
		Handle:    out.Handle,
	})

	return &UpsertProfileOutput{Profile: out}, nil
}

func validateUpsert(input UpsertProfileInput, handle string, creating bool) error {
	fields := map[string]string{}

	if creating && input.Handle == nil {
		fields["handle"] = "Handle is required"
	}
	if input.Handle != nil && (handle == "" || len(handle) > profile.HandleMaxLen) {
		fields["handle"] = fmt.Sprintf("Handle must be between 1 and %d characters", profile.HandleMaxLen)
	}
	if creating && input.Status == nil {
		fields["status"] = "Status is required"
	}
	if input.Status != nil && trimmed(*input.Status) == "" {
		fields["status"] = "Status is required"
	}

	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = trimmed(*src)
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := trimmed(*s)
	if t == "" {
		return nil
	}
	return &t
}
