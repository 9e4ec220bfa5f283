package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/pkg/apperror"
	"github.com/vuhoang/dev-connector/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `p.owner_id, u.name, u.avatar, p.handle, p.status, p.company, p.website,
	p.location, p.bio, p.githubusername, p.skills, p.social, p.experience, p.education,
	p.created_at, p.updated_at`

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{Owner: &profile.OwnerView{}}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.OwnerID, &p.Owner.Name, &p.Owner.Avatar, &p.Handle, &p.Status, &p.Company, &p.Website,
		&p.Location, &p.Bio, &p.GithubUsername, &skillsBytes, &socialBytes, &experienceBytes, &educationBytes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", "Profile not found")
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.owner_id
		WHERE p.owner_id = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, ownerID))
}

func (r *postgresProfileRepo) GetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.owner_id
		WHERE p.handle = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, handle))
}

func (r *postgresProfileRepo) ListAll(ctx context.Context) ([]profile.Profile, error) {
	builder := psqlProfile.
		Select("p.owner_id", "u.name", "u.avatar", "p.handle", "p.status", "p.company", "p.website",
			"p.location", "p.bio", "p.githubusername", "p.skills", "p.social", "p.experience", "p.education",
			"p.created_at", "p.updated_at").
		From("profiles p").
		Join("users u ON u.id = p.owner_id").
		OrderBy("p.created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) HandleTaken(ctx context.Context, handle string, exceptOwner uuid.UUID) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE handle = $1 AND owner_id <> $2)`
	if err := r.db.QueryRow(ctx, query, handle, exceptOwner).Scan(&taken); err != nil {
		return false, apperror.NewInternal("failed to check handle", err)
	}
	return taken, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		INSERT INTO profiles (owner_id, handle, status, company, website, location, bio,
			githubusername, skills, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (owner_id) DO UPDATE SET
			handle = EXCLUDED.handle,
			status = EXCLUDED.status,
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			githubusername = EXCLUDED.githubusername,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.OwnerID, p.Handle, p.Status, p.Company, p.Website, p.Location, p.Bio,
		p.GithubUsername, skillsBytes, socialBytes, experienceBytes, educationBytes,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		// A lost race on the handle index reports exactly like the
		// application-level precheck.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "profiles_handle_key" {
			return apperror.NewConflict("handle", "That handle already exists")
		}
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
