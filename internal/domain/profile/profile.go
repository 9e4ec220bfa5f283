package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const HandleMaxLen = 40

// Social is always rebuilt from the keys present in the caller's
// input; absent keys stay nil and are omitted from JSON.
type Social struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// OwnerView is the denormalized slice of the owning user exposed on
// profile reads: name and avatar, nothing else.
type OwnerView struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Profile struct {
	OwnerID        uuid.UUID    `json:"user"`
	Owner          *OwnerView   `json:"owner,omitempty"`
	Handle         string       `json:"handle"`
	Status         string       `json:"status"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type Repository interface {
	// GetByOwnerID returns apperror.ErrNotFound when the user has no
	// profile yet.
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	GetByHandle(ctx context.Context, handle string) (*Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
	// HandleTaken reports whether any profile other than exceptOwner's
	// already holds the normalized handle. A fast-path check only; the
	// unique index on handle is the authority.
	HandleTaken(ctx context.Context, handle string, exceptOwner uuid.UUID) (bool, error)
	// Upsert writes the full merged record keyed by owner. A unique
	// violation on handle surfaces as apperror.ErrConflict.
	Upsert(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// Cache is a best-effort read cache for the public lookups. A nil
// profile with nil error means miss.
type Cache interface {
	GetByHandle(ctx context.Context, handle string) (*Profile, error)
	SetByHandle(ctx context.Context, p *Profile) error
	GetAll(ctx context.Context) ([]Profile, error)
	SetAll(ctx context.Context, ps []Profile) error
	Invalidate(ctx context.Context, handle string) error
}

// NormalizeHandle trims and lowercases; handles are compared
// case-insensitively everywhere.
func NormalizeHandle(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// SplitSkills parses the comma-separated skills input, trimming each
// piece and dropping empties, preserving order.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
