package profile

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/internal/domain/user"
	"github.com/vuhoang/dev-connector/pkg/apperror"
)

// fakeProfileRepo keeps profiles in memory and enforces the same
// handle uniqueness the Postgres index does.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
	// forceHandleFree makes the precheck lie, to exercise the
	// write-time uniqueness backstop.
	forceHandleFree bool
	failWith        error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*profile.Profile{}}
}

func cloneProfile(p *profile.Profile) *profile.Profile {
	raw, _ := json.Marshal(p)
	out := &profile.Profile{}
	json.Unmarshal(raw, out)
	return out
}

func (r *fakeProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("profile", "Profile not found")
	}
	out := cloneProfile(p)
	out.Owner = &profile.OwnerView{Name: "Test User", Avatar: "avatar.png"}
	return out, nil
}

func (r *fakeProfileRepo) GetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, p := range r.profiles {
		if p.Handle == handle {
			out := cloneProfile(p)
			out.Owner = &profile.OwnerView{Name: "Test User", Avatar: "avatar.png"}
			return out, nil
		}
	}
	return nil, apperror.NewNotFound("profile", "Profile not found")
}

func (r *fakeProfileRepo) ListAll(ctx context.Context) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *cloneProfile(p))
	}
	return out, nil
}

func (r *fakeProfileRepo) HandleTaken(ctx context.Context, handle string, exceptOwner uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceHandleFree {
		return false, nil
	}
	for owner, p := range r.profiles {
		if owner != exceptOwner && p.Handle == handle {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for owner, existing := range r.profiles {
		if owner != p.OwnerID && existing.Handle == p.Handle {
			return apperror.NewConflict("handle", "That handle already exists")
		}
	}
	stored := cloneProfile(p)
	stored.Owner = nil
	r.profiles[p.OwnerID] = stored
	return nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	delete(r.profiles, ownerID)
	return nil
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*user.User
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", "User not found")
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", "User not found")
	}
	return u, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	delete(r.users, id)
	return nil
}
