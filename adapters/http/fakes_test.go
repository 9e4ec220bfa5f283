package http

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vuhoang/dev-connector/internal/domain/profile"
	"github.com/vuhoang/dev-connector/internal/domain/user"
	"github.com/vuhoang/dev-connector/pkg/apperror"
)

// fakeUserRepo is an in-memory user.Repository for router tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperror.NewConflict("email", "Email already exists")
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("user", "user not found")
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", "user not found")
	}
	out := u
	out.PasswordHash = ""
	return &out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// fakeProfileRepo is an in-memory profile.Repository. Reads join the
// owner's name and avatar from the user store the way the SQL repo does.
type fakeProfileRepo struct {
	mu       sync.Mutex
	users    *fakeUserRepo
	profiles map[uuid.UUID]profile.Profile
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{users: users, profiles: make(map[uuid.UUID]profile.Profile)}
}

func cloneAPIProfile(p profile.Profile) *profile.Profile {
	raw, _ := json.Marshal(p)
	var out profile.Profile
	_ = json.Unmarshal(raw, &out)
	return &out
}

func (r *fakeProfileRepo) withOwner(p profile.Profile) *profile.Profile {
	out := cloneAPIProfile(p)
	if u, ok := r.users.users[p.OwnerID]; ok {
		out.Owner = &profile.OwnerView{Name: u.Name, Avatar: u.Avatar}
	}
	return out
}

func (r *fakeProfileRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("profile", "profile not found")
	}
	return r.withOwner(p), nil
}

func (r *fakeProfileRepo) GetByHandle(_ context.Context, handle string) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Handle == handle {
			return r.withOwner(p), nil
		}
	}
	return nil, apperror.NewNotFound("profile", "profile not found")
}

func (r *fakeProfileRepo) ListAll(_ context.Context) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *r.withOwner(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProfileRepo) HandleTaken(_ context.Context, handle string, exceptOwner uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for owner, p := range r.profiles {
		if p.Handle == handle && owner != exceptOwner {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for owner, existing := range r.profiles {
		if existing.Handle == p.Handle && owner != p.OwnerID {
			return apperror.NewConflict("handle", "That handle already exists")
		}
	}
	r.profiles[p.OwnerID] = *cloneAPIProfile(*p)
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, ownerID)
	return nil
}
