package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openalgo/auth-system/internal/core/domain"
	"github.com/openalgo/auth-system/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// stubUserRepo is an in-memory UserRepository with the same conflict and
// not-found semantics as the MongoDB implementation.
type stubUserRepo struct {
	users            map[int64]*domain.User
	nextID           int64
	bootstrapClaimed bool

	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && (u.Email == user.Email || u.Username == user.Username) {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) ClaimBootstrap(_ context.Context) (bool, error) {
	if r.bootstrapClaimed {
		return false, nil
	}
	r.bootstrapClaimed = true
	return true, nil
}

func (r *stubUserRepo) ReleaseBootstrap(_ context.Context) error {
	r.bootstrapClaimed = false
	return nil
}

// stubRoleRepo is an in-memory RoleRepository seeded via EnsureCanonical.
type stubRoleRepo struct {
	roles  map[int64]*domain.Role
	nextID int64
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[int64]*domain.Role)}
}

func (r *stubRoleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) EnsureCanonical(_ context.Context) error {
	for _, name := range []string{domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleUser} {
		if _, err := r.FindByName(context.Background(), name); err == nil {
			continue
		}
		r.nextID++
		r.roles[r.nextID] = &domain.Role{ID: r.nextID, Name: name}
	}
	return nil
}

func (r *stubRoleRepo) mustID(name string) int64 {
	for _, role := range r.roles {
		if role.Name == name {
			return role.ID
		}
	}
	panic("role not seeded: " + name)
}

// stubSettingsRepo holds the AuthSettings singleton in memory.
type stubSettingsRepo struct {
	settings *domain.AuthSettings
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{}
}

func (r *stubSettingsRepo) GetOrCreate(_ context.Context) (*domain.AuthSettings, error) {
	if r.settings == nil {
		defaults := domain.DefaultAuthSettings()
		r.settings = &defaults
	}
	clone := *r.settings
	return &clone, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, settings *domain.AuthSettings) (*domain.AuthSettings, error) {
	clone := *settings
	r.settings = &clone
	out := clone
	return &out, nil
}

// stubProvider returns canned identities keyed by authorization code.
type stubProvider struct {
	identities  map[string]*ports.ExternalIdentity
	exchangeErr error
}

func newStubProvider() *stubProvider {
	return &stubProvider{identities: make(map[string]*ports.ExternalIdentity)}
}

func (p *stubProvider) AuthCodeURL(_ context.Context, creds ports.OAuthCredentials, state string) (string, error) {
	return "https://accounts.example.com/authorize?client_id=" + creds.ClientID + "&state=" + state, nil
}

func (p *stubProvider) Exchange(_ context.Context, _ ports.OAuthCredentials, code string) (*ports.ExternalIdentity, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	identity, ok := p.identities[code]
	if !ok {
		return nil, domain.ErrExternalAuth
	}
	clone := *identity
	return &clone, nil
}

// stubStateStore is an in-memory single-use state store.
type stubStateStore struct {
	states map[string]bool
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{states: make(map[string]bool)}
}

func (s *stubStateStore) Save(_ context.Context, state string) error {
	s.states[state] = true
	return nil
}

func (s *stubStateStore) Consume(_ context.Context, state string) (bool, error) {
	if !s.states[state] {
		return false, nil
	}
	delete(s.states, state)
	return true, nil
}

func seedUser(t interface{ Fatalf(string, ...interface{}) }, repo *stubUserRepo, roles *stubRoleRepo, username, roleName string) *domain.User {
	if err := roles.EnsureCanonical(context.Background()); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	now := time.Now().UTC()
	created, err := repo.Create(context.Background(), &domain.User{
		Email:     username + "@example.com",
		Username:  username,
		IsActive:  true,
		RoleID:    roles.mustID(roleName),
		RoleName:  roleName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return created
}
