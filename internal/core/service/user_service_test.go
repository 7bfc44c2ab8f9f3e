package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/identity-squad/user-api/internal/core/domain"
	"github.com/identity-squad/user-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = cloneUser(stored)
	return stored, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *upd.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetAccessToken(_ context.Context, id int64, token string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AccessToken = token
	return nil
}

type stubRecorder struct {
	entries []domain.AuditEntry
}

func (s *stubRecorder) Record(_ context.Context, entry domain.AuditEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func newUserService(repo *stubUserRepo) (*UserService, *stubRecorder) {
	rec := &stubRecorder{}
	return NewUserService(repo, NewBcryptHasher(bcrypt.MinCost), rec, zerolog.Nop()), rec
}

func TestUserService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, rec := newUserService(repo)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != domain.AuditUserCreated {
		t.Fatalf("expected one user_created audit entry, got %+v", rec.entries)
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "pass1234",
		Role:     "SUPERUSER",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserService(repo)

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Bob", Email: "bob@example.com", Password: "pass1234",
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Bobby", Email: "bob@example.com", Password: "other-pass",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	count := 0
	for _, u := range repo.users {
		if u.Email == "bob@example.com" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one record for email, got %d", count)
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_RoundTrip(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "s3cret-pass",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Carol" || got.Email != "carol@example.com" || got.Role != domain.RoleAdmin {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUserService_Update_Partial(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Dave", Email: "dave@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	name := "David"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "David" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if updated.Email != "dave@example.com" {
		t.Fatalf("email changed unexpectedly: %s", updated.Email)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("password hash changed on name-only update")
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Erin", Email: "erin@example.com", Password: "old-pass1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newPass := "new-pass1"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Password: &newPass})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PasswordHash == created.PasswordHash {
		t.Fatalf("expected a fresh hash after password update")
	}
	if updated.PasswordHash == newPass {
		t.Fatalf("plaintext stored on update")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPass)); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Frank", Email: "frank@example.com", Password: "pass1234",
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Grace", Email: "grace@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	taken := "frank@example.com"
	if _, err := svc.Update(context.Background(), second.ID, ports.UpdateUserInput{Email: &taken}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _ := newUserService(newStubUserRepo())

	name := "Nobody"
	if _, err := svc.Update(context.Background(), 99, ports.UpdateUserInput{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Remove(t *testing.T) {
	svc, rec := newUserService(newStubUserRepo())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Heidi", Email: "heidi@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Remove(context.Background(), created.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.Remove(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}

	last := rec.entries[len(rec.entries)-1]
	if last.Action != domain.AuditUserDeleted {
		t.Fatalf("expected user_deleted audit entry, got %s", last.Action)
	}
}

func TestUserService_AuditActorFromContext(t *testing.T) {
	svc, rec := newUserService(newStubUserRepo())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Ivan", Email: "ivan@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	ctx := domain.WithIdentity(context.Background(), domain.Identity{ID: 77, Role: domain.RoleAdmin})
	name := "Ivan II"
	if _, err := svc.Update(ctx, created.ID, ports.UpdateUserInput{Name: &name}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	last := rec.entries[len(rec.entries)-1]
	if last.ActorID != 77 {
		t.Fatalf("expected actor 77, got %d", last.ActorID)
	}
}
