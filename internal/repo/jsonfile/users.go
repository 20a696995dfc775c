package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mnlocal/jobhub/internal/domain/listing"
	"github.com/mnlocal/jobhub/internal/domain/user"
	"github.com/mnlocal/jobhub/internal/observability"
	"github.com/mnlocal/jobhub/internal/security"
	"github.com/mnlocal/jobhub/internal/uploads"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrListingNotFound    = errors.New("listing not found")
)

// UsersRepo owns the user collection, including each user's embedded
// listings. All access is serialized on one mutex; every mutation rewrites
// the whole document.
type UsersRepo struct {
	mu    sync.Mutex
	path  string
	users []user.User
	files *uploads.Store
	log   *slog.Logger
	prom  *observability.Prom
}

func NewUsersRepo(path string, files *uploads.Store, log *slog.Logger, prom *observability.Prom) (*UsersRepo, error) {
	users, err := loadCollection[user.User](path)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	// Older records can carry a null listings array.
	for i := range users {
		if users[i].Listings == nil {
			users[i].Listings = []listing.Listing{}
		}
	}

	return &UsersRepo{
		path:  path,
		users: users,
		files: files,
		log:   log,
		prom:  prom,
	}, nil
}

func (r *UsersRepo) save() error {
	return writeCollection(r.path, r.users)
}

// indexOf scans for a user whose email matches exactly and whose stored
// digest equals hash(password+salt). Caller must hold the mutex.
func (r *UsersRepo) indexOf(email, password string) int {
	for i := range r.users {
		if r.users[i].Email == email &&
			r.users[i].Password == security.HashPassword(password, int64(r.users[i].Salt)) {
			return i
		}
	}

	return -1
}

// Authenticate reports whether email+password match a stored account.
func (r *UsersRepo) Authenticate(email, password string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.indexOf(email, password) != -1
}

// EmailExists reports whether any account uses email. Exact match, no case
// normalization.
func (r *UsersRepo) EmailExists(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.emailExists(email)
}

func (r *UsersRepo) emailExists(email string) bool {
	for i := range r.users {
		if r.users[i].Email == email {
			return true
		}
	}

	return false
}

// CreateAccount appends a new user with a fresh salt and persists the
// collection. The caller is expected to have checked EmailExists first; the
// store does not re-check.
func (r *UsersRepo) CreateAccount(password, email, firstName, lastName, location string) (u user.User, err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("users_create", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	salt := security.NewSalt()

	u = user.User{
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Location:   location,
		Password:   security.HashPassword(password, salt),
		Salt:       user.Salt(salt),
		Listings:   []listing.Listing{},
		ProfilePic: "",
	}

	r.users = append(r.users, u)

	if err = r.save(); err != nil {
		return user.User{}, err
	}

	r.log.Info("created user", "email", email)
	return u, nil
}

func (r *UsersRepo) ChangeEmail(email, password, newEmail string) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("users_change_email", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return ErrInvalidCredentials
	}

	r.users[idx].Email = newEmail
	return r.save()
}

// ChangePassword re-hashes with the user's existing salt; the salt itself
// never changes.
func (r *UsersRepo) ChangePassword(email, password, newPassword string) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("users_change_password", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return ErrInvalidCredentials
	}

	r.users[idx].Password = security.HashPassword(newPassword, int64(r.users[idx].Salt))
	return r.save()
}

func (r *UsersRepo) ChangeAge(email, password string, age json.RawMessage) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("users_change_age", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return ErrInvalidCredentials
	}

	r.users[idx].Age = age
	return r.save()
}

func (r *UsersRepo) ChangeName(email, password, firstName, lastName string) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("users_change_name", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return ErrInvalidCredentials
	}

	r.users[idx].FirstName = firstName
	r.users[idx].LastName = lastName
	return r.save()
}

func (r *UsersRepo) ChangeLocation(email, password, location string) (err error) {
	start := time.Now()
	defer func() { r.prom.ObserveStoreOp("users_change_location", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return ErrInvalidCredentials
	}

	r.users[idx].Location = location
	return r.save()
}

func (r *UsersRepo) Location(email, password string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return "", ErrInvalidCredentials
	}

	return r.users[idx].Location, nil
}

func (r *UsersRepo) Profile(email, password string) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(email, password)
	if idx == -1 {
		return user.Profile{}, ErrInvalidCredentials
	}

	return r.users[idx].Profile(), nil
}
