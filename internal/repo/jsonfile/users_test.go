package jsonfile

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnlocal/jobhub/internal/security"
	"github.com/mnlocal/jobhub/internal/uploads"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUsersRepo(t *testing.T) (*UsersRepo, string) {
	t.Helper()

	dir := t.TempDir()
	log := testLogger()

	files, err := uploads.New(filepath.Join(dir, "uploads"), log)
	require.NoError(t, err)

	path := filepath.Join(dir, "users.txt")

	repo, err := NewUsersRepo(path, files, log, nil)
	require.NoError(t, err)

	return repo, path
}

func TestCreateAccountAndAuthenticate(t *testing.T) {
	repo, _ := newTestUsersRepo(t)

	u, err := repo.CreateAccount("Abcd123!", "alice@example.com", "Alice", "Smith", "Duluth")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "Abcd123!", u.Password, "plaintext must never be stored")
	assert.NotNil(t, u.Listings)
	assert.Empty(t, u.Listings)

	assert.True(t, repo.Authenticate("alice@example.com", "Abcd123!"))
	assert.False(t, repo.Authenticate("alice@example.com", "wrong"))
	assert.False(t, repo.Authenticate("nobody@example.com", "Abcd123!"))
}

func TestEmailExistsExactMatch(t *testing.T) {
	repo, _ := newTestUsersRepo(t)

	_, err := repo.CreateAccount("Abcd123!", "alice@example.com", "Alice", "Smith", "Duluth")
	require.NoError(t, err)

	assert.True(t, repo.EmailExists("alice@example.com"))
	// no case normalization
	assert.False(t, repo.EmailExists("Alice@example.com"))
}

func TestChangePasswordKeepsSalt(t *testing.T) {
	repo, path := newTestUsersRepo(t)

	_, err := repo.CreateAccount("Abcd123!", "alice@example.com", "Alice", "Smith", "Duluth")
	require.NoError(t, err)

	saltBefore := storedSalt(t, path, "alice@example.com")

	require.NoError(t, repo.ChangePassword("alice@example.com", "Abcd123!", "Wxyz789?"))

	assert.False(t, repo.Authenticate("alice@example.com", "Abcd123!"), "old password must stop working")
	assert.True(t, repo.Authenticate("alice@example.com", "Wxyz789?"))

	assert.Equal(t, saltBefore, storedSalt(t, path, "alice@example.com"), "salt is immutable")
}

func TestChangePasswordBadCredentials(t *testing.T) {
	repo, _ := newTestUsersRepo(t)

	_, err := repo.CreateAccount("Abcd123!", "alice@example.com", "Alice", "Smith", "Duluth")
	require.NoError(t, err)

	err = repo.ChangePassword("alice@example.com", "wrong", "Wxyz789?")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangeEmailAndProfileFields(t *testing.T) {
	repo, _ := newTestUsersRepo(t)

	_, err := repo.CreateAccount("Abcd123!", "alice@example.com", "Alice", "Smith", "Duluth")
	require.NoError(t, err)

	require.NoError(t, repo.ChangeEmail("alice@example.com", "Abcd123!", "alice2@example.com"))
	assert.False(t, repo.Authenticate("alice@example.com", "Abcd123!"))
	assert.True(t, repo.Authenticate("alice2@example.com", "Abcd123!"))

	require.NoError(t, repo.ChangeName("alice2@example.com", "Abcd123!", "Alicia", "Smythe"))
	require.NoError(t, repo.ChangeLocation("alice2@example.com", "Abcd123!", "Hibbing"))
	require.NoError(t, repo.ChangeAge("alice2@example.com", "Abcd123!", json.RawMessage(`"29"`)))

	p, err := repo.Profile("alice2@example.com", "Abcd123!")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", p.FirstName)
	assert.Equal(t, "Smythe", p.LastName)
	assert.Equal(t, "Hibbing", p.Location)

	loc, err := repo.Location("alice2@example.com", "Abcd123!")
	require.NoError(t, err)
	assert.Equal(t, "Hibbing", loc)

	_, err = repo.Profile("alice2@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLegacyStringSaltStillAuthenticates(t *testing.T) {
	dir := t.TempDir()
	log := testLogger()

	files, err := uploads.New(filepath.Join(dir, "uploads"), log)
	require.NoError(t, err)

	// record persisted by an older build with a string salt
	doc := []map[string]any{{
		"email":       "bob@example.com",
		"first_name":  "Bob",
		"last_name":   "Jones",
		"location":    "Ely",
		"password":    security.HashPassword("Abcd123!", 555),
		"salt":        "555",
		"listings":    []any{},
		"profile_pic": "",
	}}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(dir, "users.txt")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	repo, err := NewUsersRepo(path, files, log, nil)
	require.NoError(t, err)

	assert.True(t, repo.Authenticate("bob@example.com", "Abcd123!"))
}

func TestCorruptFileResetsToEmpty(t *testing.T) {
	dir := t.TempDir()
	log := testLogger()

	files, err := uploads.New(filepath.Join(dir, "uploads"), log)
	require.NoError(t, err)

	path := filepath.Join(dir, "users.txt")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo, err := NewUsersRepo(path, files, log, nil)
	require.NoError(t, err)

	assert.False(t, repo.EmailExists("anyone@example.com"))

	// a fresh empty document replaces the corrupt one
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func storedSalt(t *testing.T, path, email string) int64 {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var docs []struct {
		Email string `json:"email"`
		Salt  int64  `json:"salt"`
	}
	require.NoError(t, json.Unmarshal(raw, &docs))

	for _, d := range docs {
		if d.Email == email {
			return d.Salt
		}
	}

	t.Fatalf("no stored record for %s", email)
	return 0
}
