package uploads

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path uploaded images are served under.
const URLPrefix = "/uploads/"

var dataURIPattern = regexp.MustCompile(`^data:(.+?);base64,(.+)$`)

// Store writes decoded listing images to a local directory and removes them
// when their listing is deleted.
type Store struct {
	dir string
	log *slog.Logger
}

func New(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}

	return &Store{dir: dir, log: log}, nil
}

// SaveDataURIs decodes each data:<mime>;base64,<payload> entry to a file
// under the store directory and returns the public paths in input order.
// Entries that do not match the data-URI form, fail to decode, or fail to
// write are skipped without surfacing an error; image handling never fails
// the listing they belong to.
func (s *Store) SaveDataURIs(entries []string) []string {
	paths := make([]string, 0, len(entries))

	for _, entry := range entries {
		m := dataURIPattern.FindStringSubmatch(entry)
		if m == nil {
			continue
		}

		mime := m[1]

		data, err := base64.StdEncoding.DecodeString(m[2])
		if err != nil {
			s.log.Warn("skipping undecodable image", "mime", mime, "err", err)
			continue
		}

		// extension comes from the declared MIME subtype
		ext := mime
		if i := strings.Index(mime, "/"); i != -1 {
			ext = mime[i+1:]
		}

		name := uuid.NewString() + "." + ext

		if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
			s.log.Warn("skipping unwritable image", "file", name, "err", err)
			continue
		}

		paths = append(paths, URLPrefix+name)
	}

	return paths
}

// Remove deletes the stored files behind the given public paths. Removal is
// best-effort: failures are logged and never surfaced, since the listing
// record's removal is the primary success condition.
func (s *Store) Remove(paths []string) {
	for _, p := range paths {
		name := filepath.Base(p)

		err := os.Remove(filepath.Join(s.dir, name))
		if err != nil && !os.IsNotExist(err) {
			s.log.Warn("could not remove upload", "file", name, "err", err)
		}
	}
}
