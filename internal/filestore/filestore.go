// Package filestore implements store.DocumentStore on the local
// filesystem. Each project lives in its own directory under the configured
// root, holding a single pretty-printed JSON document. The etag for a
// document is the SHA-256 of the exact bytes on disk, so any concurrent
// rewrite invalidates outstanding tokens.
package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/rgould/proofdesk/internal/store"
)

const documentFile = "project.json"

// Project ids double as directory names, so they are restricted to a
// slug alphabet. This also rules out path traversal.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store is a file-backed versioned document store.
type Store struct {
	root       string
	normalizer *document.Normalizer
	logger     *slog.Logger
	now        func() time.Time

	// locks serializes the read-check-write sequence per project id.
	// The filesystem offers no compare-and-swap, so without this two
	// saves could both observe the same pre-write etag and both pass
	// the precondition check.
	locks sync.Map // id -> *sync.Mutex
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		root:       dir,
		normalizer: document.NewNormalizer(),
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Create writes a fresh default document for id.
func (s *Store) Create(ctx context.Context, id, title string) (*document.Project, string, error) {
	if !idPattern.MatchString(id) {
		return nil, "", fmt.Errorf("%w: invalid project id %q", store.ErrInvalidInput, id)
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	path := s.documentPath(id)
	if _, err := os.Stat(path); err == nil {
		return nil, "", store.ErrAlreadyExists
	} else if !os.IsNotExist(err) {
		return nil, "", fmt.Errorf("checking project %s: %w", id, err)
	}

	doc := document.New(id, title, s.now())
	data, err := encode(doc)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, "", fmt.Errorf("creating project directory: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return nil, "", fmt.Errorf("writing project %s: %w", id, err)
	}

	s.logger.Info("project created", "id", id)
	return doc, etag(data), nil
}

// Get loads and normalizes the stored document. The returned etag covers
// the unnormalized on-disk bytes: normalization is a read-side view, never
// a silent rewrite, so the token always reflects exactly what is stored.
func (s *Store) Get(ctx context.Context, id string) (*document.Project, string, error) {
	if !idPattern.MatchString(id) {
		return nil, "", fmt.Errorf("%w: invalid project id %q", store.ErrInvalidInput, id)
	}

	data, err := os.ReadFile(s.documentPath(id))
	if os.IsNotExist(err) {
		return nil, "", store.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading project %s: %w", id, err)
	}

	doc, err := s.decode(id, data)
	if err != nil {
		return nil, "", err
	}
	return doc, etag(data), nil
}

// Save replaces the stored document after re-reading and re-hashing the
// current bytes under the per-id lock. The caller's createdAt is ignored
// in favor of the stored value, and updatedAt is stamped fresh.
func (s *Store) Save(ctx context.Context, doc *document.Project, tag string) (string, error) {
	if doc == nil || !idPattern.MatchString(doc.ID) {
		return "", fmt.Errorf("%w: missing or invalid project id", store.ErrInvalidInput)
	}
	if tag == "" {
		return "", fmt.Errorf("%w: missing etag", store.ErrInvalidInput)
	}

	mu := s.lock(doc.ID)
	mu.Lock()
	defer mu.Unlock()

	path := s.documentPath(doc.ID)
	current, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading project %s: %w", doc.ID, err)
	}
	if etag(current) != tag {
		return "", store.ErrStaleEtag
	}

	stored, err := s.decode(doc.ID, current)
	if err != nil {
		return "", err
	}

	next, err := s.normalizer.NormalizeProject(doc)
	if err != nil {
		return "", fmt.Errorf("normalizing project %s: %w", doc.ID, err)
	}
	next.ID = doc.ID
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = s.now().UTC()
	if !next.UpdatedAt.After(stored.UpdatedAt) {
		next.UpdatedAt = stored.UpdatedAt.Add(time.Millisecond)
	}

	data, err := encode(next)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("writing project %s: %w", doc.ID, err)
	}

	s.logger.Info("project saved", "id", doc.ID, "etag", etag(data))
	return etag(data), nil
}

// List summarizes all stored projects, newest update first. Entries that
// cannot be read or parsed are skipped so one corrupt document does not
// break the listing.
func (s *Store) List(ctx context.Context) ([]document.Summary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading storage root: %w", err)
	}

	summaries := []document.Summary{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		data, err := os.ReadFile(s.documentPath(id))
		if err != nil {
			continue
		}
		doc, err := s.decode(id, data)
		if err != nil {
			s.logger.Warn("skipping unreadable project", "id", id, "error", err)
			continue
		}
		summaries = append(summaries, document.Summary{
			ID:        id,
			Title:     doc.Title,
			UpdatedAt: doc.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (s *Store) documentPath(id string) string {
	return filepath.Join(s.root, id, documentFile)
}

// decode parses stored bytes and normalizes them into the canonical shape.
// Unparseable bytes are a hard error; only shape gaps are defaulted.
func (s *Store) decode(id string, data []byte) (*document.Project, error) {
	raw, err := document.ParseRaw(data)
	if err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", id, err)
	}
	doc := s.normalizer.Normalize(raw)
	doc.ID = id
	return doc, nil
}

func (s *Store) lock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func encode(doc *document.Project) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}

func etag(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeAtomic writes data to a sibling temporary file and renames it over
// path, so a partially written document is never visible at the final
// location.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".project-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
