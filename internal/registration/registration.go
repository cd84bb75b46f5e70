package registration

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// EvidenceStore persists the uploaded payment proof and returns the stored
// filename that goes into the payment row.
type EvidenceStore interface {
	Save(originalFilename string, content io.Reader) (string, error)
}

// EvidenceUpload is the decoded multipart file as the handler hands it to
// the service. Nil means the registrant uploaded nothing.
type EvidenceUpload struct {
	Filename string
	Content  io.Reader
}

// RegisterResult carries the new user's id back to the handler.
type RegisterResult struct {
	UserID int64
}

var evidenceNameSanitizer = regexp.MustCompile(`\W+`)

// DiskEvidenceStore writes payment proofs under a single upload directory.
// Stored names are derived from the upload: spaces become underscores, the
// base name is stripped to word characters and a UTC timestamp is appended
// so repeated uploads of the same file never collide.
type DiskEvidenceStore struct {
	dir string
	now func() time.Time
}

func NewDiskEvidenceStore(dir string) (*DiskEvidenceStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskEvidenceStore{dir: dir, now: time.Now}, nil
}

func (s *DiskEvidenceStore) Save(originalFilename string, content io.Reader) (string, error) {
	name := strings.ReplaceAll(originalFilename, " ", "_")
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	base = evidenceNameSanitizer.ReplaceAllString(base, "")

	timestamp := s.now().UTC().Format("20060102150405")
	stored := fmt.Sprintf("%s_%s%s", base, timestamp, ext)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create evidence file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}
	return stored, nil
}
