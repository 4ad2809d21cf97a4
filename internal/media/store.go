package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	AirplaneDir = "uploads/planes"
	CrewDir     = "uploads/crew_photos"
)

var ErrNotAnImage = errors.New("upload a valid image")

// formatExts lists the accepted extensions per decoded format, canonical first.
var formatExts = map[string][]string{
	"jpeg": {".jpg", ".jpeg"},
	"png":  {".png"},
	"gif":  {".gif"},
}

// Store writes uploads under a root directory and serves them under urlPrefix.
type Store struct {
	root      string
	urlPrefix string
	maxBytes  int64
}

func NewStore(root, urlPrefix string, maxBytes int64) *Store {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Store{root: root, urlPrefix: urlPrefix, maxBytes: maxBytes}
}

func (s *Store) Root() string {
	return s.root
}

// FileName builds "<slug(name)>-<uuid><ext>" inside dir.
func FileName(dir, name, original string) string {
	return path.Join(dir, fmt.Sprintf("%s-%s%s", slug.Make(name), uuid.NewString(), strings.ToLower(filepath.Ext(original))))
}

// SaveImage checks that r holds a JPEG, PNG or GIF image and stores it. It
// returns the path relative to the media root.
func (s *Store) SaveImage(dir, name, original string, r io.Reader) (string, error) {
	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: file is larger than %d bytes", ErrNotAnImage, s.maxBytes)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}
	original = withFormatExt(original, format)

	rel := FileName(dir, name, original)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return rel, nil
}

// withFormatExt keeps the client extension only when it names the decoded format.
func withFormatExt(original, format string) string {
	ext := filepath.Ext(original)
	exts, ok := formatExts[format]
	if !ok {
		return strings.TrimSuffix(original, ext) + "." + format
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return original
		}
	}
	return strings.TrimSuffix(original, ext) + exts[0]
}

// Remove deletes a stored file; a missing file is not an error.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// URL maps a stored path to the public URL, or "" when nothing is stored.
func (s *Store) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.urlPrefix + rel
}
