package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/models"
)

const (
	// blobPrefix is the top-level directory of every locator.
	blobPrefix = "cryptpix"

	// blobBucketLayout groups blobs by upload minute.
	blobBucketLayout = "2006-01-02-15-04"

	// cidSuffixLen is how many trailing CID characters end up in file names.
	cidSuffixLen = 8

	// nonceLen is the length of the per-call random part of a file name.
	nonceLen = 12

	// storeAttempts bounds retries when a generated name already exists.
	storeAttempts = 3

	maxStemLen = 64
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// fileBlobStorage is the local filesystem implementation of [BlobStorage].
//
// Locators are slash-separated paths relative to root:
//
//	cryptpix/2026-03-01-12-30/<stem>_<cid8>_<nonce>.png
//
// where cid8 is the tail of the CIDv1 (raw, sha2-256) of the content and
// nonce is random per Store call. Every call owns its locator: storing the
// same bytes under the same name twice yields two independent blobs, so
// deleting one never affects the other. Existing files are never replaced.
type fileBlobStorage struct {
	root   string
	now    func() time.Time
	nonce  func() string
	logger *logger.Logger
}

// NewFileBlobStorage returns a [BlobStorage] rooted at dir, creating it if
// needed.
func NewFileBlobStorage(dir string, log *logger.Logger) (BlobStorage, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve blob dir: %w", err)
	}
	if err = os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}

	return &fileBlobStorage{root: root, now: time.Now, nonce: randomNonce, logger: log}, nil
}

// Store implements [BlobStorage]. The write is atomic: data goes to a temp
// file in the target directory that is hard-linked into place once synced.
func (s *fileBlobStorage) Store(ctx context.Context, data []byte, name string) (string, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, err := contentID(data)
	if err != nil {
		return "", fmt.Errorf("compute content id: %w", err)
	}

	stem, ext := splitName(name)
	bucket := path.Join(blobPrefix, s.now().UTC().Format(blobBucketLayout))

	dir := filepath.Join(s.root, filepath.FromSlash(bucket))
	if err = os.MkdirAll(dir, 0o750); err != nil {
		log.Err(err).Str("func", "*fileBlobStorage.Store").Msg("error creating bucket dir")
		return "", fmt.Errorf("create bucket dir: %w", err)
	}

	for range storeAttempts {
		locator := path.Join(bucket, stem+"_"+id[len(id)-cidSuffixLen:]+"_"+s.nonce()+ext)

		err = writeFileExclusive(filepath.Join(s.root, filepath.FromSlash(locator)), data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			log.Err(err).Str("func", "*fileBlobStorage.Store").Str("locator", locator).Msg("error writing blob")
			return "", err
		}

		log.Debug().Str("func", "*fileBlobStorage.Store").Str("locator", locator).Int("size", len(data)).Msg("blob stored")
		return locator, nil
	}

	log.Error().Str("func", "*fileBlobStorage.Store").Str("bucket", bucket).Msg("no free blob name")
	return "", ErrBlobExists
}

// Open implements [BlobStorage].
func (s *fileBlobStorage) Open(ctx context.Context, locator string) (*models.LayerStream, error) {
	target, err := s.resolve(locator)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat blob: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, ErrBlobNotFound
	}

	contentType := mime.TypeByExtension(path.Ext(locator))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.LayerStream{
		Content:     f,
		ContentType: contentType,
		Name:        path.Base(locator),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

// Delete implements [BlobStorage].
func (s *fileBlobStorage) Delete(ctx context.Context, locator string) error {
	target, err := s.resolve(locator)
	if err != nil {
		return err
	}

	if err = os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*fileBlobStorage.Delete").Str("locator", locator).Msg("error removing blob")
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// resolve maps a locator to an absolute path inside root.
func (s *fileBlobStorage) resolve(locator string) (string, error) {
	if locator == "" || strings.Contains(locator, "\\") {
		return "", ErrInvalidLocator
	}
	local := filepath.FromSlash(locator)
	if !filepath.IsLocal(local) {
		return "", ErrInvalidLocator
	}
	return filepath.Join(s.root, local), nil
}

// contentID returns the CIDv1 string of data (raw codec, sha2-256).
func contentID(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return cid.NewCidV1(cid.Raw, mh).String(), nil
}

// splitName turns an arbitrary file name into a safe stem and a lower-case
// extension. Unknown or missing extensions become ".bin".
func splitName(name string) (string, string) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	stem := strings.TrimSuffix(base, path.Ext(base))

	stem = strings.Trim(unsafeNameChars.ReplaceAllString(stem, "-"), "-")
	if len(stem) > maxStemLen {
		stem = stem[:maxStemLen]
	}
	if stem == "" {
		stem = "image"
	}

	if len(ext) < 2 || unsafeNameChars.MatchString(ext[1:]) {
		ext = ".bin"
	}
	return stem, ext
}

// randomNonce returns nonceLen hex characters from a random UUID.
func randomNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:nonceLen]
}

// writeFileExclusive writes data to a temp file next to target and links it
// into place. It fails with fs.ErrExist instead of replacing target.
func writeFileExclusive(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o640); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Link(tmp.Name(), target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fs.ErrExist
		}
		return fmt.Errorf("link blob into place: %w", err)
	}
	return nil
}
