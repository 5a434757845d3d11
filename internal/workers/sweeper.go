package workers

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/cryptpix/internal/logger"
)

// stagingPrefix marks temp files written by the blob store before the
// rename that publishes them.
const stagingPrefix = ".upload-"

// StagingSweeper removes staging files that a crashed or interrupted write
// left behind under the blob root.
type StagingSweeper struct {
	root     string
	maxAge   time.Duration
	interval time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewStagingSweeper(root string, maxAge, interval time.Duration, logger *logger.Logger) *StagingSweeper {
	return &StagingSweeper{
		root:     root,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *StagingSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if removed, err := s.Sweep(); err != nil {
			s.logger.Err(err).Str("func", "*StagingSweeper.Run").Msg("staging sweep failed")
		} else if removed > 0 {
			s.logger.Info().Int("removed", removed).Msg("stale staging files removed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep deletes staging files older than maxAge and reports how many were
// removed. Published blobs are never touched.
func (s *StagingSweeper) Sweep() (int, error) {
	cutoff := s.now().Add(-s.maxAge)
	removed := 0

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), stagingPrefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed++
		return nil
	})

	return removed, err
}
