package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"contour-sketch/internal/logger"
)

// Janitor removes uploads and outputs older than ttl and forgets idle sessions.
type Janitor struct {
	dirs     []string
	ttl      time.Duration
	interval time.Duration
	sessions *SessionStore
	logger   logger.Logger
}

func NewJanitor(sessions *SessionStore, ttl, interval time.Duration, log logger.Logger, dirs ...string) *Janitor {
	return &Janitor{
		dirs:     dirs,
		ttl:      ttl,
		interval: interval,
		sessions: sessions,
		logger:   log,
	}
}

// Run sweeps every interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			j.Sweep(now)
		}
	}
}

// Sweep removes stale files and sessions as of now and reports how many files it removed.
func (j *Janitor) Sweep(now time.Time) int {
	cutoff := now.Add(-j.ttl)
	removed := 0

	for _, sess := range j.sessions.Expire(cutoff) {
		if err := os.Remove(sess.OutputPath); err == nil {
			removed++
		}
	}

	for _, dir := range j.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			j.logger.Warning("Janitor", "cannot list directory", map[string]interface{}{
				"dir":   dir,
				"error": err.Error(),
			})
			continue
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				j.logger.Error("Janitor", err, map[string]interface{}{"path": path})
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		j.logger.Info("Janitor", "removed stale files", map[string]interface{}{
			"removed":  removed,
			"sessions": j.sessions.Len(),
		})
	}
	return removed
}
