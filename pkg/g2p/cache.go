package g2p

import (
	"context"
	"errors"

	"github.com/japaniel/accent/pkg/db"
	"github.com/sirupsen/logrus"
)

// CachedProvider serves readings from a SQLite cache and falls back to
// Provider on a miss. Cache failures are logged, never returned.
type CachedProvider struct {
	Provider Provider
	DB       db.DBExecutor
	// Source is stored alongside each reading, e.g. "kagome".
	Source string
	Logger logrus.FieldLogger
}

// NewCachedProvider wraps p with the cache in conn.
func NewCachedProvider(p Provider, conn db.DBExecutor, source string, logger logrus.FieldLogger) *CachedProvider {
	return &CachedProvider{Provider: p, DB: conn, Source: source, Logger: logger}
}

func (c *CachedProvider) Reading(ctx context.Context, text string) (string, error) {
	r, err := db.GetReading(c.DB, text)
	if err == nil {
		return r.Reading, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		c.logger().WithError(err).WithField("text", text).Warn("reading cache lookup failed")
	}

	reading, err := c.Provider.Reading(ctx, text)
	if err != nil {
		return "", err
	}
	if _, err := db.PutReading(c.DB, text, reading, c.Source); err != nil {
		c.logger().WithError(err).WithField("text", text).Warn("reading cache store failed")
	}
	return reading, nil
}

func (c *CachedProvider) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
