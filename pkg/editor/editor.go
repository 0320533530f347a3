// Package editor holds the per-line state of the multi-line synthesis editor
// and refreshes the tones of lines the user has not edited by hand.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/g2p"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Line is one line of text with its editable tones.
type Line struct {
	Text  string            `json:"text"`
	Tones []accent.ToneMora `json:"moraToneList"`
	// AccentModified marks tones painted by the user; Refresh leaves them alone.
	AccentModified bool `json:"accentModified"`
}

// SetText returns l with new text. Tones are cleared until the next refresh.
func (l Line) SetText(text string) Line {
	return Line{Text: text}
}

// SetTones returns l with hand-edited tones.
func (l Line) SetTones(tones []accent.ToneMora) Line {
	l.Tones = tones
	l.AccentModified = true
	return l
}

// Accent returns the accent type of the line's current tones.
func (l Line) Accent() accent.Type {
	return accent.TypeOf(l.Tones)
}

// NeedsRefresh reports whether Refresh would look the line up.
func (l Line) NeedsRefresh() bool {
	return !l.AccentModified && strings.TrimSpace(l.Text) != ""
}

// Refresher looks up tones for lines through a G2P provider.
type Refresher struct {
	Provider g2p.Provider
	Workers  int
	Logger   logrus.FieldLogger
}

// NewRefresher returns a Refresher using workers concurrent lookups.
func NewRefresher(p g2p.Provider, workers int, logger logrus.FieldLogger) *Refresher {
	return &Refresher{Provider: p, Workers: workers, Logger: logger}
}

// RefreshLine looks up one line unless it was edited by hand.
func (r *Refresher) RefreshLine(ctx context.Context, l Line) (Line, error) {
	if !l.NeedsRefresh() {
		return l, nil
	}
	tones, err := g2p.Tones(ctx, r.Provider, l.Text)
	if err != nil {
		return l, err
	}
	l.Tones = tones
	return l, nil
}

// Refresh looks up every line that needs it, concurrently, and returns the
// updated lines in their original order. Hand-edited lines are returned as
// they are. Lines whose lookup fails keep their old tones; the failures are
// joined into the returned error.
func (r *Refresher) Refresh(ctx context.Context, lines []Line) ([]Line, error) {
	out := make([]Line, len(lines))
	copy(out, lines)

	pending := lo.Filter(lo.Range(len(lines)), func(i int, _ int) bool {
		return lines[i].NeedsRefresh()
	})
	if len(pending) == 0 {
		return out, nil
	}

	pool := NewWorkerPool(r.Workers, len(pending))
	pool.Start(ctx)

	var mu sync.Mutex
	errs := make([]error, len(lines))
	for _, i := range pending {
		err := pool.Submit(ctx, func(ctx context.Context) error {
			line, err := r.RefreshLine(ctx, lines[i])
			if err != nil {
				mu.Lock()
				errs[i] = fmt.Errorf("line %d: %w", i+1, err)
				mu.Unlock()
				r.logger().WithError(err).WithField("line", i+1).Warn("tone lookup failed")
				return err
			}
			out[i] = line
			return nil
		})
		if err != nil {
			pool.Close()
			return out, err
		}
	}
	pool.Close()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, errors.Join(errs...)
}

func (r *Refresher) logger() logrus.FieldLogger {
	if r.Logger == nil {
		return logrus.StandardLogger()
	}
	return r.Logger
}
