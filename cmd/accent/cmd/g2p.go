package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/db"
	"github.com/japaniel/accent/pkg/editor"
	"github.com/japaniel/accent/pkg/g2p"
	"github.com/spf13/cobra"
)

func newG2PCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "g2p [text]...",
		Short: "Look up readings and default tones for lines of text",
		Long: `Look up the kana reading of every argument with the kagome IPA
dictionary and print it with the default tones (accent on the first mora).
Lines are looked up concurrently. With a cache path, readings are kept in a
SQLite database between runs.

With --file, lines are read from a text file (one per sentence) or, for
.html files, from the main article of the page with furigana removed.

Example:
  accent g2p 猫 有難う
  accent g2p --cache readings.db --workers 8 今日は良い天気
  accent g2p --file article.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runG2P(cmd, args)
		},
	}
	c.Flags().StringVar(&a.g2pFile, "file", "", "read lines from a text or HTML file")
	c.Flags().String("cache", "", "SQLite readings cache (empty disables)")
	c.Flags().Int("workers", 4, "concurrent lookups")
	return c
}

func (a *app) runG2P(cmd *cobra.Command, args []string) error {
	lines, err := a.g2pLines(args)
	if err != nil {
		return err
	}

	kagome, err := g2p.NewKagomeProvider()
	if err != nil {
		return fmt.Errorf("failed to load tokenizer: %w", err)
	}
	var provider g2p.Provider = kagome

	if path := a.cfg.Cache.Path; path != "" {
		conn, err := db.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open readings cache %s: %w", path, err)
		}
		defer conn.Close()
		provider = g2p.NewCachedProvider(kagome, conn, "kagome", a.log)
		a.log.WithField("path", path).Debug("readings cache enabled")
	}

	r := editor.NewRefresher(provider, a.cfg.G2P.Workers, a.log)
	got, refreshErr := r.Refresh(cmd.Context(), lines)

	out := cmd.OutOrStdout()
	for _, l := range got {
		if l.Tones == nil {
			continue
		}
		n := len(l.Tones) - 1
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", l.Text, accent.Pronunciation(l.Tones), accent.Format(l.Accent(), n), accent.FormatTones(l.Tones))
	}
	return refreshErr
}

func (a *app) g2pLines(args []string) ([]editor.Line, error) {
	lines := make([]editor.Line, 0, len(args))
	for _, arg := range args {
		lines = append(lines, editor.Line{}.SetText(arg))
	}
	if a.g2pFile != "" {
		more, err := readLines(a.g2pFile)
		if err != nil {
			return nil, err
		}
		lines = append(lines, more...)
	}
	if len(lines) == 0 {
		return nil, errors.New("no text given: pass text arguments or --file")
	}
	return lines, nil
}

func readLines(path string) ([]editor.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		article, err := editor.LinesFromHTML(f, nil)
		if err != nil {
			return nil, err
		}
		return article.Lines, nil
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return editor.LinesFromText(string(data)), nil
	}
}
