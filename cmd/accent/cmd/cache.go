package cmd

import (
	"errors"
	"fmt"

	"github.com/japaniel/accent/pkg/db"
	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the readings cache",
		Long: `Inspect the SQLite readings cache used by "accent g2p". The path
comes from --cache, cache.path in accent.yaml or ACCENT_CACHE_PATH.`,
	}
	c.PersistentFlags().String("cache", "", "SQLite readings cache")

	show := &cobra.Command{
		Use:   "show [text]...",
		Short: "Print the number of cached readings, or the cached reading of each text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCache(func(conn db.DBExecutor) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					n, err := db.CountReadings(conn)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, n)
					return nil
				}
				for _, text := range args {
					r, err := db.GetReading(conn, text)
					if errors.Is(err, db.ErrNotFound) {
						fmt.Fprintf(out, "%s\t-\n", text)
						continue
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%s\t%s\n", r.Text, r.Reading, r.Source)
				}
				return nil
			})
		},
	}

	forget := &cobra.Command{
		Use:   "forget <text>...",
		Short: "Drop cached readings so they are looked up again",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCache(func(conn db.DBExecutor) error {
				for _, text := range args {
					if err := db.DeleteReading(conn, text); err != nil {
						return fmt.Errorf("failed to forget %q: %w", text, err)
					}
					a.log.WithField("text", text).Debug("reading forgotten")
				}
				return nil
			})
		},
	}

	c.AddCommand(show, forget)
	return c
}

func (a *app) withCache(fn func(conn db.DBExecutor) error) error {
	path := a.cfg.Cache.Path
	if path == "" {
		return errors.New("no readings cache configured: pass --cache or set cache.path")
	}
	conn, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open readings cache %s: %w", path, err)
	}
	defer conn.Close()
	return fn(conn)
}
