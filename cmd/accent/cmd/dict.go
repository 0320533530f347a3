package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/dictionary"
	"github.com/japaniel/accent/pkg/mora"
	"github.com/japaniel/accent/pkg/notify"
	"github.com/spf13/cobra"
)

func newDictCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "dict",
		Short: "Inspect and edit user dictionary files",
		Long: `Work with user dictionary files (JSON or YAML, chosen by extension).
Both the keyed object {"<id>": {...}} and a list of {"uuid", "word"}
elements are read; files are always written as the keyed object.`,
	}
	c.AddCommand(newDictShowCmd(), newDictConvertCmd(), newDictAddCmd(a), newDictDeleteCmd(a))
	return c
}

func newDictShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "List the words of a dictionary with their tones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dictionary.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range dictionary.Elements(d) {
				w := e.Word
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%d\n",
					e.UUID, w.Surface, w.Pronunciation, w.AccentString(), accent.FormatTones(w.Tones()), w.Priority)
			}
			return nil
		},
	}
}

func newDictConvertCmd() *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a dictionary as a keyed JSON or YAML object",
		Long: `Read a dictionary in either accepted shape and write it as the keyed
object. The output format follows the extension of <out> unless --format is
given; "-" writes to standard output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dictionary.LoadFile(args[0])
			if err != nil {
				return err
			}
			f := dictionary.FormatFromPath(args[1])
			if format != "" {
				if f, err = dictionary.ParseFormat(format); err != nil {
					return err
				}
			}
			if args[1] == "-" {
				return dictionary.Encode(cmd.OutOrStdout(), d, f)
			}
			return writeDict(args[1], d, f)
		},
	}
	c.Flags().StringVar(&format, "format", "", "output format (json or yaml)")
	return c
}

func newDictAddCmd(a *app) *cobra.Command {
	var (
		surface       string
		pronunciation string
		core          int
		priority      int
	)
	c := &cobra.Command{
		Use:   "add <file>",
		Short: "Register a word",
		Long: `Register a word in a dictionary file, creating the file if needed.
The accent core is clamped to the pronunciation's morae.

Example:
  accent dict add user_dict.json --surface 箸 --pronunciation ハシ --accent 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadOrEmpty(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("priority") {
				priority = a.cfg.Dictionary.DefaultPriority
			}

			e := dictionary.NewEditor(d, notify.NewLogNotifier(a.log))
			if err := dictionary.ValidatePronunciation(pronunciation); err != nil {
				e.Notifier.Notify(fmt.Sprintf("failed to register word: %v", err), notify.Error)
				return err
			}
			ms := mora.Segment(mora.Normalize(pronunciation))
			e.State = e.State.WithReading(surface, accent.Tones(ms, accent.Flat()))
			e.State = e.State.WithAccentIndex(accent.FromCore(core, len(ms)).Index(len(ms)))
			e.State.Priority = priority

			id, err := e.Register()
			if err != nil {
				return err
			}
			if err := writeDict(args[0], e.Dict, dictionary.FormatFromPath(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	c.Flags().StringVar(&surface, "surface", "", "written form of the word")
	c.Flags().StringVar(&pronunciation, "pronunciation", "", "reading in kana")
	c.Flags().IntVar(&core, "accent", 0, "accent core (0 = flat)")
	c.Flags().IntVar(&priority, "priority", dictionary.DefaultPriority, "priority 0..10")
	c.MarkFlagRequired("surface")
	c.MarkFlagRequired("pronunciation")
	return c
}

func newDictDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file> <id>",
		Short: "Delete a word by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dictionary.LoadFile(args[0])
			if err != nil {
				return err
			}
			e := dictionary.NewEditor(d, notify.NewLogNotifier(a.log))
			if err := e.Select(args[1]); err != nil {
				return err
			}
			if err := e.Delete(); err != nil {
				return err
			}
			return writeDict(args[0], e.Dict, dictionary.FormatFromPath(args[0]))
		},
	}
}

func loadOrEmpty(path string) (dictionary.UserDict, error) {
	d, err := dictionary.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return dictionary.UserDict{}, nil
	}
	return d, err
}

// writeDict replaces path atomically.
func writeDict(path string, d dictionary.UserDict, f dictionary.Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".accent-dict-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := dictionary.Encode(tmp, d, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
