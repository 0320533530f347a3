package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/japaniel/accent/pkg/accent"
	"github.com/japaniel/accent/pkg/mora"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newSegmentCmd() *cobra.Command {
	var count bool
	c := &cobra.Command{
		Use:   "segment <kana>...",
		Short: "Split kana into morae",
		Long: `Split each argument into morae, one argument per output line.
Hiragana and half-width katakana are normalized first; characters that are
not katakana are dropped.

Example:
  accent segment キャベツ   # キャ ベ ツ
  accent segment --count ちょっと`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				kana := mora.Normalize(arg)
				if count {
					fmt.Fprintln(out, mora.Count(kana))
					continue
				}
				ms := lo.Map(mora.Segment(kana), func(m mora.Mora, _ int) string { return m.String() })
				fmt.Fprintln(out, strings.Join(ms, " "))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&count, "count", false, "print the number of morae instead")
	return c
}

func newTonesCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "tones <pronunciation> [core]",
		Short: "Compute the tone of every mora from an accent core",
		Long: `Print the tone pattern of a pronunciation for an accent core
(0 = flat, k = drop after the k-th mora). Cores outside 0..morae are clamped.

Example:
  accent tones ハシ 2       # LH|L
  accent tones --json ネコ 1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := mora.Segment(mora.Normalize(args[0]))
			core := 0
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid accent core %q: %w", args[1], err)
				}
				core = n
			}
			t := accent.FromCore(core, len(ms))
			return printTones(cmd, accent.Tones(ms, t), asJSON)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print the tone list as JSON")
	return c
}

func newCoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "core <pronunciation> <tones>",
		Short: "Derive the accent core from a tone pattern",
		Long: `Read a hand-painted tone pattern (one tone per mora plus the
particle) and print the accent it normalizes to as "core/total".

Example:
  accent core ハシ LH|L     # 2/2
  accent core ハシ LH|H     # 0/2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tones, err := paint(args[0], args[1])
			if err != nil {
				return err
			}
			n := len(tones) - 1
			t := accent.TypeOf(tones)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", accent.Format(t, n), t)
			return nil
		},
	}
}

func newRetoneCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "retone <pronunciation> <tones> <index>",
		Short: "Move the accent marker of a tone pattern",
		Long: `Recompute a tone pattern with its accent marker at index, the
0-indexed last high mora. The index of the particle selects flat.

Example:
  accent retone ハシ LH|L 2  # LH|H`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tones, err := paint(args[0], args[1])
			if err != nil {
				return err
			}
			idx, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid accent index %q: %w", args[2], err)
			}
			return printTones(cmd, accent.Retone(tones, idx), asJSON)
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print the tone list as JSON")
	return c
}

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <core/total>...",
		Short: "Normalize accent strings",
		Long: `Parse "core/total" accent strings, clamp the core and print them
back with a description.

Example:
  accent format 5/4         # 4/4  drop-after-4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				t, n, err := accent.Parse(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", accent.Format(t, n), t)
			}
			return nil
		},
	}
}

// paint pairs the morae of pronunciation with a tone pattern.
func paint(pronunciation, pattern string) ([]accent.ToneMora, error) {
	tones, err := accent.ParseTones(pattern)
	if err != nil {
		return nil, err
	}
	return accent.WithTones(mora.Segment(mora.Normalize(pronunciation)), tones)
}

func printTones(cmd *cobra.Command, tones []accent.ToneMora, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		return enc.Encode(tones)
	}
	n := len(tones) - 1
	_, err := fmt.Fprintf(out, "%s\t%s\t%s\n", accent.Pronunciation(tones), accent.Format(accent.TypeOf(tones), n), accent.FormatTones(tones))
	return err
}
