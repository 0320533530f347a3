// Package cmd contains the CLI commands of the accent tool.
package cmd

import (
	"github.com/japaniel/accent/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	g2pFile string
	cfg     *config.Config
	log     *logrus.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "accent",
		Short: "Japanese pitch accent toolkit",
		Long: `accent segments katakana into morae and converts between an accent
core and the high/low tone of every mora.

A tone pattern lists one tone per mora followed by the tone of a trailing
particle ガ, e.g. "LHHH|H" for a flat four-mora word and "LHHH|L" for one
that drops after its last mora.

Example:
  accent segment キャベツ
  accent tones アリガトウ 2
  accent core ハシ LH|L
  accent g2p 猫 有難う`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./accent.yaml or $HOME/.config/accent/accent.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newSegmentCmd(),
		newTonesCmd(),
		newCoreCmd(),
		newRetoneCmd(),
		newFormatCmd(),
		newG2PCmd(a),
		newCacheCmd(a),
		newDictCmd(a),
	)
	return root
}

// commandKeys maps flags defined on several subcommands to config keys.
// They are bound for the command being run only.
var commandKeys = map[string]string{
	"cache":   "cache.path",
	"workers": "g2p.workers",
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	for name, key := range commandKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	logger.WithField("config", a.v.ConfigFileUsed()).Debug("configuration loaded")
	return nil
}
