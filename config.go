/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/charades/games/charades"
)

type Config struct {
	bind           string
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
	words          string

	teams       int
	turnSeconds int
	rounds      int
	wordsMode   string
	policy      string
	restrict    string

	log zerolog.Logger
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if err := c.gameDefaults().Validate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// gameDefaults is the configuration new games start with.
func (c *Config) gameDefaults() charades.Config {
	return charades.Config{
		Teams:       c.teams,
		TurnSeconds: c.turnSeconds,
		Rounds:      c.rounds,
		WordMode:    charades.WordMode(c.wordsMode),
		Policy:      charades.Policy(c.policy),
		Restriction: charades.Restriction(c.restrict),
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CHARADES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := charades.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "charades",
		Short:         "A team charades party game, served as a single offline-capable webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			cfg.log = newLogger(cfg)
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CHARADES_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CHARADES_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CHARADES_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CHARADES_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle games are ended (env: CHARADES_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CHARADES_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CHARADES_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CHARADES_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: CHARADES_VERSION)")
	fs.StringVarP(&cfg.words, "words", "w", "", "path or http(s) url of a json/yaml word list, built-in list if empty (env: CHARADES_WORDS)")

	fs.IntVar(&cfg.teams, "teams", defaults.Teams, "default number of teams, 2-4 (env: CHARADES_TEAMS)")
	fs.IntVar(&cfg.turnSeconds, "turn-seconds", defaults.TurnSeconds, "default seconds per turn (env: CHARADES_TURN_SECONDS)")
	fs.IntVar(&cfg.rounds, "rounds", defaults.Rounds, "default number of rounds (env: CHARADES_ROUNDS)")
	fs.StringVar(&cfg.wordsMode, "words-mode", string(defaults.WordMode), "default words per turn: single or multiple (env: CHARADES_WORDS_MODE)")
	fs.StringVar(&cfg.policy, "policy", string(defaults.Policy), "default word sequencing: accumulate or predrawn (env: CHARADES_POLICY)")
	fs.StringVar(&cfg.restrict, "restrict", string(defaults.Restriction), "default category restriction: none, bonus or strict (env: CHARADES_RESTRICT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("charades v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
