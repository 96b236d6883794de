package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	agentTimeout  time.Duration
	bind          string
	checkInterval int
	dryRun        bool
	maxRounds     int
	players       int
	port          int
	prefix        string
	profile       bool
	reveal        bool
	seed          int64
	serve         bool
	step          bool
	tlsCert       string
	tlsKey        string
	verbose       bool
	version       bool
}

func (c *Config) validate() error {
	if c.players < 2 {
		return fmt.Errorf("need at least 2 players, got %d", c.players)
	}
	if c.checkInterval < 1 {
		return fmt.Errorf("invalid check interval (must be at least 1): %d", c.checkInterval)
	}
	if c.maxRounds < 1 {
		return fmt.Errorf("invalid round limit (must be at least 1): %d", c.maxRounds)
	}
	if c.agentTimeout <= 0 {
		return fmt.Errorf("invalid agent timeout: %s", c.agentTimeout)
	}
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("STILLEPOST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "stillepost",
		Short:         "A social deduction game in which language models try to guess which model they are.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return runMatch(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.DurationVar(&cfg.agentTimeout, "agent-timeout", 2*time.Minute, "time before a player's turn is passed (env: STILLEPOST_AGENT_TIMEOUT)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address for the observer server to bind to (env: STILLEPOST_BIND)")
	fs.IntVar(&cfg.checkInterval, "check-interval", 3, "rounds between identity checks (env: STILLEPOST_CHECK_INTERVAL)")
	fs.BoolVar(&cfg.dryRun, "dry-run", false, "use scripted players instead of live model backends (env: STILLEPOST_DRY_RUN)")
	fs.IntVar(&cfg.maxRounds, "max-rounds", 15, "round limit (env: STILLEPOST_MAX_ROUNDS)")
	fs.IntVarP(&cfg.players, "players", "n", 5, "number of seats in the match (env: STILLEPOST_PLAYERS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port for the observer server to listen on (env: STILLEPOST_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: STILLEPOST_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: STILLEPOST_PROFILE)")
	fs.BoolVar(&cfg.reveal, "reveal", false, "reveal non-winner identities in the final summary (env: STILLEPOST_REVEAL)")
	fs.Int64Var(&cfg.seed, "seed", 0, "match RNG seed; 0 draws one at random (env: STILLEPOST_SEED)")
	fs.BoolVar(&cfg.serve, "serve", false, "enable the observer web server (env: STILLEPOST_SERVE)")
	fs.BoolVar(&cfg.step, "step", false, "pause for Enter between turns (env: STILLEPOST_STEP)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: STILLEPOST_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: STILLEPOST_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: STILLEPOST_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: STILLEPOST_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("stillepost v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
