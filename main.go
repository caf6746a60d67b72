package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/spf13/viper"

	"fuelplan/pkg/game"
)

const usage = `usage:
  fuelplan [flags] <distance> <ships...>   plan a trip, ships are [count]id e.g. 2pfr scout
  fuelplan [flags] decode <token>          print a plan from a plan token
  fuelplan [flags] roster                  list ships and engines

flags:
`

func newFlagSet(stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("fuelplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.Bool("ar", false, "carry AR population, which decays 3% per turn in transit")
	fs.String("engine", DefaultEngine, "engine id")
	fs.Bool("no-ife", false, "disable Improved Fuel Efficiency")
	fs.Int("is", 0, "IS growth rate in percent, 0 disables growth in transit")
	fs.Int("pop", AutoPopulation, "population to embark, -1 sizes it automatically")
	fs.Bool("col", false, "the fleet colonizes on arrival")
	fs.Int("cargo", 0, "cargo to load")
	fs.Bool("ce", false, "cheap engine, finish with a free warp 6 jump when it costs no turn")
	fs.String("booster", "", "booster ship id (default ftrans with -is, scout otherwise)")
	fs.Int("max-warp", DefaultMaxWarp, "highest warp to fly")
	fs.Int("w", DefaultMaxWarp, "shorthand for -max-warp")
	fs.Bool("keep-boosters", false, "boosters escort the whole trip")
	fs.String("scenario", "", "TOML scenario file")
	fs.String("catalog", "", "SQLite roster catalog with extra ships and engines")
	fs.Bool("token", false, "print a plan token and fingerprint")
	fs.Bool("verbose", false, "debug logging")
	return fs
}

// configKey maps a flag name to its configuration key.
func configKey(name string) string {
	if name == "w" {
		return "max-warp"
	}
	return name
}

// initConfig layers flags over FUELPLAN_* variables over the scenario file.
func initConfig(fs *flag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	fs.VisitAll(func(f *flag.Flag) {
		if f.Name != "w" {
			v.SetDefault(f.Name, f.DefValue)
		}
	})
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	fs.Visit(func(f *flag.Flag) {
		v.Set(configKey(f.Name), f.Value.String())
	})

	if scenario := v.GetString("scenario"); scenario != "" {
		v.SetConfigFile(scenario)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario, err)
		}
	}
	return v, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	v, err := initConfig(fs)
	if err != nil {
		return err
	}
	opts := loadOptions(v)
	logger := setupLogging(stderr, opts.Verbose)

	reg := defaultRegistry()
	if opts.Catalog != "" {
		db, err := openCatalog(opts.Catalog)
		if err != nil {
			return err
		}
		defer db.Close()
		ships, engines, err := loadCatalog(db, reg)
		if err != nil {
			return err
		}
		level.Info(logger).Log("msg", "catalog loaded", "path", opts.Catalog, "ships", ships, "engines", engines)
	}

	rest := fs.Args()
	if len(rest) > 0 {
		switch rest[0] {
		case "decode":
			if len(rest) != 2 {
				return errors.New("decode takes exactly one token")
			}
			return handleDecode(stdout, rest[1])
		case "roster":
			return handleRoster(stdout, reg)
		}
		d, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("%w: %q", game.ErrBadDistance, rest[0])
		}
		opts.Distance = d
		if len(rest) > 1 {
			opts.Ships = rest[1:]
		}
	}

	req, err := resolveConfig(opts, reg)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "plan", "distance", req.Distance, "ships", strings.Join(opts.Ships, ","),
		"engine", req.Config.Engine.ID, "booster", req.Config.Booster.ID, "max_warp", req.Config.MaxWarp)
	return handlePlan(stdout, logger, req, opts.Token)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "fuelplan:", err)
		os.Exit(1)
	}
}
