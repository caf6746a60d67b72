package main

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"fuelplan/pkg/game"
	"fuelplan/pkg/types"
)

var (
	ErrBadFleet = errors.New("bad fleet descriptor")

	fleetPattern = regexp.MustCompile(`^(\d*)([A-Za-z]\w*)$`)
)

// setupLogging writes logfmt lines tagged with a per-run id. Only warnings and
// errors pass unless verbose is set.
func setupLogging(w io.Writer, verbose bool) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	allow := level.AllowWarn()
	if verbose {
		allow = level.AllowDebug()
	}
	logger = level.NewFilter(logger, allow)
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "run", uuid.NewString())
}

func loadOptions(v *viper.Viper) Options {
	return Options{
		AR:           v.GetBool("ar"),
		Engine:       v.GetString("engine"),
		NoIFE:        v.GetBool("no-ife"),
		IS:           v.GetInt("is"),
		Pop:          v.GetInt("pop"),
		Colonize:     v.GetBool("col"),
		Cargo:        v.GetInt("cargo"),
		CheapEngine:  v.GetBool("ce"),
		Booster:      v.GetString("booster"),
		MaxWarp:      v.GetInt("max-warp"),
		KeepBoosters: v.GetBool("keep-boosters"),
		Catalog:      v.GetString("catalog"),
		Token:        v.GetBool("token"),
		Verbose:      v.GetBool("verbose"),
		Distance:     v.GetFloat64("distance"),
		Ships:        v.GetStringSlice("ships"),
	}
}

// parseFleet reads a "[count]id" descriptor such as "2pfr" or "scout".
func parseFleet(desc string, reg types.Registry) (types.Member, error) {
	m := fleetPattern.FindStringSubmatch(desc)
	if m == nil {
		return types.Member{}, fmt.Errorf("%w: %q", ErrBadFleet, desc)
	}
	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return types.Member{}, fmt.Errorf("%w: %q needs a positive count", ErrBadFleet, desc)
		}
		count = n
	}
	ship, err := reg.Ship(m[2])
	if err != nil {
		return types.Member{}, err
	}
	return types.Member{Ship: ship, Count: count}, nil
}

// resolveConfig validates options against the registry and builds the planner input.
func resolveConfig(opts Options, reg types.Registry) (PlanRequest, error) {
	var req PlanRequest
	if err := game.CheckDistance(opts.Distance); err != nil {
		return req, err
	}
	if len(opts.Ships) == 0 {
		return req, fmt.Errorf("%w: no ships given", ErrBadFleet)
	}

	engine, err := reg.Engine(opts.Engine)
	if err != nil {
		return req, err
	}
	if err := engine.Validate(); err != nil {
		return req, err
	}
	if opts.MaxWarp < 1 || opts.MaxWarp > engine.MaxWarp() {
		return req, fmt.Errorf("max warp %d outside 1..%d for engine %q", opts.MaxWarp, engine.MaxWarp(), engine.ID)
	}
	if opts.Cargo < 0 {
		return req, fmt.Errorf("negative cargo %d", opts.Cargo)
	}
	if opts.IS < 0 {
		return req, fmt.Errorf("negative IS growth rate %d", opts.IS)
	}
	if opts.Pop < AutoPopulation {
		return req, fmt.Errorf("negative population %d", opts.Pop)
	}

	for _, desc := range opts.Ships {
		m, err := parseFleet(desc, reg)
		if err != nil {
			return req, err
		}
		m.Ship = m.Ship.WithEngine(engine)
		req.Members = append(req.Members, m)
	}

	boosterID := opts.Booster
	if boosterID == "" {
		boosterID = PlainBooster
		if opts.IS > 0 {
			boosterID = ISBooster
		}
	}
	booster, err := reg.Ship(boosterID)
	if err != nil {
		return req, fmt.Errorf("booster: %w", err)
	}

	req.Distance = opts.Distance
	req.Config = game.Config{
		Engine:       engine,
		IFE:          !opts.NoIFE,
		CarryAR:      opts.AR,
		GrowthRate:   opts.IS,
		Colonize:     opts.Colonize,
		Cargo:        opts.Cargo,
		CheapEngine:  opts.CheapEngine,
		Booster:      booster.WithEngine(engine),
		MaxWarp:      opts.MaxWarp,
		KeepBoosters: opts.KeepBoosters,
	}
	if opts.Pop != AutoPopulation {
		pop := opts.Pop
		req.Config.Population = &pop
	}
	return req, nil
}
