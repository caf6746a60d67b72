package game

import (
	"errors"
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/time/rate"

	"fuelplan/pkg/types"
)

const (
	// MaxBoosters bounds the booster search for each max-warp cap.
	MaxBoosters = 10
	// warpCaps is how many max-warp caps are tried, counting down from Config.MaxWarp.
	warpCaps = 3
	// MaxDistance keeps jump counts and integer light-years bounded.
	MaxDistance = 100000
)

var (
	ErrNoFeasiblePlan = errors.New("no feasible plan")
	ErrBadDistance    = errors.New("distance out of range")
)

// CheckDistance accepts distances in (0, MaxDistance].
func CheckDistance(distance float64) error {
	if !(distance > 0) || distance > MaxDistance {
		return fmt.Errorf("%w: %v, want 0 < distance <= %d", ErrBadDistance, distance, MaxDistance)
	}
	return nil
}

// Config is the resolved policy for one planning run.
type Config struct {
	Engine       types.Engine
	IFE          bool
	CarryAR      bool
	GrowthRate   int  // IS growth rate in percent, 0 disables growth in transit
	Population   *int // explicit payload, nil sizes it automatically
	Colonize     bool
	Cargo        int
	CheapEngine  bool
	Booster      types.Ship
	MaxWarp      int
	KeepBoosters bool
}

// Planner searches max-warp caps and booster counts for the cheapest working trip.
type Planner struct {
	cfg    Config
	logger kitlog.Logger
	trace  *rate.Sometimes
}

func NewPlanner(cfg Config, logger kitlog.Logger) *Planner {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Planner{
		cfg:    cfg,
		logger: kitlog.With(logger, "subsys", "planner"),
		trace:  &rate.Sometimes{First: 5, Every: 25, Interval: time.Second},
	}
}

func (p *Planner) Config() Config {
	return p.cfg
}

// Plan finds the trip over distance needing the fewest boosters. Among caps needing
// the same number of boosters the faster one wins.
func (p *Planner) Plan(members []types.Member, distance float64) (types.Result, error) {
	res := types.Result{Distance: distance, AutoPopulation: p.cfg.Population == nil && p.cfg.GrowthRate > 0}
	if err := CheckDistance(distance); err != nil {
		return res, err
	}
	base := NewFleet(members...)
	caps := p.warpCandidates()
	best := -1
	for _, mw := range caps {
		fleet := p.Load(base, distance, mw)
		trip, ok := p.searchBoosters(fleet, distance, mw)
		if !ok {
			level.Warn(p.logger).Log("msg", "max warp abandoned", "max_warp", mw, "boosters", MaxBoosters)
			continue
		}
		level.Info(p.logger).Log("msg", "candidate", "max_warp", mw, "boosters", trip.Boosters,
			"turns", trip.Turns(), "fuel_left", trip.EndFuel)
		res.Candidates = append(res.Candidates, trip)
		if best < 0 || trip.Boosters < res.Candidates[best].Boosters {
			best = len(res.Candidates) - 1
		}
	}
	if best < 0 {
		return res, fmt.Errorf("%w: %.2f ly with max warp %v and up to %d boosters",
			ErrNoFeasiblePlan, distance, caps, MaxBoosters)
	}
	res.Trip = res.Candidates[best]
	return res, nil
}

func (p *Planner) searchBoosters(fleet Fleet, distance float64, maxWarp int) (types.Trip, bool) {
	for n := 0; n <= MaxBoosters; n++ {
		if trip, ok := p.SimulateTrip(fleet, distance, n, maxWarp); ok {
			return trip, true
		}
	}
	return types.Trip{}, false
}

func (p *Planner) warpCandidates() []int {
	var caps []int
	for w := p.cfg.MaxWarp; w > p.cfg.MaxWarp-warpCaps && w >= 1; w-- {
		caps = append(caps, w)
	}
	return caps
}

// Load fills base with cargo and population for a trip at maxWarp. Colonists fill
// the free capacity unless an explicit population is set; with IS growth the fleet
// embarks just enough to be full on arrival (colonizers) or a turn before (freighters).
func (p *Planner) Load(base Fleet, distance float64, maxWarp int) Fleet {
	f := base
	if p.cfg.Colonize {
		f.Colonizer = true
	}
	f.Cargo = min(f.Capacity, p.cfg.Cargo)
	free := f.Capacity - f.Cargo
	f.Population = free
	if p.cfg.Population != nil {
		f.Population = min(free, *p.cfg.Population)
		return f
	}
	if p.cfg.GrowthRate > 0 {
		turns := MinimumTurns(distance, maxWarp)
		if !f.Colonizer {
			turns--
		}
		if turns > 0 {
			f.Population = EmbarkationTarget(free, turns, p.cfg.GrowthRate)
		}
	}
	return f
}
