package game

import (
	"github.com/go-kit/log/level"

	"fuelplan/pkg/types"
)

// SimulateTrip flies fleet over distance escorted by boosters copies of the configured
// booster. Along the way it sends home as many boosters as the rest of the trip can
// spare, as early as possible. ok is false when the fleet runs out of fuel.
func (p *Planner) SimulateTrip(fleet Fleet, distance float64, boosters, maxWarp int) (trip types.Trip, ok bool) {
	escort := boosterFleet(p.cfg.Booster)
	for i := 0; i < boosters; i++ {
		fleet = fleet.Merge(escort)
	}
	s := &search{
		cfg:     p.cfg,
		jumps:   Schedule(distance, maxWarp, p.cfg.CheapEngine),
		booster: escort,
		memo:    make(map[searchKey]searchResult),
	}
	s.homeFuel = make([]int, len(s.jumps))
	spent := 0
	for i, j := range s.jumps {
		// boosters fly back over full jumps
		reach := float64(j.Warp * j.Warp)
		spent += Consumption(escort.Weight, reach, j.Warp, p.cfg.Engine, p.cfg.IFE)
		s.homeFuel[i] = spent
	}

	legs, ok := s.fly(fleet, 0, boosters)
	trip = types.Trip{
		MaxWarp:    maxWarp,
		Boosters:   boosters,
		Population: fleet.Population,
		StartFuel:  fleet.Fuel,
		EndFuel:    fleet.Fuel,
		Legs:       legs,
	}
	if len(legs) > 0 {
		trip.EndFuel = legs[len(legs)-1].Fuel
	}
	p.trace.Do(func() {
		level.Debug(p.logger).Log("msg", "trial", "max_warp", maxWarp, "boosters", boosters,
			"jumps", len(s.jumps), "states", len(s.memo), "ok", ok)
	})
	return trip, ok
}

type searchKey struct {
	fleet    Fleet
	jump     int
	boosters int
}

type searchResult struct {
	legs []types.Leg
	ok   bool
}

// search walks a fixed jump schedule. Outcomes depend only on the fleet state at a
// jump index, so they are memoized.
type search struct {
	cfg      Config
	jumps    []Jump
	booster  Fleet
	homeFuel []int // fuel one booster needs to fly home after jump i
	memo     map[searchKey]searchResult
}

func (s *search) fly(f Fleet, start, boosters int) ([]types.Leg, bool) {
	key := searchKey{f, start, boosters}
	if r, ok := s.memo[key]; ok {
		return r.legs, r.ok
	}
	var legs []types.Leg
	for i := start; i < len(s.jumps); i++ {
		j := s.jumps[i]
		burn := f.Move(j.Warp, j.Distance, s.cfg)
		leg := types.Leg{Warp: j.Warp, Distance: j.Distance, Boosters: boosters, Burn: burn, Fuel: f.Fuel}
		if f.Fuel < 0 {
			s.memo[key] = searchResult{}
			return nil, false
		}
		if i+1 < len(s.jumps) && boosters > 1 && !s.cfg.KeepBoosters {
			for n := boosters - 1; n >= 1; n-- {
				rest, handed, ok := s.tryRelease(f, i, boosters, n)
				if !ok {
					continue
				}
				leg.Released = n
				leg.ReleasedFuel = handed
				legs = append(legs, leg)
				legs = append(legs, rest...)
				s.memo[key] = searchResult{legs: legs, ok: true}
				return legs, true
			}
		}
		legs = append(legs, leg)
	}
	s.memo[key] = searchResult{legs: legs, ok: true}
	return legs, true
}

// tryRelease sends n boosters home after jump i on a copy of f and searches the rest.
func (s *search) tryRelease(f Fleet, i, boosters, n int) ([]types.Leg, int, bool) {
	trial, handed := f.release(s.booster, n, s.homeFuel[i])
	if trial.Fuel < 0 {
		return nil, 0, false
	}
	rest, ok := s.fly(trial, i+1, boosters-n)
	return rest, handed, ok
}
