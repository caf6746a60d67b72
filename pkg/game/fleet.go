package game

import (
	"fmt"

	"fuelplan/pkg/types"
)

// arDecay is the share of AR population lost per turn in transit, in percent.
const arDecay = 3

// Fleet is one or more ships moving as a single logical ship. It is a value type:
// assigning a Fleet copies it, so search branches never share state.
type Fleet struct {
	Name           string
	Fuel           int
	Tank           int
	Weight         int
	Cargo          int
	Population     int
	Capacity       int
	FuelProduction int
	Colonizer      bool
	Engines        int
}

// NewFleet aggregates a fleet descriptor. Hull cargo space becomes fleet capacity;
// the fleet starts empty with full tanks.
func NewFleet(members ...types.Member) Fleet {
	f := Fleet{Name: "Fleet"}
	for _, m := range members {
		s := m.Ship
		f.Fuel += s.Fuel * m.Count
		f.Weight += s.Weight * m.Count
		f.Capacity += s.Cargo * m.Count
		f.FuelProduction += s.FuelProduction * m.Count
		f.Engines += s.Engines * m.Count
		f.Colonizer = f.Colonizer || (s.Colonizer && m.Count > 0)
	}
	f.Tank = f.Fuel
	return f
}

// boosterFleet is an escort flying empty.
func boosterFleet(s types.Ship) Fleet {
	return Fleet{
		Name:           s.Name,
		Fuel:           s.Fuel,
		Tank:           s.Fuel,
		Weight:         s.Weight,
		FuelProduction: s.FuelProduction,
		Engines:        s.Engines,
	}
}

func (f Fleet) Merge(others ...Fleet) Fleet {
	for _, o := range others {
		f.Fuel += o.Fuel
		f.Tank += o.Tank
		f.Weight += o.Weight
		f.Cargo += o.Cargo
		f.Population += o.Population
		f.Capacity += o.Capacity
		f.FuelProduction += o.FuelProduction
		f.Engines += o.Engines
		f.Colonizer = f.Colonizer || o.Colonizer
	}
	return f
}

// Mass is what the engines have to move.
func (f Fleet) Mass() int {
	return f.Weight + f.Cargo + f.Population
}

// Move flies one leg and returns the fuel burnt. Fuel may go negative, which
// means the leg was not feasible.
func (f *Fleet) Move(warp int, distance float64, cfg Config) int {
	if cfg.CarryAR {
		f.Population -= f.Population * arDecay / 100
	}
	burn := Consumption(f.Mass(), distance, warp, cfg.Engine, cfg.IFE)
	f.Fuel += f.FuelProduction - burn
	if cfg.GrowthRate > 0 {
		f.Population = Grow(f.Population, f.Capacity-f.Cargo, cfg.GrowthRate)
	}
	return burn
}

// release sends n boosters home. Each keeps homeFuel to retrace the jumps flown;
// the fleet keeps what is left of the pooled fuel, up to its own tanks.
// It returns the reduced fleet and the fuel leaving with the boosters.
func (f Fleet) release(booster Fleet, n, homeFuel int) (Fleet, int) {
	out := f
	out.Weight -= n * booster.Weight
	out.Tank -= n * booster.Tank
	out.FuelProduction -= n * booster.FuelProduction
	out.Engines -= n * booster.Engines
	out.Fuel -= n * homeFuel
	if out.Fuel > out.Tank {
		out.Fuel = out.Tank
	}
	return out, f.Fuel - out.Fuel
}

func (f Fleet) String() string {
	return fmt.Sprintf("[%s: fuel=%4d, wt=%d, pop=%d, cargo=%d, cap=%d, col=%t, fuel_prod=%d]",
		f.Name, f.Fuel, f.Weight, f.Population, f.Cargo, f.Capacity, f.Colonizer, f.FuelProduction)
}
