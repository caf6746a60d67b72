package types

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// IFEDiscount is the fuel multiplier granted by Improved Fuel Efficiency.
const IFEDiscount = 0.85

var (
	ErrUnknownShip   = errors.New("unknown ship")
	ErrUnknownEngine = errors.New("unknown engine")
)

// --- Roster ---

// Ship is a hull template. Cargo is the cargo capacity of the hull, Fuel its full tank.
type Ship struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Fuel           int    `json:"fuel"`
	Weight         int    `json:"weight"`
	Cargo          int    `json:"cargo"`
	FuelProduction int    `json:"fuel_prod"`
	Colonizer      bool   `json:"colonizer"`
	Engines        int    `json:"engines"`
}

// WithEngine returns a copy of s whose weight includes its installed engines.
func (s Ship) WithEngine(e Engine) Ship {
	s.Weight += e.Weight * s.Engines
	return s
}

// Engine holds the per-warp efficiency table of an engine; Efficiency[w-1] is warp w.
type Engine struct {
	ID         string    `json:"id"`
	Weight     int       `json:"weight"`
	Efficiency []float64 `json:"efficiency"`
}

// MaxWarp is the highest warp factor the table covers.
func (e Engine) MaxWarp() int {
	return len(e.Efficiency)
}

func (e Engine) Validate() error {
	if len(e.Efficiency) == 0 {
		return fmt.Errorf("engine %q: empty efficiency table", e.ID)
	}
	if floats.HasNaN(e.Efficiency) || math.IsInf(floats.Max(e.Efficiency), 1) {
		return fmt.Errorf("engine %q: efficiency table is not finite", e.ID)
	}
	if floats.Min(e.Efficiency) < 0 {
		return fmt.Errorf("engine %q: negative efficiency", e.ID)
	}
	if e.Weight < 0 {
		return fmt.Errorf("engine %q: negative weight", e.ID)
	}
	return nil
}

// Table returns the efficiency table as seen by the fuel model.
func (e Engine) Table(ife bool) []float64 {
	out := make([]float64, len(e.Efficiency))
	if !ife {
		copy(out, e.Efficiency)
		return out
	}
	floats.ScaleTo(out, IFEDiscount, e.Efficiency)
	return out
}

// Registry resolves ship and engine ids. It is built once at the boundary.
type Registry struct {
	Ships   map[string]Ship
	Engines map[string]Engine
}

func NewRegistry() Registry {
	return Registry{Ships: make(map[string]Ship), Engines: make(map[string]Engine)}
}

func (r Registry) Ship(id string) (Ship, error) {
	s, ok := r.Ships[id]
	if !ok {
		return Ship{}, fmt.Errorf("%w: %q", ErrUnknownShip, id)
	}
	return s, nil
}

func (r Registry) Engine(id string) (Engine, error) {
	e, ok := r.Engines[id]
	if !ok {
		return Engine{}, fmt.Errorf("%w: %q", ErrUnknownEngine, id)
	}
	return e, nil
}

// ShipIDs returns the registered ship ids in sorted order.
func (r Registry) ShipIDs() []string {
	ids := make([]string, 0, len(r.Ships))
	for id := range r.Ships {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r Registry) EngineIDs() []string {
	ids := make([]string, 0, len(r.Engines))
	for id := range r.Engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Member is one entry of a fleet descriptor.
type Member struct {
	Ship  Ship
	Count int
}

// --- Plans ---

type Leg struct {
	Warp         int     `json:"warp"`
	Distance     float64 `json:"distance"`
	Boosters     int     `json:"boosters"` // escorting this leg
	Burn         int     `json:"burn"`
	Fuel         int     `json:"fuel"` // after the leg
	Released     int     `json:"released,omitempty"`
	ReleasedFuel int     `json:"released_fuel,omitempty"`
}

// Trip is a leg-by-leg plan for one max-warp cap and booster count.
type Trip struct {
	MaxWarp    int   `json:"max_warp"`
	Boosters   int   `json:"boosters"`
	Population int   `json:"population"`
	StartFuel  int   `json:"start_fuel"`
	EndFuel    int   `json:"end_fuel"`
	Legs       []Leg `json:"legs"`
}

func (t Trip) Turns() int {
	return len(t.Legs)
}

func (t Trip) Warps() []int {
	out := make([]int, len(t.Legs))
	for i, l := range t.Legs {
		out[i] = l.Warp
	}
	return out
}

// Burned is the fuel burnt by the travelling fleet.
func (t Trip) Burned() int {
	total := 0
	for _, l := range t.Legs {
		total += l.Burn
	}
	return total
}

// Handed is the fuel that left with released boosters.
func (t Trip) Handed() int {
	total := 0
	for _, l := range t.Legs {
		total += l.ReleasedFuel
	}
	return total
}

// Consumed includes fuel handed to departing boosters and offsets from fuel production.
func (t Trip) Consumed() int {
	return t.StartFuel - t.EndFuel
}

type Result struct {
	Distance       float64 `json:"distance"`
	Trip           Trip    `json:"trip"`
	Candidates     []Trip  `json:"candidates"`
	AutoPopulation bool    `json:"auto_population"`
}
