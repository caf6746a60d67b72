package main

import (
	"fuelplan/pkg/types"
)

// --- Configuration ---
const (
	EnvPrefix      = "FUELPLAN"
	DefaultEngine  = "mizer"
	DefaultMaxWarp = 9
	// AutoPopulation sizes the colonist payload from free capacity or IS growth.
	AutoPopulation = -1
	ISBooster      = "ftrans"
	PlainBooster   = "scout"
)

// --- Roster ---
var BuiltinEngines = map[string]types.Engine{
	"mizer":  {ID: "mizer", Weight: 6, Efficiency: []float64{0, 0, 0, 0, .35, 1.20, 1.75, 2.35, 3.60, 4.20}},
	"radram": {ID: "radram", Weight: 10, Efficiency: []float64{0, 0, 0, 0, 0, 0, 1.65, 3.75, 6.00, 7.20}},
}

var BuiltinShips = map[string]types.Ship{
	"scout":   {Name: "Scout", Fuel: 300, Weight: 11},
	"ftrans":  {Name: "Fuel Transport", Fuel: 750, Weight: 12, FuelProduction: 200},
	"pcol":    {Name: "Privateer colonizer", Fuel: 1150, Weight: 103, Cargo: 250, Colonizer: true},
	"pfr":     {Name: "Privateer freighter", Fuel: 1400, Weight: 74, Cargo: 250},
	"mf":      {Name: "Medium Freighter", Fuel: 700, Weight: 69, Cargo: 210},
	"col":     {Name: "Colonizer", Fuel: 200, Weight: 76, Cargo: 25, Colonizer: true},
	"dxboost": {Name: "DD Booster (XRay)", Fuel: 780, Weight: 44},
	"sfx":     {Name: "Super Fuel Export", Fuel: 2250, Weight: 123, FuelProduction: 200, Engines: 2},
}

// defaultRegistry copies the built-in tables so catalog rows never leak between runs.
func defaultRegistry() types.Registry {
	reg := types.NewRegistry()
	for id, e := range BuiltinEngines {
		e.Efficiency = append([]float64(nil), e.Efficiency...)
		reg.Engines[id] = e
	}
	for id, s := range BuiltinShips {
		s.ID = id
		if s.Engines == 0 {
			s.Engines = 1
		}
		reg.Ships[id] = s
	}
	return reg
}
