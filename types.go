package main

import (
	"fuelplan/pkg/game"
	"fuelplan/pkg/types"
)

// --- CLI Models ---

// Options is the merged view of flags, FUELPLAN_* variables and the scenario file.
type Options struct {
	AR           bool
	Engine       string
	NoIFE        bool
	IS           int
	Pop          int
	Colonize     bool
	Cargo        int
	CheapEngine  bool
	Booster      string
	MaxWarp      int
	KeepBoosters bool
	Catalog      string
	Token        bool
	Verbose      bool

	// A scenario file may carry the trip itself; positional arguments win.
	Distance float64
	Ships    []string
}

// PlanRequest is a validated trip ready for the planner.
type PlanRequest struct {
	Distance float64
	Members  []types.Member
	Config   game.Config
}
