package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"fuelplan/pkg/core"
	"fuelplan/pkg/game"
	"fuelplan/pkg/types"
)

// --- Plan ---

func handlePlan(w io.Writer, logger kitlog.Logger, req PlanRequest, token bool) error {
	planner := game.NewPlanner(req.Config, logger)
	res, err := planner.Plan(req.Members, req.Distance)
	if err != nil {
		return err
	}
	writeResult(w, planner, req, res)
	if !token {
		return nil
	}
	tok, err := core.Token(res.Distance, res.Trip)
	if err != nil {
		return fmt.Errorf("plan token: %w", err)
	}
	fp := core.Fingerprint(res.Distance, res.Trip)
	level.Debug(logger).Log("msg", "plan token", "fingerprint", fp, "bytes", len(tok))
	fmt.Fprintf(w, "Plan token: %s\nFingerprint: %s\n", tok, fp)
	return nil
}

func writeResult(w io.Writer, planner *game.Planner, req PlanRequest, res types.Result) {
	cfg := planner.Config()
	trip := res.Trip
	fleet := planner.Load(game.NewFleet(req.Members...), res.Distance, trip.MaxWarp)

	if res.AutoPopulation {
		if fleet.Colonizer {
			fmt.Fprintf(w, "IS pop to board %d (Colonizers, so full on arrival)\n", fleet.Population)
		} else {
			fmt.Fprintf(w, "IS pop to board %d (Freighters, so full turn before arrival)\n", fleet.Population)
		}
	}
	fmt.Fprintf(w, "Moving %.2f ly in %d turns with %s\n", res.Distance, trip.Turns(), fleet)
	for _, c := range res.Candidates {
		fmt.Fprintf(w, "  max warp %d: %d boosters, %d turns, left %d\n", c.MaxWarp, c.Boosters, c.Turns(), c.EndFuel)
	}
	fmt.Fprintf(w, "\nUsing %d %s boosters at max warp %d\n", trip.Boosters, cfg.Booster.Name, trip.MaxWarp)
	writeTrip(w, res.Distance, trip)
}

// writeTrip prints the legs of a trip and the arrival summary.
func writeTrip(w io.Writer, distance float64, trip types.Trip) {
	togo := distance
	for _, l := range trip.Legs {
		togo = math.Max(0, togo-l.Distance)
		fmt.Fprintf(w, "Moved %.2f at warp %d with %d boosters, burn %d, fuel %d, distance to go: %.2f\n",
			l.Distance, l.Warp, l.Boosters, l.Burn, l.Fuel, togo)
		if l.Released > 0 {
			fmt.Fprintf(w, "%d boosters leave with %d fuel, left: %d\n", l.Released, l.ReleasedFuel, l.Fuel-l.ReleasedFuel)
		}
	}
	fmt.Fprintf(w, "\nArrived! %d boosters, jumps: %v, fuel consumed %d, left %d (burnt %d, %d handed to released boosters)\n",
		trip.Boosters, trip.Warps(), trip.Consumed(), trip.EndFuel, trip.Burned(), trip.Handed())
}

// --- Decode ---

func handleDecode(w io.Writer, token string) error {
	distance, trip, err := core.ParseToken(token)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Plan %s: %.2f ly at max warp %d, %d boosters, population %d, fuel %d\n",
		core.Fingerprint(distance, trip), distance, trip.MaxWarp, trip.Boosters, trip.Population, trip.StartFuel)
	writeTrip(w, distance, trip)
	return nil
}

// --- Roster ---

func handleRoster(w io.Writer, reg types.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHIP\tNAME\tFUEL\tWEIGHT\tCARGO\tFUEL PROD\tCOLONIZER\tENGINES")
	for _, id := range reg.ShipIDs() {
		s := reg.Ships[id]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%t\t%d\n",
			id, s.Name, s.Fuel, s.Weight, s.Cargo, s.FuelProduction, s.Colonizer, s.Engines)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ENGINE\tWEIGHT\tEFFICIENCY\tWITH IFE")
	for _, id := range reg.EngineIDs() {
		e := reg.Engines[id]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", id, e.Weight, formatTable(e.Table(false)), formatTable(e.Table(true)))
	}
	return tw.Flush()
}

func formatTable(eff []float64) string {
	parts := make([]string, len(eff))
	for i, v := range eff {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, " ")
}
