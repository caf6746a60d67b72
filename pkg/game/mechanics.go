package game

import (
	"math"

	"github.com/shopspring/decimal"

	"fuelplan/pkg/types"
)

var (
	ifeDiscount = decimal.NewFromFloat(types.IFEDiscount)
	fuelDivisor = decimal.NewFromInt(200)
)

// cheapJump is the range of a warp 6 jump, the last warp most cheap engines run for free.
const cheapJump = 36

// --- Fuel ---

// Consumption returns the fuel needed to move mass over distance at warp.
// A jump shorter than its natural range still pays for the whole fractional light-year.
func Consumption(mass int, distance float64, warp int, engine types.Engine, ife bool) int {
	if distance < float64(warp*warp) {
		distance = math.Ceil(distance)
	} else {
		distance = math.Trunc(distance)
	}
	eff := decimal.NewFromFloat(engine.Efficiency[warp-1])
	if ife {
		eff = eff.Mul(ifeDiscount)
	}
	fuel := decimal.NewFromInt(int64(mass)).
		Mul(decimal.NewFromFloat(distance)).
		Mul(eff).
		Div(fuelDivisor).
		Ceil()
	return int(fuel.IntPart())
}

// --- Warp ---

// MinimumTurns is the number of turns needed at maxWarp. Remainders under one
// light-year do not cost an extra turn.
func MinimumTurns(distance float64, maxWarp int) int {
	d := maxWarp * maxWarp
	turns := int(distance) / d
	if distance-float64(turns*d) >= 1 {
		turns++
	}
	return turns
}

// ChooseWarp picks the warp for the next leg of distance, spreading it evenly over
// the minimum number of turns.
func ChooseWarp(distance float64, maxWarp int, cheapEngine bool) int {
	turns := MinimumTurns(distance, maxWarp)
	if cheapEngine && distance >= 82 {
		// finish with a warp 6 jump when it does not cost a turn
		if MinimumTurns(distance-cheapJump, maxWarp)+1 == turns {
			distance -= cheapJump
			turns--
		}
	}
	d := float64(int(distance))
	ideal := int(math.Ceil(math.Sqrt(d / float64(turns))))
	return min(ideal, int(math.Ceil(math.Sqrt(d))))
}

// Jump is one leg of a schedule.
type Jump struct {
	Warp     int
	Distance float64
}

// Schedule expands a trip into jumps, re-deriving the warp from the remaining distance
// before every leg.
func Schedule(distance float64, maxWarp int, cheapEngine bool) []Jump {
	var jumps []Jump
	for distance >= 1 {
		w := ChooseWarp(distance, maxWarp, cheapEngine)
		reach := float64(w * w)
		travel := math.Min(distance, reach)
		distance = math.Max(0, distance-reach)
		if distance < 1 {
			travel += distance
			distance = 0
		}
		jumps = append(jumps, Jump{Warp: w, Distance: travel})
	}
	return jumps
}
