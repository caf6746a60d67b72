package game

import "math"

// Grow advances carried population by one turn of in-transit growth.
// Half of the race's growth rate applies in space.
func Grow(population, capacity, rate int) int {
	population += population * (rate / 2) / 100
	return min(population, capacity)
}

func GrowAfter(population, capacity, rate, turns int) int {
	for i := 0; i < turns; i++ {
		population = Grow(population, capacity, rate)
	}
	return population
}

// EmbarkationTarget returns the smallest population that grows to capacity in
// exactly turns turns.
func EmbarkationTarget(capacity, turns, rate int) int {
	growth := 1 + float64(rate/2)/100
	target := int(float64(capacity) / math.Pow(growth, float64(turns)))
	for GrowAfter(target, capacity, rate, turns) < capacity {
		target++
	}
	return target
}
