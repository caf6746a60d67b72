package game

import (
	"strings"
	"testing"

	"fuelplan/pkg/types"
)

func TestNewFleet(t *testing.T) {
	f := NewFleet(
		types.Member{Ship: types.Ship{Fuel: 100, Weight: 10, Cargo: 50, FuelProduction: 5, Engines: 1}, Count: 2},
		types.Member{Ship: types.Ship{Fuel: 30, Weight: 5, Colonizer: true, Engines: 1}, Count: 1},
	)
	want := Fleet{Name: "Fleet", Fuel: 230, Tank: 230, Weight: 25, Capacity: 100, FuelProduction: 10, Colonizer: true, Engines: 3}
	if f != want {
		t.Fatalf("NewFleet = %+v, want %+v", f, want)
	}
	if f.Cargo != 0 || f.Population != 0 {
		t.Errorf("new fleet should be empty, got cargo %d pop %d", f.Cargo, f.Population)
	}
}

func TestMergeKeepsColonizer(t *testing.T) {
	a := Fleet{Fuel: 10, Tank: 10, Weight: 5, Colonizer: true, Engines: 1}
	b := Fleet{Fuel: 20, Tank: 30, Weight: 7, Capacity: 40, Engines: 2}
	m := a.Merge(b, b)
	if m.Fuel != 50 || m.Tank != 70 || m.Weight != 19 || m.Capacity != 80 || m.Engines != 5 || !m.Colonizer {
		t.Errorf("Merge = %+v", m)
	}
	if a.Fuel != 10 {
		t.Errorf("Merge modified its receiver")
	}
}

func TestMove(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		f := Fleet{Fuel: 100, Weight: 100}
		burn := f.Move(9, 81, Config{Engine: flat})
		if burn != 81 || f.Fuel != 19 {
			t.Errorf("burn %d fuel %d, want 81 and 19", burn, f.Fuel)
		}
	})
	t.Run("AR decay before burn", func(t *testing.T) {
		f := Fleet{Fuel: 100, Weight: 100, Population: 100, Capacity: 200}
		burn := f.Move(9, 10, Config{Engine: flat, CarryAR: true})
		if f.Population != 97 {
			t.Errorf("population %d, want 97", f.Population)
		}
		if burn != 20 || f.Fuel != 80 {
			t.Errorf("burn %d fuel %d, want 20 and 80", burn, f.Fuel)
		}
	})
	t.Run("growth after burn", func(t *testing.T) {
		f := Fleet{Fuel: 100, Weight: 100, Cargo: 40, Population: 50, Capacity: 100, FuelProduction: 30}
		burn := f.Move(9, 10, Config{Engine: flat, GrowthRate: 20})
		if burn != 19 {
			t.Errorf("burn %d, want 19", burn)
		}
		if f.Fuel != 111 {
			t.Errorf("fuel %d, want 111", f.Fuel)
		}
		if f.Population != 55 {
			t.Errorf("population %d, want 55", f.Population)
		}
	})
	t.Run("AR decay then burn then growth", func(t *testing.T) {
		f := Fleet{Fuel: 100, Weight: 100, Population: 100, Capacity: 200}
		burn := f.Move(9, 10, Config{Engine: flat, CarryAR: true, GrowthRate: 20})
		// 100 decays to 97, 197 mass burns 20, 97 grows by 9
		if burn != 20 || f.Fuel != 80 {
			t.Errorf("burn %d fuel %d, want 20 and 80", burn, f.Fuel)
		}
		if f.Population != 106 {
			t.Errorf("population %d, want 106", f.Population)
		}
	})
	t.Run("AR keeps small loads", func(t *testing.T) {
		f := Fleet{Fuel: 100, Weight: 100, Population: 25, Capacity: 100}
		for i := 0; i < 3; i++ {
			f.Move(9, 10, Config{Engine: flat, CarryAR: true})
		}
		if f.Population != 25 {
			t.Errorf("population %d, want 25", f.Population)
		}
	})
	t.Run("may go negative", func(t *testing.T) {
		f := Fleet{Fuel: 10, Weight: 100}
		f.Move(9, 81, Config{Engine: flat})
		if f.Fuel != -71 {
			t.Errorf("fuel %d, want -71", f.Fuel)
		}
	})
}

func TestRelease(t *testing.T) {
	booster := Fleet{Fuel: 60, Tank: 60, Weight: 10, Engines: 1}

	f := Fleet{Fuel: 122, Tank: 220, Weight: 120, Engines: 3}
	out, handed := f.release(booster, 1, 9)
	if out.Fuel != 113 || out.Tank != 160 || out.Weight != 110 || out.Engines != 2 || handed != 9 {
		t.Errorf("release = %+v handed %d", out, handed)
	}

	// surplus above the fleet's own tanks leaves with the boosters
	f = Fleet{Fuel: 330, Tank: 460, Weight: 160, Engines: 7}
	out, handed = f.release(booster, 5, 9)
	if out.Fuel != 160 || handed != 170 {
		t.Errorf("release = fuel %d handed %d, want 160 and 170", out.Fuel, handed)
	}
	if f.Fuel != 330 {
		t.Errorf("release modified its receiver")
	}
}

func TestFleetString(t *testing.T) {
	s := Fleet{Name: "Fleet", Fuel: 300, Weight: 17}.String()
	if !strings.HasPrefix(s, "[Fleet: fuel= 300, wt=17,") {
		t.Errorf("String() = %q", s)
	}
}
