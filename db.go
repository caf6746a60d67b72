package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"fuelplan/pkg/types"
)

// catalogSchema documents the layout of a roster catalog. Efficiency is a JSON array
// indexed by warp - 1.
const catalogSchema = `
CREATE TABLE IF NOT EXISTS engines (
	id TEXT PRIMARY KEY,
	weight INTEGER DEFAULT 0,
	efficiency TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ships (
	id TEXT PRIMARY KEY,
	name TEXT,
	fuel INTEGER DEFAULT 0,
	weight INTEGER DEFAULT 0,
	cargo INTEGER DEFAULT 0,
	fuel_prod INTEGER DEFAULT 0,
	colonizer BOOLEAN DEFAULT 0,
	engines INTEGER DEFAULT 1
);
`

// openCatalog opens an existing roster catalog read-only.
func openCatalog(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return db, nil
}

// loadCatalog merges catalog rows into reg. Rows replace built-in entries with the same id.
func loadCatalog(db *sql.DB, reg types.Registry) (ships, engines int, err error) {
	rows, err := db.Query("SELECT id, weight, efficiency FROM engines")
	if err != nil {
		return 0, 0, fmt.Errorf("catalog engines: %w", err)
	}
	for rows.Next() {
		var (
			e   types.Engine
			raw string
		)
		if err := rows.Scan(&e.ID, &e.Weight, &raw); err != nil {
			rows.Close()
			return ships, engines, err
		}
		if err := json.Unmarshal([]byte(raw), &e.Efficiency); err != nil {
			rows.Close()
			return ships, engines, fmt.Errorf("engine %q efficiency: %w", e.ID, err)
		}
		if err := e.Validate(); err != nil {
			rows.Close()
			return ships, engines, err
		}
		reg.Engines[e.ID] = e
		engines++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return ships, engines, err
	}

	rows, err = db.Query("SELECT id, name, fuel, weight, cargo, fuel_prod, colonizer, engines FROM ships")
	if err != nil {
		return ships, engines, fmt.Errorf("catalog ships: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s types.Ship
		var name sql.NullString
		if err := rows.Scan(&s.ID, &name, &s.Fuel, &s.Weight, &s.Cargo, &s.FuelProduction, &s.Colonizer, &s.Engines); err != nil {
			return ships, engines, err
		}
		s.Name = s.ID
		if name.Valid && name.String != "" {
			s.Name = name.String
		}
		if s.Fuel < 0 || s.Weight < 0 || s.Cargo < 0 || s.Engines < 0 {
			return ships, engines, fmt.Errorf("ship %q: negative attribute", s.ID)
		}
		reg.Ships[s.ID] = s
		ships++
	}
	return ships, engines, rows.Err()
}
