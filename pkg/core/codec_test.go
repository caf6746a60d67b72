package core

import (
	"bytes"
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"fuelplan/pkg/types"
)

func sampleTrip() types.Trip {
	return types.Trip{
		MaxWarp:    9,
		Boosters:   2,
		Population: 76,
		StartFuel:  220,
		EndFuel:    23,
		Legs: []types.Leg{
			{Warp: 9, Distance: 81, Boosters: 2, Burn: 98, Fuel: 122, Released: 1, ReleasedFuel: 9},
			{Warp: 9, Distance: 81.5, Boosters: 1, Burn: 90, Fuel: 23},
		},
	}
}

func TestCompressRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("warp 9 "), 200)
	packed, err := Compress(src)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(packed) >= len(src) {
		t.Errorf("repetitive input did not shrink: %d -> %d", len(src), len(packed))
	}
	out, err := Decompress(packed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Error("round trip changed the data")
	}
}

func TestPlanRoundTrip(t *testing.T) {
	trip := sampleTrip()
	distance, got, err := DecodePlan(EncodePlan(162.5, trip))
	if err != nil {
		t.Fatalf("DecodePlan: %v", err)
	}
	if distance != 162.5 {
		t.Errorf("distance %v, want 162.5", distance)
	}
	if !reflect.DeepEqual(got, trip) {
		t.Errorf("decoded %+v, want %+v", got, trip)
	}
}

func TestPlanNegativeFuel(t *testing.T) {
	trip := types.Trip{MaxWarp: 7, StartFuel: 10, EndFuel: -5, Legs: []types.Leg{{Warp: 7, Distance: 49, Burn: 15, Fuel: -5}}}
	_, got, err := DecodePlan(EncodePlan(49, trip))
	if err != nil {
		t.Fatalf("DecodePlan: %v", err)
	}
	if got.EndFuel != -5 || got.Legs[0].Fuel != -5 {
		t.Errorf("negative fuel lost: %+v", got)
	}
}

func TestToken(t *testing.T) {
	trip := sampleTrip()
	tok, err := Token(162, trip)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if !strings.HasPrefix(tok, tokenPrefix) {
		t.Errorf("token %q lacks prefix", tok)
	}
	distance, got, err := ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if distance != 162 || !reflect.DeepEqual(got, trip) {
		t.Errorf("ParseToken = %v %+v", distance, got)
	}
	if Fingerprint(distance, got) != Fingerprint(162, trip) {
		t.Error("fingerprint changed across a token round trip")
	}
}

func TestFingerprint(t *testing.T) {
	trip := sampleTrip()
	fp := Fingerprint(162, trip)
	if len(fp) != 16 {
		t.Fatalf("fingerprint %q, want 16 hex characters", fp)
	}
	trip.EndFuel++
	if Fingerprint(162, trip) == fp {
		t.Error("different plans share a fingerprint")
	}
	if len(Hash([]byte("x"))) != 64 {
		t.Error("Hash should be 32 bytes hex encoded")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "nope", "fp1.!!!", "fp1.AAAAAAAA"} {
		if _, _, err := ParseToken(tok); !errors.Is(err, ErrBadToken) {
			t.Errorf("ParseToken(%q) = %v, want ErrBadToken", tok, err)
		}
	}
}

func TestDecompressLimit(t *testing.T) {
	packed, err := Compress(make([]byte, MaxPlanSize+10))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if _, err := Decompress(packed); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Decompress = %v, want ErrTooLarge", err)
	}
	tok := tokenPrefix + base64.RawURLEncoding.EncodeToString(packed)
	if _, _, err := ParseToken(tok); !errors.Is(err, ErrBadToken) {
		t.Errorf("ParseToken = %v, want ErrBadToken", err)
	}

	packed, err = Compress(make([]byte, MaxPlanSize))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if out, err := Decompress(packed); err != nil || len(out) != MaxPlanSize {
		t.Errorf("Decompress at the limit = %d bytes, %v", len(out), err)
	}
}

func TestDecodePlanWrongWireType(t *testing.T) {
	// a leg sent as a varint instead of an embedded message
	b := protowire.AppendTag(nil, planLeg, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	if _, _, err := DecodePlan(b); err == nil {
		t.Error("varint leg should be rejected")
	}

	b = protowire.AppendTag(nil, planDistance, protowire.VarintType)
	b = protowire.AppendVarint(b, 162)
	if _, _, err := DecodePlan(b); err == nil {
		t.Error("varint distance should be rejected")
	}

	// unknown fields are still skipped
	b = EncodePlan(81, sampleTrip())
	b = protowire.AppendTag(b, 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	if _, trip, err := DecodePlan(b); err != nil || trip.EndFuel != 23 {
		t.Errorf("unknown field: %+v %v", trip, err)
	}
}
