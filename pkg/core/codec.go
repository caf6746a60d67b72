package core

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/pierrec/lz4/v4"
	"google.golang.org/protobuf/encoding/protowire"
	"lukechampine.com/blake3"

	"fuelplan/pkg/types"
)

const (
	// tokenPrefix versions the plan token format.
	tokenPrefix = "fp1."
	// MaxPlanSize caps decompressed payloads. Real plans are a few hundred bytes.
	MaxPlanSize = 1 << 20
)

var (
	ErrBadToken = errors.New("bad plan token")
	ErrTooLarge = errors.New("payload too large")
)

var bufferPool = sync.Pool{New: func() interface{} { return new(bytes.Buffer) }}

// --- Compression ---

func Compress(src []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer bufferPool.Put(buf)
	buf.Reset()

	w := lz4.NewWriter(buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	// Return strictly sized slice
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func Decompress(src []byte) ([]byte, error) {
	r := io.LimitReader(lz4.NewReader(bytes.NewReader(src)), MaxPlanSize+1)
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(out) > MaxPlanSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, MaxPlanSize)
	}
	return out, nil
}

// --- Hashing ---

func Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// --- Plan encoding ---

// Field numbers of the plan message.
const (
	planDistance protowire.Number = iota + 1
	planMaxWarp
	planBoosters
	planPopulation
	planStartFuel
	planEndFuel
	planLeg
)

// Field numbers of the embedded leg message.
const (
	legWarp protowire.Number = iota + 1
	legDistance
	legBoosters
	legBurn
	legFuel
	legReleased
	legReleasedFuel
)

// Wire types of the known fields. Anything else is skipped.
var (
	planWire = map[protowire.Number]protowire.Type{
		planDistance:   protowire.Fixed64Type,
		planMaxWarp:    protowire.VarintType,
		planBoosters:   protowire.VarintType,
		planPopulation: protowire.VarintType,
		planStartFuel:  protowire.VarintType,
		planEndFuel:    protowire.VarintType,
		planLeg:        protowire.BytesType,
	}
	legWire = map[protowire.Number]protowire.Type{
		legWarp:         protowire.VarintType,
		legDistance:     protowire.Fixed64Type,
		legBoosters:     protowire.VarintType,
		legBurn:         protowire.VarintType,
		legFuel:         protowire.VarintType,
		legReleased:     protowire.VarintType,
		legReleasedFuel: protowire.VarintType,
	}
)

// EncodePlan writes a trip in protobuf wire format.
func EncodePlan(distance float64, t types.Trip) []byte {
	var b []byte
	b = appendFloat(b, planDistance, distance)
	b = appendInt(b, planMaxWarp, t.MaxWarp)
	b = appendInt(b, planBoosters, t.Boosters)
	b = appendInt(b, planPopulation, t.Population)
	b = appendInt(b, planStartFuel, t.StartFuel)
	b = appendInt(b, planEndFuel, t.EndFuel)
	for _, l := range t.Legs {
		var lb []byte
		lb = appendInt(lb, legWarp, l.Warp)
		lb = appendFloat(lb, legDistance, l.Distance)
		lb = appendInt(lb, legBoosters, l.Boosters)
		lb = appendInt(lb, legBurn, l.Burn)
		lb = appendInt(lb, legFuel, l.Fuel)
		lb = appendInt(lb, legReleased, l.Released)
		lb = appendInt(lb, legReleasedFuel, l.ReleasedFuel)
		b = protowire.AppendTag(b, planLeg, protowire.BytesType)
		b = protowire.AppendBytes(b, lb)
	}
	return b
}

func DecodePlan(b []byte) (float64, types.Trip, error) {
	var (
		distance float64
		t        types.Trip
	)
	err := walk(b, planWire, func(num protowire.Number, v uint64, raw []byte) error {
		switch num {
		case planDistance:
			distance = math.Float64frombits(v)
		case planMaxWarp:
			t.MaxWarp = zigzag(v)
		case planBoosters:
			t.Boosters = zigzag(v)
		case planPopulation:
			t.Population = zigzag(v)
		case planStartFuel:
			t.StartFuel = zigzag(v)
		case planEndFuel:
			t.EndFuel = zigzag(v)
		case planLeg:
			l, err := decodeLeg(raw)
			if err != nil {
				return err
			}
			t.Legs = append(t.Legs, l)
		}
		return nil
	})
	return distance, t, err
}

func decodeLeg(b []byte) (types.Leg, error) {
	var l types.Leg
	err := walk(b, legWire, func(num protowire.Number, v uint64, _ []byte) error {
		switch num {
		case legWarp:
			l.Warp = zigzag(v)
		case legDistance:
			l.Distance = math.Float64frombits(v)
		case legBoosters:
			l.Boosters = zigzag(v)
		case legBurn:
			l.Burn = zigzag(v)
		case legFuel:
			l.Fuel = zigzag(v)
		case legReleased:
			l.Released = zigzag(v)
		case legReleasedFuel:
			l.ReleasedFuel = zigzag(v)
		}
		return nil
	})
	return l, err
}

// walk visits every field of a message. Unknown fields are skipped; known fields
// must carry the wire type listed in wire.
func walk(b []byte, wire map[protowire.Number]protowire.Type, visit func(num protowire.Number, v uint64, raw []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if want, known := wire[num]; known && typ != want {
			return fmt.Errorf("field %d: wire type %d, want %d", num, typ, want)
		}
		var (
			v   uint64
			raw []byte
		)
		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			v, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			raw, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if err := visit(num, v, raw); err != nil {
			return err
		}
	}
	return nil
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func appendFloat(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func zigzag(v uint64) int {
	return int(protowire.DecodeZigZag(v))
}

// --- Tokens ---

// Token packs a plan into a short string players can paste to each other.
func Token(distance float64, t types.Trip) (string, error) {
	packed, err := Compress(EncodePlan(distance, t))
	if err != nil {
		return "", err
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(packed), nil
}

func ParseToken(token string) (float64, types.Trip, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(token), tokenPrefix)
	if !ok {
		return 0, types.Trip{}, fmt.Errorf("%w: missing %q prefix", ErrBadToken, tokenPrefix)
	}
	packed, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return 0, types.Trip{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	raw, err := Decompress(packed)
	if err != nil {
		return 0, types.Trip{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	distance, trip, err := DecodePlan(raw)
	if err != nil {
		return 0, types.Trip{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return distance, trip, nil
}

// Fingerprint identifies a plan by the hash of its encoding.
func Fingerprint(distance float64, t types.Trip) string {
	return Hash(EncodePlan(distance, t))[:16]
}
