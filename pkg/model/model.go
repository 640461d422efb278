package model

import (
	"fmt"
	"math"
	"strings"
)

// NodeID identifies any sample point of the skeleton. Zero is never a valid
// node; it marks an absent or new endpoint.
type NodeID uint32

// EdgeID names one polyline between two vertices. Zero is never allocated.
type EdgeID uint32

// PositionScale is the multiplier applied to sample indices along an edge.
// An index that is not a multiple of PositionScale denotes a point between
// two stored samples.
const PositionScale = 128

// Reserved property keys.
const (
	KeyRoot   = "root"
	KeyError  = "error"
	KeyState  = "state"
	KeyRaise  = "raise"
	KeyTraced = ".traced"
)

// Link refers to an existing location: a node (l[1] == 0) or the
// segment between two adjacent nodes of one edge.
type Link [2]NodeID

// Canonical returns the normal form of l: the larger id first, and a
// repeated id collapsed to a node link.
func (l Link) Canonical() Link {
	switch {
	case l[0] < l[1]:
		return Link{l[1], l[0]}
	case l[0] == l[1]:
		return Link{l[0], 0}
	}
	return l
}

// IsCanonical reports whether l equals its canonical form.
func (l Link) IsCanonical() bool {
	return l == l.Canonical()
}

// IsZero reports whether l refers to nothing, meaning "create a new terminal".
func (l Link) IsZero() bool { return l[0] == 0 }

// OnNode reports whether l refers to a single node.
func (l Link) OnNode() bool { return l[1] == 0 }

func (l Link) String() string {
	if l.OnNode() {
		return fmt.Sprintf("%d", l[0])
	}
	return fmt.Sprintf("%d-%d", l[0], l[1])
}

// Misc packs per-sample attributes: type in bits [0,5), radius in bits
// [5,16) and the coverage flag in bit 16. Higher bits are extensions that
// are dropped by [Misc.Canonical].
type Misc uint32

const (
	typeBits     = 5
	radiusBits   = 11
	radiusFrac   = 6
	radiusBias   = 8
	typeMask     = Misc(1)<<typeBits - 1
	radiusShift  = typeBits
	radiusMask   = (Misc(1)<<radiusBits - 1) << radiusShift
	coverageBit  = Misc(1) << (typeBits + radiusBits)
	canonicalMsk = coverageBit<<1 - 1
	radiusExpMax = 1<<(radiusBits-radiusFrac) - 1
)

// NewMisc packs a radius and a type.
func NewMisc(radius float64, typ int) Misc {
	var m Misc
	m = m.WithType(typ)
	return m.WithRadius(radius)
}

// Type returns the sample type.
func (m Misc) Type() int { return int(m & typeMask) }

// WithType returns m with its type replaced. Out-of-range types saturate.
func (m Misc) WithType(t int) Misc {
	v := Misc(typeMask)
	if t >= 0 && t < int(typeMask) {
		v = Misc(t)
	}
	return m&^typeMask | v
}

// Radius decodes the radius minifloat.
func (m Misc) Radius() float64 {
	v := uint32(m&radiusMask) >> radiusShift
	e := int(v >> radiusFrac)
	f := float64(v & (1<<radiusFrac - 1))
	if e == 0 {
		return math.Ldexp(f, 1-radiusBias-radiusFrac)
	}
	return math.Ldexp(f+(1<<radiusFrac), e-radiusBias-radiusFrac)
}

// WithRadius returns m with its radius replaced. Negative and NaN radii
// encode as zero, values above the representable range saturate.
func (m Misc) WithRadius(r float64) Misc {
	return m&^radiusMask | Misc(encodeRadius(r))<<radiusShift
}

func encodeRadius(r float64) uint32 {
	if math.IsNaN(r) || r <= 0 {
		return 0
	}
	frac, exp := math.Frexp(r)
	// r = frac * 2^exp, frac in [0.5, 1); as 1.f * 2^(exp-1)
	e := exp - 1 + radiusBias
	if e <= 0 {
		f := uint32(math.Round(math.Ldexp(r, radiusBias-1+radiusFrac)))
		if f >= 1<<radiusFrac {
			return 1 << radiusFrac
		}
		return f
	}
	f := uint32(math.Round((frac*2 - 1) * (1 << radiusFrac)))
	if f == 1<<radiusFrac {
		f = 0
		e++
	}
	if e > radiusExpMax {
		return 1<<radiusBits - 1
	}
	return uint32(e)<<radiusFrac | f
}

// Coverage reports whether the sample was proofread.
func (m Misc) Coverage() bool { return m&coverageBit != 0 }

// WithCoverage returns m with the coverage flag set to v.
func (m Misc) WithCoverage(v bool) Misc {
	if v {
		return m | coverageBit
	}
	return m &^ coverageBit
}

// Canonical drops extension bits, keeping type, radius and coverage.
func (m Misc) Canonical() Misc { return m & canonicalMsk }

// Attr is the packed position and misc bits of one sample. Coordinates are
// fixed point with 10 fractional bits.
type Attr struct {
	Pos  [3]int32 `json:"pos"`
	Misc Misc     `json:"misc"`
}

// NewAttr builds an Attr from floating point coordinates.
func NewAttr(x, y, z, radius float64, typ int) Attr {
	return Attr{
		Pos:  [3]int32{EncodeCoord(x), EncodeCoord(y), EncodeCoord(z)},
		Misc: NewMisc(radius, typ),
	}
}

// Coord returns the i-th coordinate as a float.
func (a Attr) Coord(i int) float64 { return DecodeCoord(a.Pos[i]) }

// Canonical returns a with canonical misc bits.
func (a Attr) Canonical() Attr {
	a.Misc = a.Misc.Canonical()
	return a
}

// EncodeCoord converts a coordinate to fixed point, rounding to nearest.
func EncodeCoord(v float64) int32 {
	return int32(math.Round(v * 1024))
}

// DecodeCoord converts a fixed point coordinate back to a float.
func DecodeCoord(v int32) float64 {
	return float64(v) / 1024
}

// PropID addresses one property of a node.
type PropID struct {
	Node NodeID
	Key  string
}

// Hidden reports whether the key is an internal annotation.
func (p PropID) Hidden() bool { return strings.HasPrefix(p.Key, ".") }

// SplitProp splits "key[=value]" at the first '='.
func SplitProp(s string) (key, val string) {
	key, val, _ = strings.Cut(s, "=")
	return key, val
}

// JoinProp is the inverse of [SplitProp]. An empty value is omitted.
func JoinProp(key, val string) string {
	if val == "" {
		return key
	}
	return key + "=" + val
}

// ValidKeyVal reports whether s is a usable "key[=value]" string: non-empty
// with a non-empty key.
func ValidKeyVal(s string) bool {
	return s != "" && s[0] != '='
}

// CompareTag orders "key[=value]" strings by key. Bytes are compared in
// turn with the end of the string reading as '=', and the comparison stops
// at the first '=' common to both. The sign of the result is what matters.
func CompareTag(a, b string) int {
	for i := 0; ; i++ {
		ca, cb := byte('='), byte('=')
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if ca != cb {
			return int(ca) - int(cb)
		}
		if ca == '=' {
			return 0
		}
	}
}
