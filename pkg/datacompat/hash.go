package datacompat

import (
	"fmt"
	"hash/fnv"
	"math"
)

// FNV-1a parameters, 64-bit variant.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// HashSeed returns the initial accumulator value for a hash chain.
func HashSeed() uint64 {
	return fnvOffset64
}

// CombineHash folds the next property hash into the running accumulator.
// The combinator is order-sensitive: CombineHash(CombineHash(s, a), b) and
// CombineHash(CombineHash(s, b), a) differ for a != b, so a generated Hash
// method depends on property declaration order.
func CombineHash(acc, h uint64) uint64 {
	acc ^= h
	acc *= fnvPrime64
	acc ^= acc >> 29
	return acc
}

// HashValue hashes an arbitrary property value through its canonical
// fmt representation. Values that compare equal with == share a
// representation and therefore share a hash.
func HashValue(v any) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v", v)
	return h.Sum64()
}

// HashFloat hashes a floating-point property under the same canonicalization
// that CompareFloat uses for equality: both zeros collapse to +0 and every
// NaN collapses to a single bit pattern, so values with CompareFloat == 0
// hash identically.
func HashFloat[F ~float32 | ~float64](f F) uint64 {
	v := float64(f)
	if v == 0 {
		v = 0 // normalize -0
	}
	bits := math.Float64bits(v)
	if v != v {
		bits = math.Float64bits(math.NaN())
	}
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum64()
}

// HashFloatPtr hashes a nullable floating-point property, substituting a
// canonical zero for absence. This mirrors the nullable-float equality rule.
func HashFloatPtr[F ~float32 | ~float64](p *F) uint64 {
	return HashFloat(ZeroIfNil(p))
}

// HashPtr hashes a nullable property. Absent values hash to a fixed marker
// distinct from any present value's hash input.
func HashPtr[T any](p *T) uint64 {
	if p == nil {
		h := fnv.New64a()
		h.Write([]byte("<nil>"))
		return h.Sum64()
	}
	return HashValue(*p)
}
