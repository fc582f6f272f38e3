package int128_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/typelayout/int128"
)

func TestU128AddSubWrap(t *testing.T) {
	max := int128.MaxU128()
	got := max.Add(int128.FromUint64(1))
	assert.Equal(t, int128.U128{}, got, "adding 1 to max wraps to zero")

	got = int128.U128{}.Sub(int128.FromUint64(1))
	assert.Equal(t, max, got, "subtracting 1 from zero wraps to max")
}

func TestU128Mul(t *testing.T) {
	a := int128.FromUint64(1).Shl(100)
	b := int128.FromUint64(1).Shl(40)
	got := a.Mul(b)
	assert.True(t, got.Equal(int128.U128{}), "1<<100 * 1<<40 truncates to zero at 128 bits")

	small := int128.FromUint64(123456789).Mul(int128.FromUint64(987654321))
	assert.True(t, small.IsUint64())
	assert.Equal(t, uint64(123456789)*uint64(987654321), small.Uint64())
}

func TestU128QuoRem(t *testing.T) {
	a := int128.New(0, 1) // 2^64
	b := int128.FromUint64(3)
	q, r := a.QuoRem(b)
	// 2^64 == 3*q + r
	recombined := q.Mul(b).Add(r)
	require.True(t, recombined.Equal(a))
	assert.True(t, r.Less(b))
}

func TestU128ShiftEdgeCases(t *testing.T) {
	v := int128.FromUint64(1)
	assert.True(t, v.Shl(128).Equal(int128.U128{}))
	assert.True(t, v.Shl(0).Equal(v))
	assert.True(t, int128.MaxU128().Shr(128).Equal(int128.U128{}))
}

func TestU128Format(t *testing.T) {
	v := int128.New(0, 1) // 2^64
	assert.Equal(t, "18446744073709551616", v.Format(10, 0, false))
	assert.Equal(t, "ff", int128.FromUint64(255).Format(16, 0, false))
	assert.Equal(t, "FF", int128.FromUint64(255).Format(16, 0, true))
	assert.Equal(t, "  255", int128.FromUint64(255).Format(10, 5, false))
}

func TestS128AbsMinOverflow(t *testing.T) {
	min := int128.MinS128()
	got := min.Abs()
	want := int128.FromUint64(1).Shl(127)
	assert.True(t, got.Equal(want), "abs(MinS128) must be 2**127, not an overflowed wraparound")
}

func TestS128MulDivSign(t *testing.T) {
	a := int128.FromInt64(-6)
	b := int128.FromInt64(4)
	assert.Equal(t, int64(-24), a.Mul(b).Int64())
	assert.Equal(t, int64(-1), a.Quo(b).Int64())
	assert.Equal(t, int64(-2), a.Rem(b).Int64())
}

func TestS128ShrArithmeticFill(t *testing.T) {
	neg := int128.FromInt64(-8)
	got := neg.Shr(1)
	assert.Equal(t, int64(-4), got.Int64())

	got = neg.Shr(200)
	assert.Equal(t, int64(-1), got.Int64(), "shift beyond width sign-fills to -1")
}

func TestS128Format(t *testing.T) {
	assert.Equal(t, "-42", int128.FromInt64(-42).Format(10, 0, false))
	assert.Equal(t, "42", int128.FromInt64(42).Format(10, 0, false))
}
