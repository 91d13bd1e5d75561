package cave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleBitset2FromBitsPanicsOnInvalidPattern(t *testing.T) {
	assert.Panics(t, func() { NewRuleBitset2FromBits(0xFFFF) })
	assert.NotPanics(t, func() { NewRuleBitset2FromBits(0x01FF) })
}

func TestRuleBitset2Constructors(t *testing.T) {
	fromRange := NewRuleBitset2FromRange(2, 5)
	fromInclusive := NewRuleBitset2FromInclusiveRange(2, 4)
	assert.Equal(t, fromRange, fromInclusive)
	assert.Equal(t, uint16(0b0001_1100), fromRange.ToBits())

	arr := [9]bool{false, false, true, true, true, false, false, false, false}
	fromArray := NewRuleBitset2FromArray(arr)
	assert.Equal(t, fromRange, fromArray)

	fromSlice := NewRuleBitset2FromSlice([]bool{false, false, true, true, true})
	assert.Equal(t, fromRange, fromSlice)

	assert.Panics(t, func() { NewRuleBitset2FromRange(0, 10) })
	assert.Panics(t, func() { NewRuleBitset2FromInclusiveRange(0, 9) })
	assert.Panics(t, func() {
		values := make([]bool, 10)
		NewRuleBitset2FromSlice(values)
	})
}

func TestRuleBitset2Or(t *testing.T) {
	a := NewRuleBitset2FromInclusiveRange(0, 2)
	b := NewRuleBitset2FromInclusiveRange(5, 8)
	union := a.Or(b)
	assert.Equal(t, uint16(0b1_1110_0111), union.ToBits())
}

func TestRuleBitset2ToArrayRoundTrip(t *testing.T) {
	r := NewRuleBitset2FromInclusiveRange(4, 8)
	arr := r.ToArray()
	assert.Equal(t, NewRuleBitset2FromArray(arr), r)
	for i, v := range arr {
		assert.Equal(t, i >= 4 && i <= 8, v)
	}
}

func TestRule2Smooth(t *testing.T) {
	assert.Equal(t, uint16(0x1E0), Rule2Smooth.Birth.ToBits())
	assert.Equal(t, uint16(0x1F0), Rule2Smooth.Survive.ToBits())
}

func TestRuleBitset3FromBitsPanicsOnInvalidPattern(t *testing.T) {
	assert.Panics(t, func() { NewRuleBitset3FromBits(0xFFFFFFFF) })
	assert.NotPanics(t, func() { NewRuleBitset3FromBits(0x07FF_FFFF) })
}

func TestRuleBitset3Constructors(t *testing.T) {
	fromRange := NewRuleBitset3FromRange(13, 15)
	fromInclusive := NewRuleBitset3FromInclusiveRange(13, 14)
	assert.Equal(t, fromRange, fromInclusive)

	arr := [27]bool{}
	arr[13], arr[14] = true, true
	fromArray := NewRuleBitset3FromArray(arr)
	assert.Equal(t, fromRange, fromArray)

	assert.Panics(t, func() { NewRuleBitset3FromRange(0, 28) })
	assert.Panics(t, func() { NewRuleBitset3FromInclusiveRange(0, 27) })
}

func TestRule3Smooth(t *testing.T) {
	arr := Rule3Smooth.Birth.ToArray()
	for i := 0; i < 27; i++ {
		want := (i >= 13 && i <= 14) || (i >= 17 && i <= 19)
		assert.Equal(t, want, arr[i], "bit %d", i)
	}
	survive := Rule3Smooth.Survive.ToArray()
	for i := 0; i < 27; i++ {
		assert.Equal(t, i >= 13, survive[i], "bit %d", i)
	}
}
