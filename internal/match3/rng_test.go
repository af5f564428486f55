package match3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestXorShiftSequence(t *testing.T) {
	r := match3.NewXorShift(1)
	want := []uint64{1082269761, 1152992998833853505, 11177516664432764457}
	for i, w := range want {
		assert.Equal(t, w, r.Next(), "value %d", i)
	}
}

func TestXorShiftZeroSeed(t *testing.T) {
	a := match3.NewXorShift(0)
	b := match3.NewXorShift(88172645463325252)
	assert.Equal(t, b.Next(), a.Next())
}

func TestXorShiftIntn(t *testing.T) {
	r := match3.NewXorShift(7)
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
	for i := 0; i < 1000; i++ {
		n := r.Intn(6)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 6)
	}
}
