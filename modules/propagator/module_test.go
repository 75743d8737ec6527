package propagator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mcgridgo/internal/param"
	"github.com/vk/mcgridgo/internal/pool"
	"github.com/vk/mcgridgo/modules/propagator"
)

func TestWeight(t *testing.T) {
	p := pool.New()
	s, err := pool.Produce[float64](p, "bw", "s")
	require.NoError(t, err)

	w, err := propagator.New(p, "prop", param.FromMap(map[string]any{
		"mass":  10.0,
		"width": 1.0,
		"s":     "bw::s",
	}))
	require.NoError(t, err)
	assert.Zero(t, w.Dimensions())

	weight, err := pool.Bind[float64](p, pool.Tag{Owner: "prop", Name: "weight", Index: -1})
	require.NoError(t, err)

	t.Run("on the pole", func(t *testing.T) {
		s.Set(100.0) // s = m²
		w.Work()
		// 1/(0 + m²Γ²) = 1/100
		assert.InEpsilon(t, 0.01, weight.Get(), 1e-12)
	})

	t.Run("off the pole", func(t *testing.T) {
		s.Set(150.0)
		w.Work()
		want := 1 / (50.0*50.0 + 100.0)
		assert.InEpsilon(t, want, weight.Get(), 1e-12)
	})

	t.Run("far tail is tiny but positive", func(t *testing.T) {
		s.Set(1e8)
		w.Work()
		assert.Greater(t, weight.Get(), 0.0)
		assert.Less(t, weight.Get(), 1e-12)
	})
}

func TestConstructionErrors(t *testing.T) {
	p := pool.New()
	_, err := pool.Produce[float64](p, "bw", "s")
	require.NoError(t, err)

	_, err = propagator.New(p, "prop", param.FromMap(map[string]any{
		"width": 1.0,
		"s":     "bw::s",
	}))
	require.ErrorIs(t, err, param.ErrMissing)

	_, err = propagator.New(p, "prop", param.FromMap(map[string]any{
		"mass":  10.0,
		"width": 1.0,
		"s":     "ghost::s",
	}))
	require.ErrorIs(t, err, pool.ErrUnresolved)
}

func TestFlattensGeneratorPeak(t *testing.T) {
	// jacobian(u) * weight(s(u)) collapses to the constant
	// (π/2 + atan(m/Γ)) / (mΓ) for every u: the whole point of the
	// change of variables.
	const mass, width = 91.1876, 2.4952

	p := pool.New()
	s, err := pool.Produce[float64](p, "bw", "s")
	require.NoError(t, err)
	jacobian, err := pool.Produce[float64](p, "bw", "jacobian")
	require.NoError(t, err)

	w, err := propagator.New(p, "prop", param.FromMap(map[string]any{
		"mass":  mass,
		"width": width,
		"s":     "bw::s",
	}))
	require.NoError(t, err)

	weight, err := pool.Bind[float64](p, pool.Tag{Owner: "prop", Name: "weight", Index: -1})
	require.NoError(t, err)

	want := (math.Pi/2 + math.Atan(mass/width)) / (mass * width)

	a := math.Atan(mass / width)
	r := math.Pi/2 + a
	for i := 1; i < 100; i++ {
		u := float64(i) / 100
		y := -a + r*u
		sVal := mass*width*math.Tan(y) + mass*mass
		jVal := r * mass * width / (math.Cos(y) * math.Cos(y))
		s.Set(sVal)
		jacobian.Set(jVal)
		w.Work()

		assert.InEpsilon(t, want, jVal*weight.Get(), 1e-9, "u=%v", u)
	}
}
