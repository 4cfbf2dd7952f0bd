package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized(t *testing.T) {
	t.Run("scales to sum one", func(t *testing.T) {
		v := Vector{Urgency: 2, Importance: 1, Effort: 1}.Normalized()
		assert.InDelta(t, 1.0, v.Sum(), 1e-9)
		assert.InDelta(t, 0.5, v.Get(Urgency), 1e-9)
	})

	t.Run("empty vector becomes the default", func(t *testing.T) {
		v := Vector{}.Normalized()
		assert.InDelta(t, 0.4, v.Get(Urgency), 1e-9)
		assert.InDelta(t, 0.1, v.Get(Dependency), 1e-9)
	})

	t.Run("non-positive sum becomes the default", func(t *testing.T) {
		v := Vector{Urgency: 0, Importance: 0}.Normalized()
		assert.InDelta(t, 0.3, v.Get(Importance), 1e-9)
	})

	t.Run("unknown components keep their share", func(t *testing.T) {
		v := Vector{Urgency: 1, "velocity": 1}.Normalized()
		assert.InDelta(t, 0.5, v.Get(Urgency), 1e-9)
		assert.InDelta(t, 0.5, v.Get("velocity"), 1e-9)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		v := Vector{Urgency: 2}
		_ = v.Normalized()
		assert.Equal(t, 2.0, v.Get(Urgency))
	})
}

func TestPreset(t *testing.T) {
	t.Run("known presets resolve", func(t *testing.T) {
		for _, name := range PresetNames() {
			v, ok := Preset(name)
			require.True(t, ok, name)
			assert.NotEmpty(t, v)
		}
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		v, ok := Preset("  Deadline ")
		require.True(t, ok)
		assert.Equal(t, 0.7, v.Get(Urgency))
	})

	t.Run("unknown name reports false", func(t *testing.T) {
		_, ok := Preset("yolo")
		assert.False(t, ok)
	})

	t.Run("smart matches the default vector", func(t *testing.T) {
		v, ok := Preset("smart")
		require.True(t, ok)
		assert.Equal(t, Default(), v)
	})

	t.Run("returned vector is a copy", func(t *testing.T) {
		v, _ := Preset("impact")
		v[Urgency] = 99
		again, _ := Preset("impact")
		assert.Equal(t, 0.2, again.Get(Urgency))
	})
}
