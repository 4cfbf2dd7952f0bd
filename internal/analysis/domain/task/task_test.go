package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestNormalize(t *testing.T) {
	t.Run("applies defaults when fields are absent", func(t *testing.T) {
		n := Normalize(Task{ID: 1, Title: "write report"})

		assert.Equal(t, DefaultEstimatedHours, n.Hours)
		assert.Equal(t, DefaultImportance, n.Importance)
		assert.Nil(t, n.Due)
	})

	t.Run("keeps explicit zero hours", func(t *testing.T) {
		n := Normalize(Task{ID: 1, EstimatedHours: ptrF(0)})

		assert.Equal(t, 0.0, n.Hours)
	})

	t.Run("clamps importance into range", func(t *testing.T) {
		assert.Equal(t, MaxImportance, Normalize(Task{Importance: ptrI(42)}).Importance)
		assert.Equal(t, MinImportance, Normalize(Task{Importance: ptrI(0)}).Importance)
		assert.Equal(t, MinImportance, Normalize(Task{Importance: ptrI(-3)}).Importance)
		assert.Equal(t, 7, Normalize(Task{Importance: ptrI(7)}).Importance)
	})

	t.Run("parses iso due dates", func(t *testing.T) {
		n := Normalize(Task{DueDate: "2025-03-14"})

		require.NotNil(t, n.Due)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *n.Due)
		assert.Equal(t, "2025-03-14", n.DueDate)
	})

	t.Run("parses day-first due dates", func(t *testing.T) {
		n := Normalize(Task{DueDate: "14-03-2025"})

		require.NotNil(t, n.Due)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *n.Due)
	})

	t.Run("treats malformed due dates as absent but echoes the raw string", func(t *testing.T) {
		n := Normalize(Task{DueDate: "next tuesday"})

		assert.Nil(t, n.Due)
		assert.Equal(t, "next tuesday", n.DueDate)
	})
}
