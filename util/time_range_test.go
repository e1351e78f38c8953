package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeRange(t *testing.T) {
	jan1 := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2019, time.January, 31, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC)

	t.Run("NewTimeRange", func(t *testing.T) {
		assert.True(t, NewTimeRange(nil, nil).IsZero())
		tr := NewTimeRange(&jan1, nil)
		assert.True(t, tr.HasStart())
		assert.False(t, tr.HasEnd())
		assert.Zero(t, tr.Duration())
	})
	t.Run("CheckIsInclusive", func(t *testing.T) {
		tr := TimeRange{StartAt: jan1, EndAt: jan31}
		assert.True(t, tr.Check(jan1))
		assert.True(t, tr.Check(jan31))
		assert.False(t, tr.Check(feb1))
		assert.False(t, tr.Check(jan1.Add(-time.Second)))
		assert.Equal(t, 30*24*time.Hour, tr.Duration())
	})
	t.Run("OpenBounds", func(t *testing.T) {
		assert.True(t, TimeRange{StartAt: jan31}.Check(feb1))
		assert.False(t, TimeRange{StartAt: feb1}.Check(jan31))
		assert.True(t, TimeRange{EndAt: jan31}.Check(jan1))
		assert.True(t, TimeRange{}.Check(feb1))
	})
	t.Run("ZeroTimestamp", func(t *testing.T) {
		assert.True(t, TimeRange{}.Check(time.Time{}))
		assert.False(t, TimeRange{StartAt: jan1}.Check(time.Time{}))
	})
	t.Run("Inverted", func(t *testing.T) {
		tr := TimeRange{StartAt: feb1, EndAt: jan1}
		assert.False(t, tr.IsValid())
		assert.False(t, tr.Check(jan31))
		assert.True(t, TimeRange{StartAt: jan1, EndAt: jan1}.IsValid())
	})
}
