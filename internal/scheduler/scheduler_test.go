package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	assert.Equal(t, time.Second/60, Period(60))
	assert.Equal(t, time.Second, Period(0))
}

func TestScheduler_Advance(t *testing.T) {
	s := NewScheduler()
	var steps, ticks int
	s.RegisterEvent(CPUStep, Period(600), func() error { steps++; return nil })
	s.RegisterEvent(TimerTick, Period(60), func() error { ticks++; return nil })

	require.NoError(t, s.Advance(time.Second/2))
	assert.Equal(t, 300, steps)
	assert.Equal(t, 30, ticks)
	assert.Equal(t, time.Second/2, s.Now())
}

func TestScheduler_Accumulates(t *testing.T) {
	s := NewScheduler()
	var ticks int
	s.RegisterEvent(TimerTick, Period(60), func() error { ticks++; return nil })

	// many samples shorter than a period still add up
	for i := 0; i < 100; i++ {
		require.NoError(t, s.Advance(time.Millisecond))
	}
	assert.Equal(t, 6, ticks)

	// exactly one period fires exactly one event
	ticks = 0
	s = NewScheduler()
	s.RegisterEvent(TimerTick, Period(60), func() error { ticks++; return nil })
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Advance(Period(60)))
		assert.Equal(t, i+1, ticks)
	}
}

func TestScheduler_Order(t *testing.T) {
	s := NewScheduler()
	var order []EventType
	s.RegisterEvent(CPUStep, 10*time.Millisecond, func() error { order = append(order, CPUStep); return nil })
	s.RegisterEvent(TimerTick, 15*time.Millisecond, func() error { order = append(order, TimerTick); return nil })

	require.NoError(t, s.Advance(30*time.Millisecond))
	// 10 step, 15 tick, 20 step, 30 step & tick (registration order)
	assert.Equal(t, []EventType{CPUStep, TimerTick, CPUStep, CPUStep, TimerTick}, order)
}

func TestScheduler_Error(t *testing.T) {
	s := NewScheduler()
	boom := errors.New("boom")
	var steps int
	s.RegisterEvent(CPUStep, time.Millisecond, func() error {
		steps++
		if steps == 3 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, s.Advance(time.Second), boom)
	assert.Equal(t, 3, steps)
}

func TestScheduler_SetPeriod(t *testing.T) {
	s := NewScheduler()
	var steps int
	s.RegisterEvent(CPUStep, Period(100), func() error { steps++; return nil })
	require.NoError(t, s.Advance(time.Second))
	assert.Equal(t, 100, steps)

	s.SetPeriod(CPUStep, Period(1000))
	steps = 0
	require.NoError(t, s.Advance(time.Second))
	assert.Equal(t, 1000, steps)
}

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	assert.Equal(t, time.Duration(0), c.Elapsed())
	c.Advance(time.Second)
	c.Advance(time.Millisecond)
	assert.Equal(t, time.Second+time.Millisecond, c.Elapsed())
}

func TestRealClock(t *testing.T) {
	c := NewClock()
	a := c.Elapsed()
	b := c.Elapsed()
	assert.GreaterOrEqual(t, b, a)
}

func TestScheduler_String(t *testing.T) {
	s := NewScheduler()
	assert.Equal(t, "", s.String())

	s.RegisterEvent(CPUStep, 10*time.Millisecond, func() error { return nil })
	s.RegisterEvent(TimerTick, 20*time.Millisecond, func() error { return nil })
	require.NoError(t, s.Advance(5*time.Millisecond))

	assert.Equal(t, "CPUStep every 10ms next at 10ms, TimerTick every 20ms next at 20ms", s.String())
}
