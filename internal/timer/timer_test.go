package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController_Tick(t *testing.T) {
	c := NewController()
	c.Delay = 10
	c.Sound = 2

	for i := 0; i < 10; i++ {
		c.Tick()
	}
	assert.Equal(t, uint8(0), c.Delay)
	assert.Equal(t, uint8(0), c.Sound)

	// floors at zero
	c.Tick()
	assert.Equal(t, uint8(0), c.Delay)
	assert.Equal(t, uint8(0), c.Sound)
}

func TestController_Tone(t *testing.T) {
	c := NewController()
	assert.False(t, c.Tone())

	c.Sound = 1
	assert.True(t, c.Tone())
	c.Tick()
	assert.False(t, c.Tone())
}
