package must

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCastFloat64(t *testing.T) {
	assert.Equal(t, 0.7, CastFloat64("0.7"))
	assert.Equal(t, 35.8e9, CastFloat64("35.8e9"))
	assert.Equal(t, 0.0, CastFloat64(""))
}

func TestAssert(t *testing.T) {
	Assert(true, "never printed")
	NoError(nil)
}
