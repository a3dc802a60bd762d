package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	assert.Len(t, Seq(32), 32)
	assert.Empty(t, Seq(0))

	// Two draws colliding would mean the generator is broken
	assert.NotEqual(t, Seq(32), Seq(32))
}
