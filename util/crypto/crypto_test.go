package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordAsBcrypt(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("Admin123!")
	assert.NoError(t, err)
	assert.NotEqual(t, "Admin123!", hash)

	assert.True(t, CheckPasswordHash(hash, "Admin123!"))
	assert.False(t, CheckPasswordHash(hash, "admin123!"))
	assert.False(t, CheckPasswordHash(hash, ""))
	assert.False(t, CheckPasswordHash("not-a-hash", "Admin123!"))
}
