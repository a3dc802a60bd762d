package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingDefaults(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)

	basePath, err := service.GetBasePath()
	assert.NoError(t, err)
	assert.Equal(t, "/", basePath)

	maxAge, err := service.GetSessionMaxAge()
	assert.NoError(t, err)
	assert.Equal(t, 60, maxAge)

	loc, err := service.GetTimeLocation()
	assert.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", loc.String())
}

func TestSettingRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	assert.NoError(t, service.SetPort(9090))
	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 9090, port)

	// Saving twice updates in place instead of duplicating the key
	assert.NoError(t, service.SetPort(9191))
	port, _ = service.GetPort()
	assert.Equal(t, 9191, port)

	assert.NoError(t, service.ResetSettings())
	port, err = service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)
}

func TestGetSecretPersists(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	first, err := service.GetSecret()
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	// The generated secret is stored, later calls return the same value
	second, err := service.GetSecret()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetBasePathNormalized(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}
	assert.NoError(t, service.setString("webBasePath", "panel"))

	basePath, err := service.GetBasePath()
	assert.NoError(t, err)
	assert.Equal(t, "/panel/", basePath)
}
