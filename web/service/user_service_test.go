package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedAdminUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	created, err := service.SeedAdminUser()
	assert.NoError(t, err)
	assert.True(t, created)

	// Seeding again is a no-op
	created, err = service.SeedAdminUser()
	assert.NoError(t, err)
	assert.False(t, created)

	user, err := service.GetFirstUser()
	assert.NoError(t, err)
	assert.Equal(t, "helpadmin", user.Username)

	// The seeded credential works and the stored password is not plaintext
	assert.NotEqual(t, defaultAdminPassword, user.Password)
	assert.NotNil(t, service.CheckUser("helpadmin", defaultAdminPassword))
}

func TestCheckUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.UpdateFirstUser("mehmet", "s3cret"))

	user := service.CheckUser("mehmet", "s3cret")
	assert.NotNil(t, user)
	assert.Equal(t, "mehmet", user.Username)

	// Wrong password and unknown username both fail the same way
	assert.Nil(t, service.CheckUser("mehmet", "wrong"))
	assert.Nil(t, service.CheckUser("nobody", "s3cret"))
}

func TestIsPrivileged(t *testing.T) {
	service := UserService{}
	assert.True(t, service.IsPrivileged("helpadmin"))
	assert.False(t, service.IsPrivileged("mehmet"))
	assert.False(t, service.IsPrivileged(""))
}

func TestUpdateFirstUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	assert.Error(t, service.UpdateFirstUser("", "pass"))
	assert.Error(t, service.UpdateFirstUser("user", ""))

	// Creates the user when the table is empty
	assert.NoError(t, service.UpdateFirstUser("mehmet", "first"))
	assert.NotNil(t, service.CheckUser("mehmet", "first"))

	// Rotates the credentials of the existing user
	assert.NoError(t, service.UpdateFirstUser("zeynep", "second"))
	assert.Nil(t, service.CheckUser("mehmet", "first"))
	assert.NotNil(t, service.CheckUser("zeynep", "second"))
}
