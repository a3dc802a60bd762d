package service

import (
	"errors"

	"destek-ui/config"
	"destek-ui/database"
	"destek-ui/database/model"
	"destek-ui/logger"
	"destek-ui/util/crypto"

	"gorm.io/gorm"
)

// defaultAdminPassword is the known bootstrap credential for the privileged
// user. It is expected to be rotated right after seeding.
const defaultAdminPassword = "Admin123!"

type UserService struct{}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies a credential pair. It returns nil on any failure and
// never reveals whether the username exists.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}

	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		// Burn a hash comparison anyway so the miss is not observable
		// through response timing.
		crypto.CheckPasswordHash("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", password)
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}

// IsPrivileged reports whether the username is the distinguished help desk
// admin allowed to delete any note.
func (s *UserService) IsPrivileged(username string) bool {
	return username == config.GetAdminUsername()
}

// SeedAdminUser creates the privileged user with the default credential when
// it does not exist yet. Returns true when a user was created.
func (s *UserService) SeedAdminUser() (bool, error) {
	db := database.GetDB()
	username := config.GetAdminUsername()

	var count int64
	err := db.Model(model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(defaultAdminPassword)
	if err != nil {
		return false, err
	}

	user := &model.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := db.Create(user).Error; err != nil {
		return false, err
	}
	logger.Infof("seeded privileged user %s", username)
	return true, nil
}

// UpdateFirstUser sets the credentials of the first user, creating it when
// the users table is still empty.
func (s *UserService) UpdateFirstUser(username string, password string) error {
	if username == "" {
		return errors.New("username can not be empty")
	} else if password == "" {
		return errors.New("password can not be empty")
	}
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.User{}
	err = db.Model(model.User{}).First(user).Error
	if database.IsNotFound(err) {
		user.Username = username
		user.Password = hashedPassword
		return db.Model(model.User{}).Create(user).Error
	} else if err != nil {
		return err
	}
	user.Username = username
	user.Password = hashedPassword
	return db.Save(user).Error
}
