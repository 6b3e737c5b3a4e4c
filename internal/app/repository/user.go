package repository

import (
	"arka/internal/app/ds"
	"errors"

	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(login, email, password, fullName string, isAdmin bool) (*ds.User, error) {
	user := ds.User{
		Login:    login,
		Email:    email,
		Password: password,
		FullName: fullName,
		IsAdmin:  isAdmin,
	}

	err := r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// IsNotFound сообщает, что ошибка — отсутствие записи
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
