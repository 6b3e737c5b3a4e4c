package ds

import "time"

// 1. Таблица пользователей
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Login     string    `gorm:"type:varchar(50);unique;not null"`
	Email     string    `gorm:"type:varchar(100);unique;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	FullName  string    `gorm:"type:varchar(100)"`
	IsAdmin   bool      `gorm:"type:boolean;default:false;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
