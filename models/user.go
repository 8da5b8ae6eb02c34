package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username  string `gorm:"unique;not null"`
	Password  string `gorm:"not null" json:"-"` // Don't expose password hash
	FirstName string
	LastName  string
	Email     string
}
