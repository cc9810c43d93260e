// Package model holds the gorm models persisted by the todo API.
package model

import "time"

// User is an account created at signup. The password hash and salt never
// leave the server.
type User struct {
	Id                int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string    `json:"name"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	EncryptedPassword string    `json:"-" gorm:"not null"`
	Salt              string    `json:"-" gorm:"not null"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Category is global; every authenticated user shares the same set.
type Category struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Todo belongs to the user that created it. CategoryId and UserId are plain
// columns: removing a category or user leaves the todo in place.
type Todo struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"not null;index"`
	CategoryId int       `json:"CategoryId" gorm:"column:category_id;index"`
	UserId     int       `json:"UserId" gorm:"column:user_id;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
