// Package model defines the relational entities of the story platform.
package model

import "time"

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
}

type Story struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Author    int       `json:"author" gorm:"index;not null"`
	Name      string    `json:"name"`
	Votes     int       `json:"votes" gorm:"default:0"`
	Private   bool      `json:"private" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived on demand, never stored. Nil unless a detailed read was asked for.
	Reviews []int `json:"reviews" gorm:"-"`
}

type Review struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Author    int       `json:"author" gorm:"index;not null"`
	Story     int       `json:"story" gorm:"index;not null"`
	Content   string    `json:"content"`
	Votes     int       `json:"votes" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}
