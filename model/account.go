package model

import (
	"time"
)

type Account struct {
	AccountID      int       `gorm:"column:account_id;primaryKey;autoIncrement"`
	UID            string    `gorm:"column:uid;type:varchar(64);uniqueIndex;not null"`
	Email          string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	HashedPassword string    `gorm:"column:hashed_password;type:varchar(255);not null"`
	Role           string    `gorm:"column:role;type:enum('admin','member');default:'member';not null"`
	CreateAt       time.Time `gorm:"column:create_at;autoCreateTime"`
}

func (Account) TableName() string {
	return "accounts"
}
