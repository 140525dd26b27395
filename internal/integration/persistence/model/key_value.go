// Package model defines database models for persistence layer.
package model

import "time"

// KeyValueModel represents the ledger_kv table: one row per persisted
// ledger slice, holding its serialized JSON document.
type KeyValueModel struct {
	Key       string    `gorm:"column:slot_key;type:varchar(255);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the KeyValueModel.
func (KeyValueModel) TableName() string {
	return "ledger_kv"
}
