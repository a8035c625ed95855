package model

import (
	"time"
)

// Organization represents the master registry record for a tenant.
// PartitionName is always derived from Name via sanitize.Identifier; the pair
// is updated in a single write on rename so the record and the partition table
// never disagree after a successful operation.
//
// Records are hard-deleted: a deleted organization must release its unique
// name and partition identifier immediately.
type Organization struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"organization_name" gorm:"column:organization_name;type:varchar(100);uniqueIndex"`
	PartitionName string    `json:"partition_name" gorm:"type:varchar(160);uniqueIndex"`
	AdminID       uint      `json:"admin_id" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
