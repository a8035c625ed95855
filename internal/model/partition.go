package model

import (
	"time"
)

// MetaPartitionCreated is the Meta value of the creation marker row written
// into every new partition, so the partition's existence is observable before
// any tenant data arrives.
const MetaPartitionCreated = "partition_created"

// PartitionRecord is the row shape of a per-organization partition table.
// The table name is dynamic (derived from the organization name), so this
// model is always used with an explicit table scope.
type PartitionRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Meta      string    `json:"meta" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
}
