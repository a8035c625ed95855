package postgres

import (
	"context"

	"org-service/internal/model"
)

// CreatePartition creates the partition table and writes its creation marker.
// The two steps are not atomic; the orchestrator compensates on failure.
func (s *Store) CreatePartition(ctx context.Context, name string) error {
	db := s.db.WithContext(ctx)

	if err := db.Table(name).Migrator().CreateTable(&model.PartitionRecord{}); err != nil {
		return mapError(err)
	}

	marker := model.PartitionRecord{Meta: model.MetaPartitionCreated}
	if err := db.Table(name).Create(&marker).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// RenamePartition renames a partition table, preserving its rows.
func (s *Store) RenamePartition(ctx context.Context, oldName, newName string) error {
	return mapError(s.db.WithContext(ctx).Migrator().RenameTable(oldName, newName))
}

// DropPartition removes a partition table and all data inside it.
func (s *Store) DropPartition(ctx context.Context, name string) error {
	return mapError(s.db.WithContext(ctx).Migrator().DropTable(name))
}

// HasPartition reports whether the partition table exists.
func (s *Store) HasPartition(ctx context.Context, name string) (bool, error) {
	return s.db.WithContext(ctx).Migrator().HasTable(name), nil
}
