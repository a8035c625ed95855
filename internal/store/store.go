// Package store defines the storage interfaces the provisioning orchestrator
// depends on: the master tenant registry and the per-organization partition
// primitives. Implementations live in the postgres and memory subpackages.
package store

import (
	"context"
	"errors"

	"org-service/internal/model"
)

// Sentinel errors for common storage error conditions
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Registry is the master table of organizations and their administrators.
// Name and email uniqueness is enforced by unique indexes at write time, not
// only by the orchestrator's pre-checks; concurrent writers are arbitrated
// here, and losers receive ErrDuplicateKey.
type Registry interface {
	// OrgByName returns the organization with the given display name.
	// Returns ErrNotFound if no such organization exists.
	OrgByName(ctx context.Context, name string) (*model.Organization, error)

	// OrgByAdminID returns the organization linked to the given admin.
	// Returns ErrNotFound if the admin has no organization.
	OrgByAdminID(ctx context.Context, adminID uint) (*model.Organization, error)

	// CreateOrg inserts a new organization record and assigns its ID.
	// Returns ErrDuplicateKey when the name or partition identifier is taken.
	CreateOrg(ctx context.Context, org *model.Organization) error

	// UpdateOrgFields applies the staged field updates in one write.
	// Returns ErrDuplicateKey when an updated unique field is already taken.
	UpdateOrgFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// DeleteOrg removes the organization record.
	DeleteOrg(ctx context.Context, id uint) error

	// AdminByEmail returns the admin with the given email, or ErrNotFound.
	AdminByEmail(ctx context.Context, email string) (*model.Admin, error)

	// AdminByEmailExcluding returns an admin with the given email whose ID
	// differs from excludeID, or ErrNotFound.
	AdminByEmailExcluding(ctx context.Context, email string, excludeID uint) (*model.Admin, error)

	// AdminByID returns the admin with the given ID, or ErrNotFound.
	AdminByID(ctx context.Context, id uint) (*model.Admin, error)

	// CreateAdmin inserts a new admin record and assigns its ID.
	// Returns ErrDuplicateKey when the email is already registered.
	CreateAdmin(ctx context.Context, admin *model.Admin) error

	// UpdateAdminFields applies the given field updates in one write.
	UpdateAdminFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// DeleteAdmin removes the admin record.
	DeleteAdmin(ctx context.Context, id uint) error
}

// PartitionManager manages the per-organization storage partitions.
type PartitionManager interface {
	// CreatePartition creates an empty partition and writes its creation
	// marker so the partition is observable before any tenant data arrives.
	CreatePartition(ctx context.Context, name string) error

	// RenamePartition renames a partition, preserving its contents.
	RenamePartition(ctx context.Context, oldName, newName string) error

	// DropPartition removes a partition and all data inside it.
	DropPartition(ctx context.Context, name string) error

	// HasPartition reports whether a partition with the given name exists.
	HasPartition(ctx context.Context, name string) (bool, error)
}
