// Package provisioning sequences the multi-step create, rename and delete
// operations over the tenant registry and the partition manager. There is no
// transaction spanning the steps: serialization relies on the registry's
// unique indexes, and each operation documents its partial-failure states.
package provisioning

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"org-service/internal/credential"
	"org-service/internal/model"
	"org-service/internal/orgerr"
	"org-service/internal/sanitize"
	"org-service/internal/store"
	"org-service/pkg/logger"
)

// Orchestrator drives organization lifecycle operations.
type Orchestrator struct {
	registry   store.Registry
	partitions store.PartitionManager
	creds      *credential.Store
}

// NewOrchestrator creates an orchestrator over the given registry, partition
// manager and credential store.
func NewOrchestrator(registry store.Registry, partitions store.PartitionManager, creds *credential.Store) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		partitions: partitions,
		creds:      creds,
	}
}

// Create registers an organization with its administrator and provisions an
// empty partition. Steps: uniqueness pre-checks, admin insert, partition
// creation, registry insert. A failure after the admin insert triggers
// best-effort compensating cleanup; the registry insert is the authoritative
// step, and a duplicate-key rejection there arbitrates concurrent creates.
func (o *Orchestrator) Create(ctx context.Context, name, email, password string) (*model.Organization, error) {
	log := logger.FromContext(ctx)

	if _, err := o.registry.OrgByName(ctx, name); err == nil {
		return nil, orgerr.Conflict("organization name already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, orgerr.Internal("checking organization name", err)
	}

	if _, err := o.registry.AdminByEmail(ctx, email); err == nil {
		return nil, orgerr.Conflict("admin email already used")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, orgerr.Internal("checking admin email", err)
	}

	hash, err := o.creds.Hash(password)
	if err != nil {
		return nil, orgerr.Internal("hashing password", err)
	}

	admin := &model.Admin{Email: email, PasswordHash: hash}
	if err := o.registry.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, orgerr.Conflict("admin email already used")
		}
		return nil, orgerr.Internal("creating admin", err)
	}

	partition := sanitize.Identifier(name)
	if err := o.partitions.CreatePartition(ctx, partition); err != nil {
		if derr := o.registry.DeleteAdmin(ctx, admin.ID); derr != nil {
			log.Warn("compensating admin cleanup failed, orphaned admin remains",
				zap.Uint("admin_id", admin.ID), zap.Error(derr))
		}
		return nil, orgerr.Internal("creating storage partition", err)
	}

	org := &model.Organization{
		Name:          name,
		PartitionName: partition,
		AdminID:       admin.ID,
	}
	if err := o.registry.CreateOrg(ctx, org); err != nil {
		if derr := o.partitions.DropPartition(ctx, partition); derr != nil {
			log.Warn("compensating partition cleanup failed",
				zap.String("partition", partition), zap.Error(derr))
		}
		if derr := o.registry.DeleteAdmin(ctx, admin.ID); derr != nil {
			log.Warn("compensating admin cleanup failed, orphaned admin remains",
				zap.Uint("admin_id", admin.ID), zap.Error(derr))
		}
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, orgerr.Conflict("organization name already exists")
		}
		return nil, orgerr.Internal("inserting organization record", err)
	}

	return org, nil
}

// Get returns the organization with the given name.
func (o *Orchestrator) Get(ctx context.Context, name string) (*model.Organization, error) {
	org, err := o.registry.OrgByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, orgerr.NotFound("organization not found")
		}
		return nil, orgerr.Internal("loading organization", err)
	}
	return org, nil
}

// UpdateParams carries the optional changes for Update. Empty strings mean
// "leave unchanged". When NewName is empty the trimmed Name is used as the
// rename target, so a name that only differs by surrounding whitespace still
// triggers a rename.
type UpdateParams struct {
	Name        string
	NewEmail    string
	NewPassword string
	NewName     string
}

// Update applies admin credential changes and renames the organization.
// Admin changes are applied immediately; the registry name and partition
// identifier are staged and written together in a single write, after the
// partition table itself has been renamed. A duplicate-key rejection on that
// final write surfaces as Conflict: two concurrent renames to the same target
// can both pass the pre-check, and the unique index arbitrates.
func (o *Orchestrator) Update(ctx context.Context, params UpdateParams) error {
	existing, err := o.registry.OrgByName(ctx, params.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return orgerr.NotFound("organization not found")
		}
		return orgerr.Internal("loading organization", err)
	}

	if params.NewEmail != "" || params.NewPassword != "" {
		admin, err := o.registry.AdminByID(ctx, existing.AdminID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return orgerr.Internal("admin referenced by organization not found", nil)
			}
			return orgerr.Internal("loading admin", err)
		}

		if params.NewEmail != "" {
			if _, err := o.registry.AdminByEmailExcluding(ctx, params.NewEmail, admin.ID); err == nil {
				return orgerr.Conflict("email already in use")
			} else if !errors.Is(err, store.ErrNotFound) {
				return orgerr.Internal("checking admin email", err)
			}
			err := o.registry.UpdateAdminFields(ctx, admin.ID, map[string]interface{}{"email": params.NewEmail})
			if err != nil {
				if errors.Is(err, store.ErrDuplicateKey) {
					return orgerr.Conflict("email already in use")
				}
				return orgerr.Internal("updating admin email", err)
			}
		}

		if params.NewPassword != "" {
			hash, err := o.creds.Hash(params.NewPassword)
			if err != nil {
				return orgerr.Internal("hashing password", err)
			}
			err = o.registry.UpdateAdminFields(ctx, admin.ID, map[string]interface{}{"password_hash": hash})
			if err != nil {
				return orgerr.Internal("updating admin password", err)
			}
		}
	}

	updates := map[string]interface{}{}

	newName := strings.TrimSpace(params.NewName)
	if newName == "" {
		newName = strings.TrimSpace(params.Name)
	}
	if newName != existing.Name {
		if _, err := o.registry.OrgByName(ctx, newName); err == nil {
			return orgerr.Conflict("target organization name already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return orgerr.Internal("checking target organization name", err)
		}

		newPartition := sanitize.Identifier(newName)
		if err := o.partitions.RenamePartition(ctx, existing.PartitionName, newPartition); err != nil {
			return orgerr.Internal("renaming partition "+existing.PartitionName, err)
		}
		updates["organization_name"] = newName
		updates["partition_name"] = newPartition
	}

	if len(updates) > 0 {
		if err := o.registry.UpdateOrgFields(ctx, existing.ID, updates); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return orgerr.Conflict("target organization name already exists")
			}
			return orgerr.Internal("updating organization record", err)
		}
	}

	return nil
}

// Delete tears an organization down. The partition drop and the admin delete
// are best-effort: their failures are logged and swallowed, and the operation
// succeeds once the registry record itself is removed. callerOrgID is the
// organization claim of the caller's token; when present it must match the
// target organization. An absent claim skips the check.
func (o *Orchestrator) Delete(ctx context.Context, name string, callerOrgID *uint) error {
	log := logger.FromContext(ctx)

	existing, err := o.registry.OrgByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return orgerr.NotFound("organization not found")
		}
		return orgerr.Internal("loading organization", err)
	}

	if callerOrgID != nil && *callerOrgID != existing.ID {
		return orgerr.Forbidden("not authorized to delete this organization")
	}

	if err := o.partitions.DropPartition(ctx, existing.PartitionName); err != nil {
		log.Warn("dropping partition failed, continuing with delete",
			zap.String("partition", existing.PartitionName), zap.Error(err))
	}

	if err := o.registry.DeleteAdmin(ctx, existing.AdminID); err != nil {
		log.Warn("deleting admin failed, continuing with delete",
			zap.Uint("admin_id", existing.AdminID), zap.Error(err))
	}

	if err := o.registry.DeleteOrg(ctx, existing.ID); err != nil {
		return orgerr.Internal("deleting organization record", err)
	}

	return nil
}

// Authenticate verifies an administrator's credentials and loads the linked
// organization, which may be nil. Unknown email and wrong password both
// return the same Unauthenticated error so account existence is not leaked.
func (o *Orchestrator) Authenticate(ctx context.Context, email, password string) (*model.Admin, *model.Organization, error) {
	admin, err := o.registry.AdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, orgerr.Unauthenticated("invalid credentials")
		}
		return nil, nil, orgerr.Internal("loading admin", err)
	}

	if !o.creds.Verify(password, admin.PasswordHash) {
		return nil, nil, orgerr.Unauthenticated("invalid credentials")
	}

	org, err := o.registry.OrgByAdminID(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return admin, nil, nil
		}
		return nil, nil, orgerr.Internal("loading organization", err)
	}

	return admin, org, nil
}
