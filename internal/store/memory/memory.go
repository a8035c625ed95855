// Package memory is an in-memory implementation of the registry and partition
// interfaces for development and testing. It mirrors the postgres semantics,
// including unique-key rejection at write time and marker preservation across
// partition renames.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"org-service/internal/model"
	"org-service/internal/store"
)

// Store implements store.Registry and store.PartitionManager in memory.
type Store struct {
	mu          sync.Mutex
	nextOrgID   uint
	nextAdminID uint
	orgs        map[uint]*model.Organization
	admins      map[uint]*model.Admin
	partitions  map[string][]model.PartitionRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orgs:       make(map[uint]*model.Organization),
		admins:     make(map[uint]*model.Admin),
		partitions: make(map[string][]model.PartitionRecord),
	}
}

// OrgByName returns the organization with the given display name.
func (s *Store) OrgByName(ctx context.Context, name string) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, org := range s.orgs {
		if org.Name == name {
			cp := *org
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// OrgByAdminID returns the organization linked to the given admin.
func (s *Store) OrgByAdminID(ctx context.Context, adminID uint) (*model.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, org := range s.orgs {
		if org.AdminID == adminID {
			cp := *org
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// CreateOrg inserts a new organization record and assigns its ID.
func (s *Store) CreateOrg(ctx context.Context, org *model.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orgs {
		if existing.Name == org.Name {
			return fmt.Errorf("%w: organization_name", store.ErrDuplicateKey)
		}
		if existing.PartitionName == org.PartitionName {
			return fmt.Errorf("%w: partition_name", store.ErrDuplicateKey)
		}
	}

	s.nextOrgID++
	org.ID = s.nextOrgID
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt

	cp := *org
	s.orgs[org.ID] = &cp
	return nil
}

// UpdateOrgFields applies the staged field updates in one write.
func (s *Store) UpdateOrgFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[id]
	if !ok {
		return store.ErrNotFound
	}

	// Validate every staged field before mutating anything, the write is all
	// or nothing like a single-row update.
	name, hasName := fields["organization_name"].(string)
	partition, hasPartition := fields["partition_name"].(string)
	for _, existing := range s.orgs {
		if existing.ID == id {
			continue
		}
		if hasName && existing.Name == name {
			return fmt.Errorf("%w: organization_name", store.ErrDuplicateKey)
		}
		if hasPartition && existing.PartitionName == partition {
			return fmt.Errorf("%w: partition_name", store.ErrDuplicateKey)
		}
	}

	if hasName {
		org.Name = name
	}
	if hasPartition {
		org.PartitionName = partition
	}
	org.UpdatedAt = time.Now()
	return nil
}

// DeleteOrg removes the organization record.
func (s *Store) DeleteOrg(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orgs, id)
	return nil
}

// AdminByEmail returns the admin with the given email.
func (s *Store) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, admin := range s.admins {
		if admin.Email == email {
			cp := *admin
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// AdminByEmailExcluding returns an admin with the given email whose ID differs
// from excludeID.
func (s *Store) AdminByEmailExcluding(ctx context.Context, email string, excludeID uint) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, admin := range s.admins {
		if admin.Email == email && admin.ID != excludeID {
			cp := *admin
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

// AdminByID returns the admin with the given ID.
func (s *Store) AdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.admins[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *admin
	return &cp, nil
}

// CreateAdmin inserts a new admin record and assigns its ID.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.admins {
		if existing.Email == admin.Email {
			return fmt.Errorf("%w: email", store.ErrDuplicateKey)
		}
	}

	s.nextAdminID++
	admin.ID = s.nextAdminID
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt

	cp := *admin
	s.admins[admin.ID] = &cp
	return nil
}

// UpdateAdminFields applies the given field updates in one write.
func (s *Store) UpdateAdminFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.admins[id]
	if !ok {
		return store.ErrNotFound
	}

	if email, ok := fields["email"].(string); ok {
		for _, existing := range s.admins {
			if existing.ID != id && existing.Email == email {
				return fmt.Errorf("%w: email", store.ErrDuplicateKey)
			}
		}
		admin.Email = email
	}
	if hash, ok := fields["password_hash"].(string); ok {
		admin.PasswordHash = hash
	}
	admin.UpdatedAt = time.Now()
	return nil
}

// DeleteAdmin removes the admin record.
func (s *Store) DeleteAdmin(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.admins, id)
	return nil
}

// CreatePartition creates an empty partition holding only its creation marker.
func (s *Store) CreatePartition(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.partitions[name]; exists {
		return fmt.Errorf("%w: partition %s", store.ErrDuplicateKey, name)
	}
	s.partitions[name] = []model.PartitionRecord{
		{ID: 1, Meta: model.MetaPartitionCreated, CreatedAt: time.Now()},
	}
	return nil
}

// RenamePartition renames a partition, preserving its rows.
func (s *Store) RenamePartition(ctx context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, exists := s.partitions[oldName]
	if !exists {
		return fmt.Errorf("%w: partition %s", store.ErrNotFound, oldName)
	}
	if _, taken := s.partitions[newName]; taken {
		return fmt.Errorf("%w: partition %s", store.ErrDuplicateKey, newName)
	}
	s.partitions[newName] = rows
	delete(s.partitions, oldName)
	return nil
}

// DropPartition removes a partition and all data inside it.
func (s *Store) DropPartition(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.partitions[name]; !exists {
		return fmt.Errorf("%w: partition %s", store.ErrNotFound, name)
	}
	delete(s.partitions, name)
	return nil
}

// HasPartition reports whether a partition with the given name exists.
func (s *Store) HasPartition(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.partitions[name]
	return exists, nil
}

// PartitionRows returns a copy of the rows stored in a partition. Test helper.
func (s *Store) PartitionRows(name string) []model.PartitionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.partitions[name]
	out := make([]model.PartitionRecord, len(rows))
	copy(out, rows)
	return out
}
