package postgres

import (
	"context"

	"org-service/internal/model"
)

// OrgByName returns the organization with the given display name.
func (s *Store) OrgByName(ctx context.Context, name string) (*model.Organization, error) {
	var org model.Organization
	result := s.db.WithContext(ctx).Where("organization_name = ?", name).First(&org)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	return &org, nil
}

// OrgByAdminID returns the organization linked to the given admin.
func (s *Store) OrgByAdminID(ctx context.Context, adminID uint) (*model.Organization, error) {
	var org model.Organization
	result := s.db.WithContext(ctx).Where("admin_id = ?", adminID).First(&org)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	return &org, nil
}

// CreateOrg inserts a new organization record.
func (s *Store) CreateOrg(ctx context.Context, org *model.Organization) error {
	return mapError(s.db.WithContext(ctx).Create(org).Error)
}

// UpdateOrgFields applies the staged field updates in one write.
func (s *Store) UpdateOrgFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&model.Organization{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return mapError(result.Error)
	}
	return nil
}

// DeleteOrg removes the organization record.
func (s *Store) DeleteOrg(ctx context.Context, id uint) error {
	return mapError(s.db.WithContext(ctx).Delete(&model.Organization{}, id).Error)
}

// AdminByEmail returns the admin with the given email.
func (s *Store) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&admin)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	return &admin, nil
}

// AdminByEmailExcluding returns an admin with the given email whose ID differs
// from excludeID.
func (s *Store) AdminByEmailExcluding(ctx context.Context, email string, excludeID uint) (*model.Admin, error) {
	var admin model.Admin
	result := s.db.WithContext(ctx).Where("email = ? AND id <> ?", email, excludeID).First(&admin)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	return &admin, nil
}

// AdminByID returns the admin with the given ID.
func (s *Store) AdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	var admin model.Admin
	result := s.db.WithContext(ctx).First(&admin, id)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}
	return &admin, nil
}

// CreateAdmin inserts a new admin record.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	return mapError(s.db.WithContext(ctx).Create(admin).Error)
}

// UpdateAdminFields applies the given field updates in one write.
func (s *Store) UpdateAdminFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&model.Admin{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return mapError(result.Error)
	}
	return nil
}

// DeleteAdmin removes the admin record.
func (s *Store) DeleteAdmin(ctx context.Context, id uint) error {
	return mapError(s.db.WithContext(ctx).Delete(&model.Admin{}, id).Error)
}
