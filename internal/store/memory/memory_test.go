package memory

import (
	"context"
	"errors"
	"testing"

	"org-service/internal/model"
	"org-service/internal/store"
)

func TestRegistry_OrgUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	first := &model.Organization{Name: "Acme Co", PartitionName: "org_acme_co", AdminID: 1}
	if err := s.CreateOrg(ctx, first); err != nil {
		t.Fatalf("CreateOrg error: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("CreateOrg did not assign an ID")
	}

	dup := &model.Organization{Name: "Acme Co", PartitionName: "org_other", AdminID: 2}
	if err := s.CreateOrg(ctx, dup); !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("duplicate name: expected ErrDuplicateKey, got %v", err)
	}

	// Distinct display names colliding on the derived identifier are rejected too
	collide := &model.Organization{Name: "Acme_Co", PartitionName: "org_acme_co", AdminID: 2}
	if err := s.CreateOrg(ctx, collide); !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("duplicate partition: expected ErrDuplicateKey, got %v", err)
	}
}

func TestRegistry_UpdateOrgFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	org := &model.Organization{Name: "Acme", PartitionName: "org_acme", AdminID: 1}
	if err := s.CreateOrg(ctx, org); err != nil {
		t.Fatalf("CreateOrg error: %v", err)
	}
	other := &model.Organization{Name: "Umbrella", PartitionName: "org_umbrella", AdminID: 2}
	if err := s.CreateOrg(ctx, other); err != nil {
		t.Fatalf("CreateOrg error: %v", err)
	}

	err := s.UpdateOrgFields(ctx, org.ID, map[string]interface{}{
		"organization_name": "Umbrella",
		"partition_name":    "org_umbrella2",
	})
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("rename onto taken name: expected ErrDuplicateKey, got %v", err)
	}

	err = s.UpdateOrgFields(ctx, org.ID, map[string]interface{}{
		"organization_name": "Initech",
		"partition_name":    "org_initech",
	})
	if err != nil {
		t.Fatalf("UpdateOrgFields error: %v", err)
	}

	got, err := s.OrgByName(ctx, "Initech")
	if err != nil {
		t.Fatalf("OrgByName error: %v", err)
	}
	if got.PartitionName != "org_initech" {
		t.Fatalf("partition not updated: %q", got.PartitionName)
	}
	if _, err := s.OrgByName(ctx, "Acme"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("old name still resolves: %v", err)
	}
}

func TestRegistry_AdminEmailUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	admin := &model.Admin{Email: "a@acme.test", PasswordHash: "x"}
	if err := s.CreateAdmin(ctx, admin); err != nil {
		t.Fatalf("CreateAdmin error: %v", err)
	}

	dup := &model.Admin{Email: "a@acme.test", PasswordHash: "y"}
	if err := s.CreateAdmin(ctx, dup); !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// Excluding the admin itself, the email is free
	if _, err := s.AdminByEmailExcluding(ctx, "a@acme.test", admin.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	second := &model.Admin{Email: "b@acme.test", PasswordHash: "z"}
	if err := s.CreateAdmin(ctx, second); err != nil {
		t.Fatalf("CreateAdmin error: %v", err)
	}
	got, err := s.AdminByEmailExcluding(ctx, "b@acme.test", admin.ID)
	if err != nil {
		t.Fatalf("AdminByEmailExcluding error: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("wrong admin returned: %d", got.ID)
	}
}

func TestPartitions_CreateRenameDrop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	if err := s.CreatePartition(ctx, "org_acme"); err != nil {
		t.Fatalf("CreatePartition error: %v", err)
	}
	if err := s.CreatePartition(ctx, "org_acme"); !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("duplicate partition: expected ErrDuplicateKey, got %v", err)
	}

	rows := s.PartitionRows("org_acme")
	if len(rows) != 1 || rows[0].Meta != model.MetaPartitionCreated {
		t.Fatalf("creation marker missing: %+v", rows)
	}

	if err := s.RenamePartition(ctx, "org_acme", "org_initech"); err != nil {
		t.Fatalf("RenamePartition error: %v", err)
	}
	if exists, _ := s.HasPartition(ctx, "org_acme"); exists {
		t.Fatal("old partition still exists after rename")
	}
	if exists, _ := s.HasPartition(ctx, "org_initech"); !exists {
		t.Fatal("new partition missing after rename")
	}
	renamed := s.PartitionRows("org_initech")
	if len(renamed) != 1 || renamed[0].Meta != model.MetaPartitionCreated {
		t.Fatalf("marker not preserved across rename: %+v", renamed)
	}

	if err := s.RenamePartition(ctx, "org_missing", "org_x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("rename of missing partition: expected ErrNotFound, got %v", err)
	}

	if err := s.DropPartition(ctx, "org_initech"); err != nil {
		t.Fatalf("DropPartition error: %v", err)
	}
	if exists, _ := s.HasPartition(ctx, "org_initech"); exists {
		t.Fatal("partition still exists after drop")
	}
	if err := s.DropPartition(ctx, "org_initech"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double drop: expected ErrNotFound, got %v", err)
	}
}
