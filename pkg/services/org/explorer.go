package org

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb/catalog"
)

// ErrNotFound marks a lookup for an organization that does not exist.
var ErrNotFound = errors.New("organization not found")

// Explorer answers organization visibility queries. Management views
// use the wide rule (self plus descendants plus ancestors), unlike the
// exact-match scoping applied to measurement queries.
type Explorer struct {
	catalog catalog.Store
}

func NewExplorer(cat catalog.Store) *Explorer {
	return &Explorer{catalog: cat}
}

// VisibleOrganizations lists what the caller may manage: everything for
// admins, the caller's visibility set otherwise, nothing for callers
// without an organization.
func (e *Explorer) VisibleOrganizations(ctx context.Context, caller domain.Caller) ([]domain.Organization, error) {
	hierarchy, all, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return all, nil
	}
	if caller.OrganizationID == 0 {
		return []domain.Organization{}, nil
	}
	return hierarchy.VisibleSet(caller.OrganizationID), nil
}

// Descendants lists every organization below the given one.
func (e *Explorer) Descendants(ctx context.Context, orgID int64) ([]domain.Organization, error) {
	hierarchy, _, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := hierarchy.Get(orgID); !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, orgID)
	}
	return hierarchy.Descendants(orgID), nil
}

func (e *Explorer) load(ctx context.Context) (*Hierarchy, []domain.Organization, error) {
	records, err := e.catalog.ListOrganizations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load organizations: %w", err)
	}
	orgs := make([]domain.Organization, 0, len(records))
	for _, rec := range records {
		orgs = append(orgs, organizationToDomain(rec))
	}
	return NewHierarchy(orgs), orgs, nil
}

func organizationToDomain(rec store.OrganizationRecord) domain.Organization {
	o := domain.Organization{
		ID:        rec.ID,
		Name:      rec.Name,
		Code:      rec.Code,
		Type:      rec.Type,
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
	}
	if rec.ParentID != nil {
		o.ParentID = *rec.ParentID
	}
	return o
}
