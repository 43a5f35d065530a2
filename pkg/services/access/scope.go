package access

import (
	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/models/store"
)

// Policy narrows a measurement filter to what the caller may see. The
// set is closed: admins see everything, organization members see their
// own organization exactly, and callers without an organization see
// nothing. This is deliberately narrower than the ancestor/descendant
// visibility used for organization management views.
type Policy interface {
	Scope(f store.MeasurementFilter) store.MeasurementFilter
}

// ForCaller selects the policy once per request from the caller
// descriptor.
func ForCaller(c domain.Caller) Policy {
	if c.IsAdmin() {
		return adminPolicy{}
	}
	if c.OrganizationID != 0 {
		return orgPolicy{orgID: c.OrganizationID}
	}
	return noAccessPolicy{}
}

type adminPolicy struct{}

func (adminPolicy) Scope(f store.MeasurementFilter) store.MeasurementFilter {
	return f
}

type orgPolicy struct {
	orgID int64
}

// Scope pins the organization filter to the caller's organization. A
// request for another organization's data yields an empty set rather
// than an error.
func (p orgPolicy) Scope(f store.MeasurementFilter) store.MeasurementFilter {
	if f.OrganizationID != 0 && f.OrganizationID != p.orgID {
		f.None = true
		return f
	}
	f.OrganizationID = p.orgID
	return f
}

type noAccessPolicy struct{}

func (noAccessPolicy) Scope(f store.MeasurementFilter) store.MeasurementFilter {
	f.None = true
	return f
}
