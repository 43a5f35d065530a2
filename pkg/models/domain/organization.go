package domain

import "time"

const (
	OrgTypeHeadquarters = "headquarters"
	OrgTypeRegional     = "regional"
	OrgTypeDistrict     = "district"
	OrgTypePartner      = "partner"
)

// Organization is a node in the reporting hierarchy. ParentID is zero
// for roots; the parent relation is expected to be acyclic, but walks
// over it guard against malformed data anyway.
type Organization struct {
	ID       int64
	Name     string
	Code     string
	Type     string
	ParentID int64
	IsActive bool

	CreatedAt time.Time
}

type Indicator struct {
	ID   int64
	Name string
	Code string
}

type Project struct {
	ID   int64
	Name string
	Code string
}
