package api

type Organization struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Type     string `json:"type"`
	ParentID int64  `json:"parent_id,omitempty"`
	IsActive bool   `json:"is_active"`
}
