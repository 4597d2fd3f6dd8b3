package models

// Partner is a customer/tenant in the backup management hierarchy.
type Partner struct {
	ID       int64  `json:"Id"`
	ParentID int64  `json:"ParentId,omitempty"`
	Name     string `json:"Name"`
	Level    string `json:"Level,omitempty"`
}
