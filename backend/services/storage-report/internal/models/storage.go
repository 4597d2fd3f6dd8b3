package models

// Storage is a storage pool.
type Storage struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

// StorageNode is a server inside a storage pool.
type StorageNode struct {
	ID        int64  `json:"Id"`
	Name      string `json:"Name"`
	StorageID int64  `json:"StorageId,omitempty"`
}
