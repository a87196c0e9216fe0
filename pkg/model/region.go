package model

// Region represents a geographic region subscribers can attach to
type Region struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// RegionRequest is the payload for creating or renaming a region
type RegionRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
