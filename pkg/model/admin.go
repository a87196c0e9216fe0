package model

// LoginRequest carries the shared admin secret
type LoginRequest struct {
	Password string `json:"password"`
}

// PasswordChangeRequest rotates the shared admin secret
type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// DeleteRequest is the bulk-delete payload for any managed table
type DeleteRequest struct {
	IDs []int64 `json:"ids"`
}
