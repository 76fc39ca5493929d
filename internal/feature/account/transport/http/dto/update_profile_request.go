// Package dto defines data transfer objects for the account feature's HTTP transport layer.
package dto

// UpdateProfileReq represents the request body for PATCH /me.
// Absent fields are left unchanged; present fields are validated.
type UpdateProfileReq struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio" binding:"omitempty,max=1000"`
}
