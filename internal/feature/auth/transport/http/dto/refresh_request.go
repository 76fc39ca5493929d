package dto

// RefreshReq represents the request for token refresh.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutReq represents the request for logout; the refresh token names the
// session to revoke.
type LogoutReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
