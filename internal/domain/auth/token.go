package auth

import "time"

// AccessToken 封裝簽發後的 access token。
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
