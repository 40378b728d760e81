package models

import "time"

// User is the public profile of an account
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials are used for both login and signup
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the bearer token issued by /auth/token
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
