package model

import "github.com/golang-jwt/jwt/v5"

// FacilitatorClaims are JWT claims for facilitator authentication.
type FacilitatorClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for facilitator login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
