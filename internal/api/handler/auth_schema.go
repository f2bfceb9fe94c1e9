package handler

import "time"

type loginRequest struct {
	Email    string `json:"email"    validate:"required,max=50,email"`
	Password string `json:"password" validate:"required,min=6,max=40"`
}

type registerRequest struct {
	FirstName   string   `json:"firstName"   validate:"required,max=100"`
	LastName    string   `json:"lastName"    validate:"required,max=100"`
	Email       string   `json:"email"       validate:"required,max=50,email"`
	Password    string   `json:"password"    validate:"required,min=6,max=40"`
	PhoneNumber string   `json:"phoneNumber" validate:"required,max=15"`
	Role        []string `json:"role"`
}

// loginResponse is the authenticated profile returned by login. The token
// fields are present in bearer mode only; in cookie mode the token travels in
// the Set-Cookie header instead.
type loginResponse struct {
	AccessToken string    `json:"accessToken,omitempty"`
	TokenType   string    `json:"tokenType,omitempty"`
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreateDate  time.Time `json:"createDate"`
	Roles       []string  `json:"roles"`
}

type userDataResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type messageResponse struct {
	Message string `json:"message"`
}
