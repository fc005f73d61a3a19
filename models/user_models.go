package models

import "time"

const DefaultProfileImage = "https://i.pinimg.com/736x/47/a5/ce/47a5ceb8164f8a6707cf66f43685ecef.jpg"

// User is the stored user document. IdentityToken is the externally issued
// identifier clients send to authenticate.
type User struct {
	ID                      string     `json:"_id"`
	IdentityToken           string     `json:"userId"`
	Username                string     `json:"username"`
	Email                   string     `json:"email"`
	Phone                   *string    `json:"phone"`
	BirthDate               *time.Time `json:"birthDate,omitempty"`
	ProfileImage            string     `json:"profileImage"`
	Friends                 IDList     `json:"friends"`
	PendingSentRequests     IDList     `json:"pendingSentRequests"`
	PendingReceivedRequests IDList     `json:"pendingReceivedRequests"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfileImage: u.ProfileImage}
}

// PublicUser is a user as shown on a profile page, without pending requests.
type PublicUser struct {
	ID            string     `json:"_id"`
	IdentityToken string     `json:"userId"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	ProfileImage  string     `json:"profileImage"`
	Friends       IDList     `json:"friends"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		IdentityToken: u.IdentityToken,
		Username:      u.Username,
		Email:         u.Email,
		Phone:         u.Phone,
		BirthDate:     u.BirthDate,
		ProfileImage:  u.ProfileImage,
		Friends:       u.Friends,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type ProfileResponse struct {
	User  PublicUser `json:"user"`
	Posts []PostView `json:"posts"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	UserID       string `json:"userId" validate:"required,notblank"`
	Username     string `json:"username" validate:"required,notblank"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	BirthDate    string `json:"birthDate"`
	ProfileImage string `json:"profileImage"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}. Nil fields are left
// unchanged; an empty phone clears it.
type UpdateUserRequest struct {
	Username     *string `json:"username"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

type UserSearchResult struct {
	ID                string `json:"_id"`
	Username          string `json:"username"`
	ProfileImage      string `json:"profileImage"`
	IsFriend          bool   `json:"isFriend"`
	IsPendingSent     bool   `json:"isPendingSent"`
	IsPendingReceived bool   `json:"isPendingReceived"`
}
