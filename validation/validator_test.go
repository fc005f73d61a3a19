package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string  `json:"username" validate:"required,notblank,max=10"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitnil,phone"`
	Role     string  `json:"role" validate:"omitempty,oneof=admin user"`
}

func strPtr(s string) *string { return &s }

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		req         sampleRequest
		wantField   string
		wantMessage string
	}{
		{
			name: "valid",
			req:  sampleRequest{Username: "alice", Email: "alice@example.com", Phone: strPtr("0123456789")},
		},
		{
			name:        "blank username",
			req:         sampleRequest{Username: "   ", Email: "alice@example.com"},
			wantField:   "username",
			wantMessage: "username is required",
		},
		{
			name:        "username too long",
			req:         sampleRequest{Username: "abcdefghijk", Email: "alice@example.com"},
			wantField:   "username",
			wantMessage: "username cannot exceed 10 characters",
		},
		{
			name:        "bad email",
			req:         sampleRequest{Username: "alice", Email: "nope"},
			wantField:   "email",
			wantMessage: "Please provide a valid email address",
		},
		{
			name:        "short phone",
			req:         sampleRequest{Username: "alice", Email: "alice@example.com", Phone: strPtr("12345")},
			wantField:   "phone",
			wantMessage: "Phone number must be exactly 10 digits",
		},
		{
			name:        "bad role",
			req:         sampleRequest{Username: "alice", Email: "alice@example.com", Role: "owner"},
			wantField:   "role",
			wantMessage: "role must be one of: admin user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			require.Len(t, verr.Errors(), 1)
			assert.Equal(t, tt.wantField, verr.Errors()[0].Field())
			assert.Equal(t, tt.wantMessage, verr.Error())
		})
	}
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("0123456789"))
	assert.False(t, IsPhone("012345678"))
	assert.False(t, IsPhone("01234567890"))
	assert.False(t, IsPhone("01234a6789"))
	assert.False(t, IsPhone(""))
}
