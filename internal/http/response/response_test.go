package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": 1})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something failed")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something failed", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Role     string `validate:"required,oneof=client worker"`
		Password string `validate:"required,min=6"`
	}

	validate := validator.New()

	tests := []struct {
		name string
		req  request
		want string
	}{
		{
			name: "missing required fields",
			req:  request{},
			want: "field Name is a required field, field Email is a required field, field Role is a required field, field Password is a required field",
		},
		{
			name: "invalid email and role",
			req: request{
				Name:     "Ivan",
				Email:    "not-an-email",
				Role:     "admin",
				Password: "secret",
			},
			want: "field Email must be a valid email, field Role must be one of: client worker",
		},
		{
			name: "short password",
			req: request{
				Name:     "Ivan",
				Email:    "ivan@example.com",
				Role:     "client",
				Password: "123",
			},
			want: "field Password is too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			require.Error(t, err)

			resp := ValidationError(err.(validator.ValidationErrors))

			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}
