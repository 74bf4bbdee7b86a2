package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochop/internal/core/domain/model/kernel"
	"gochop/internal/pkg/errs"
)

func TestRoleFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    kernel.Role
		wantErr bool
	}{
		{name: "customer", input: "customer", want: kernel.RoleCustomer},
		{name: "restaurant", input: "restaurant", want: kernel.RoleRestaurant},
		{name: "rider", input: "rider", want: kernel.RoleRider},
		{name: "admin", input: "admin", want: kernel.RoleAdmin},
		{name: "empty string", input: "", wantErr: true},
		{name: "unknown role", input: "driver", wantErr: true},
		{name: "wrong case", input: "Customer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := kernel.RoleFromString(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, kernel.RoleUnknown, role)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestRole_Validate(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		for _, role := range []kernel.Role{
			kernel.RoleCustomer, kernel.RoleRestaurant, kernel.RoleRider, kernel.RoleAdmin,
		} {
			require.NoError(t, role.Validate())
		}
	})

	t.Run("invalid roles", func(t *testing.T) {
		for _, role := range []kernel.Role{kernel.RoleUnknown, kernel.Role(99)} {
			err := role.Validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "customer", kernel.RoleCustomer.String())
	assert.Equal(t, "restaurant", kernel.RoleRestaurant.String())
	assert.Equal(t, "rider", kernel.RoleRider.String())
	assert.Equal(t, "admin", kernel.RoleAdmin.String())
	assert.Equal(t, "unknown", kernel.RoleUnknown.String())
	assert.Equal(t, "unknown", kernel.Role(99).String())
}

func TestRole_RoundTrip(t *testing.T) {
	for _, role := range []kernel.Role{
		kernel.RoleCustomer, kernel.RoleRestaurant, kernel.RoleRider, kernel.RoleAdmin,
	} {
		parsed, err := kernel.RoleFromString(role.String())

		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
}
