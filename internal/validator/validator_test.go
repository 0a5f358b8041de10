package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidate(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone", IsPhone))
	require.NoError(t, v.RegisterValidation("website", IsWebsite))
	return v
}

func TestIsPhone(t *testing.T) {
	v := newValidate(t)

	assert.NoError(t, v.Var("0312345678", "phone"), "10 digits")
	assert.NoError(t, v.Var("09012345678", "phone"), "11 digits")

	assert.Error(t, v.Var("123456789", "phone"), "9 digits")
	assert.Error(t, v.Var("123456789012", "phone"), "12 digits")
	assert.Error(t, v.Var("03-1234-5678", "phone"), "separators")
	assert.Error(t, v.Var("", "phone"))
}

func TestIsWebsite(t *testing.T) {
	v := newValidate(t)

	assert.NoError(t, v.Var("https://example.com", "website"))
	assert.NoError(t, v.Var("http://example.com/path?q=1", "website"))

	assert.Error(t, v.Var("example.com", "website"), "missing scheme")
	assert.Error(t, v.Var("ftp://example.com", "website"), "wrong scheme")
	assert.Error(t, v.Var("http://", "website"), "missing host")
}
