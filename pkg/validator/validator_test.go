package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedSettings struct {
	BaseURL     string  `validate:"required,url"`
	Email       string  `validate:"required,email"`
	OrderCount  int     `validate:"gte=0"`
	Probability float64 `validate:"gte=0,lte=1"`
	Policy      string  `validate:"oneof=order product"`
	MinReviews  int     `validate:"min=1"`
	MaxReviews  int     `validate:"gtefield=MinReviews"`
}

func validSettings() seedSettings {
	return seedSettings{
		BaseURL:     "http://localhost:3001",
		Email:       "admin@example.com",
		OrderCount:  80,
		Probability: 0.6,
		Policy:      "order",
		MinReviews:  5,
		MaxReviews:  20,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := make(map[string]string, len(valErr.Errors))
	for _, fe := range valErr.Errors {
		fields[fe.Field()] = describe(fe)
	}
	return fields
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validSettings()))
}

func TestValidate_MissingRequired(t *testing.T) {
	s := validSettings()
	s.BaseURL = ""

	fields := fieldsOf(t, Validate(s))
	assert.Equal(t, "is required", fields["BaseURL"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := validSettings()
	s.Email = "not-an-email"

	fields := fieldsOf(t, Validate(s))
	assert.Equal(t, "must be a valid email address (got not-an-email)", fields["Email"])
}

func TestValidate_OutOfRange(t *testing.T) {
	s := validSettings()
	s.Probability = 1.5

	fields := fieldsOf(t, Validate(s))
	assert.Equal(t, "must be <= 1 (got 1.5)", fields["Probability"])
}

func TestValidate_OneOf(t *testing.T) {
	s := validSettings()
	s.Policy = "random"

	fields := fieldsOf(t, Validate(s))
	assert.Equal(t, "must be one of [order product] (got random)", fields["Policy"])
}

func TestValidate_CrossField(t *testing.T) {
	s := validSettings()
	s.MaxReviews = 2

	fields := fieldsOf(t, Validate(s))
	assert.Contains(t, fields["MaxReviews"], "MinReviews")
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(seedSettings{})
	fields := fieldsOf(t, err)

	assert.Contains(t, fields, "BaseURL")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, err.Error(), "BaseURL is required")
}

type envSettings struct {
	Sources []string `env:"SOURCE_FILES" envSeparator:"," validate:"min=1"`
	Cap     int      `env:"REVIEW_CAP,notEmpty" validate:"gte=0"`
	Plain   string   `validate:"required"`
}

func TestValidate_NamesFieldsByEnvTag(t *testing.T) {
	err := Validate(envSettings{Cap: -1})
	fields := fieldsOf(t, err)

	assert.Equal(t, "must list at least 1 entries", fields["SOURCE_FILES"])
	assert.Equal(t, "must be >= 0 (got -1)", fields["REVIEW_CAP"])
	assert.Equal(t, "is required", fields["Plain"])
	assert.Contains(t, err.Error(), "REVIEW_CAP must be >= 0")
}
