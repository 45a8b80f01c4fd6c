package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Login string  `validate:"required"`
	IDs   []int64 `validate:"required,min=1,dive,gt=0"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Login: "a", IDs: []int64{1}}))

	details := Validate(sample{})
	assert.Equal(t, "required", details["Login"])
	assert.Equal(t, "required", details["IDs"])
}

func TestDetails_NonValidationError(t *testing.T) {
	assert.Equal(t, map[string]string{"body": "unexpected EOF"}, Details(errors.New("unexpected EOF")))
}
