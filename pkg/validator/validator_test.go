package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-register/pkg/validator"
)

type sample struct {
	Item      string `validate:"notblank"`
	Direction string `validate:"required,direction"`
	Quantity  int64  `validate:"gt=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Nil(t, validator.ValidateStruct(sample{Item: "Pen", Direction: "out", Quantity: 3}))
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	errs := validator.ValidateStruct(sample{Item: "   ", Direction: "sideways", Quantity: 0})

	require.Len(t, errs, 3)
	assert.Equal(t, "sample.Item", errs[0].FailedField)
	assert.Equal(t, "notblank", errs[0].Tag)
	assert.Equal(t, "direction", errs[1].Tag)
	assert.Equal(t, "gt", errs[2].Tag)
	assert.Equal(t, "0", errs[2].Value)
	assert.Contains(t, validator.Describe(errs), "sample.Quantity (gt=0)")
}
