package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Text  string `json:"text" binding:"required"`
	Limit int    `form:"limit" binding:"min=1"`
}

func TestCustomValidator_ValidateStruct(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.ValidateStruct(&sample{Text: "a", Limit: 1}))
	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct([]sample{{Text: "a", Limit: 2}}))

	err := v.ValidateStruct(&sample{Limit: 0})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	fields := []string{}
	for _, e := range errs {
		fields = append(fields, e.Field())
	}
	// 字段名来自 json / form 标签
	assert.ElementsMatch(t, []string{"text", "limit"}, fields)
}

func TestNewTranslator(t *testing.T) {
	v := NewCustomValidator()
	uni, err := NewTranslator(v.Engine().(*validator.Validate))
	require.NoError(t, err)

	verr := v.ValidateStruct(&sample{Limit: 1})
	require.Error(t, verr)
	errs := verr.(validator.ValidationErrors)

	enTrans, _ := uni.GetTranslator("en")
	assert.Equal(t, "text is a required field", errs[0].Translate(enTrans))

	zhTrans, found := uni.GetTranslator("zh")
	require.True(t, found)
	assert.Equal(t, "text为必填字段", errs[0].Translate(zhTrans))
}
