// model/value_test.go
package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/model"
)

func TestValueOf_NaturalTypes(t *testing.T) {
	v, err := model.ValueOf("svc-42")
	require.NoError(t, err)
	assert.Equal(t, model.TypeString, v.Type)

	v, err = model.ValueOf(float64(14))
	require.NoError(t, err)
	assert.Equal(t, model.TypeNumber, v.Type)
	assert.Equal(t, 14.0, v.Num)

	v, err = model.ValueOf(true)
	require.NoError(t, err)
	assert.Equal(t, model.TypeBoolean, v.Type)

	v, err = model.ValueOf([]interface{}{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, model.TypeList, v.Type)
	assert.Len(t, v.List, 2)

	_, err = model.ValueOf(nil)
	assert.Error(t, err)

	_, err = model.ValueOf(map[string]interface{}{"k": "v"})
	assert.Error(t, err)
}

func TestCoerceValue(t *testing.T) {
	v, err := model.CoerceValue("prod", model.TypeEnum)
	require.NoError(t, err)
	assert.Equal(t, model.TypeEnum, v.Type)
	assert.Equal(t, "prod", v.Str)

	v, err = model.CoerceValue(9, model.TypeNumber)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v.Num)

	v, err = model.CoerceValue("2026-06-01T12:00:00Z", model.TypeTimestamp)
	require.NoError(t, err)
	assert.Equal(t, model.TypeTimestamp, v.Type)
	assert.Equal(t, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC), v.Time)

	_, err = model.CoerceValue("not-a-timestamp", model.TypeTimestamp)
	assert.Error(t, err)

	_, err = model.CoerceValue(42, model.TypeString)
	assert.Error(t, err)

	_, err = model.CoerceValue("yes", model.TypeBoolean)
	assert.Error(t, err)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, model.StringValue("a").Equal(model.StringValue("a")))
	assert.False(t, model.StringValue("a").Equal(model.StringValue("b")))

	// Enum and string compare by their text.
	assert.True(t, model.EnumValue("prod").Equal(model.StringValue("prod")))
	assert.True(t, model.StringValue("prod").Equal(model.EnumValue("prod")))

	// Cross-type comparison is false, never an error.
	assert.False(t, model.NumberValue(1).Equal(model.StringValue("1")))
	assert.False(t, model.BoolValue(true).Equal(model.NumberValue(1)))

	now := time.Now()
	assert.True(t, model.TimeValue(now).Equal(model.TimeValue(now)))
	assert.True(t, model.TimeValue(now.UTC()).Equal(model.TimeValue(now.Local())))

	a := model.ListValue([]model.Value{model.StringValue("x"), model.NumberValue(2)})
	b := model.ListValue([]model.Value{model.StringValue("x"), model.NumberValue(2)})
	c := model.ListValue([]model.Value{model.StringValue("x")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
