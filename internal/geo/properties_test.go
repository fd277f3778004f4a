package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesPreservesKeyOrder(t *testing.T) {
	var props Properties
	require.NoError(t, json.Unmarshal([]byte(`{"zulu":1,"alpha":"x","mike":true}`), &props))

	assert.Equal(t, []string{"zulu", "alpha", "mike"}, props.Keys())
	assert.Equal(t, 3, props.Len())

	value, ok := props.Get("zulu")
	assert.True(t, ok)
	assert.Equal(t, json.Number("1"), value)
}

func TestPropertiesNull(t *testing.T) {
	var props Properties
	require.NoError(t, json.Unmarshal([]byte(`null`), &props))

	assert.True(t, props.IsNull())
	assert.Equal(t, 0, props.Len())

	_, ok := props.Get("anything")
	assert.False(t, ok)
}

func TestPropertiesEmptyObjectIsNotNull(t *testing.T) {
	var props Properties
	require.NoError(t, json.Unmarshal([]byte(`{}`), &props))

	assert.False(t, props.IsNull())
	assert.Equal(t, 0, props.Len())
}

func TestPropertiesRejectsNonObject(t *testing.T) {
	var props Properties
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &props))
	assert.Error(t, json.Unmarshal([]byte(`"text"`), &props))
}

func TestPropertiesMarshalRoundTrip(t *testing.T) {
	src := `{"name":"Helvetia","height":1.50,"active":true,"note":null}`

	var props Properties
	require.NoError(t, json.Unmarshal([]byte(src), &props))

	out, err := json.Marshal(props)
	require.NoError(t, err)
	// key order and numeric literals survive untouched
	assert.Equal(t, src, string(out))
}

func TestPropertiesMarshalNull(t *testing.T) {
	out, err := json.Marshal(Properties{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestPropertiesSet(t *testing.T) {
	var props Properties
	props.Set("a", 1)
	props.Set("b", 2)
	props.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, props.Keys())

	value, ok := props.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestFeatureWithoutPropertiesKey(t *testing.T) {
	var f Feature
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Feature","geometry":null}`), &f))

	assert.True(t, f.Properties.IsNull())
	assert.Nil(t, f.Geometry)
}

func TestPropertiesNestedValues(t *testing.T) {
	var props Properties
	require.NoError(t, json.Unmarshal([]byte(`{"tags":{"a":1},"list":[1,2]}`), &props))

	tags, ok := props.Get("tags")
	assert.True(t, ok)
	assert.Equal(t, map[string]interface{}{"a": json.Number("1")}, tags)

	list, ok := props.Get("list")
	assert.True(t, ok)
	assert.Equal(t, []interface{}{json.Number("1"), json.Number("2")}, list)
}
