package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotationValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    AnnotationValue
		expected string
	}{
		{name: "unset", value: nil, expected: `null`},
		{name: "empty", value: AnnotationValue{}, expected: `null`},
		{name: "single value is a string", value: AnnotationValue{"600"}, expected: `"600"`},
		{name: "several values are a list", value: AnnotationValue{"600", "615"}, expected: `["600","615"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAnnotationValue_UnmarshalJSON(t *testing.T) {
	var v AnnotationValue

	require.NoError(t, json.Unmarshal([]byte(`"600"`), &v))
	assert.Equal(t, AnnotationValue{"600"}, v)

	require.NoError(t, json.Unmarshal([]byte(`["600","615"]`), &v))
	assert.Equal(t, AnnotationValue{"600", "615"}, v)

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.Nil(t, v)

	assert.Error(t, json.Unmarshal([]byte(`42`), &v))
}

func TestAnnotationValue_Value(t *testing.T) {
	v, err := AnnotationValue(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = AnnotationValue{"Kawana"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `"Kawana"`, v)

	v, err = AnnotationValue{"600", "615"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["600","615"]`, v)
}

func TestAnnotationValue_Scalar(t *testing.T) {
	s, ok := AnnotationValue{"600"}.Scalar()
	assert.True(t, ok)
	assert.Equal(t, "600", s)

	_, ok = AnnotationValue{"600", "615"}.Scalar()
	assert.False(t, ok)

	_, ok = AnnotationValue(nil).Scalar()
	assert.False(t, ok)
}
