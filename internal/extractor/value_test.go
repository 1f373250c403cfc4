package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	v, err := ParseValue([]byte(` {"z":1.5,"a":[true,null,"x"],"m":{"k":"v"}} `))
	require.NoError(t, err)
	require.Equal(t, ObjectValue, v.Kind)
	require.Len(t, v.Members, 3)

	assert.Equal(t, []string{"z", "a", "m"}, []string{v.Members[0].Key, v.Members[1].Key, v.Members[2].Key})
	assert.Equal(t, 1.5, v.Field("z").Number)

	arr := v.Field("a")
	require.Equal(t, ArrayValue, arr.Kind)
	require.Len(t, arr.Items, 3)
	assert.True(t, arr.Items[0].Bool)
	assert.Equal(t, NullValue, arr.Items[1].Kind)
	assert.Equal(t, "x", arr.Items[2].String)

	assert.Equal(t, "v", v.Field("m").StringField("k"))
	assert.Equal(t, "", v.StringField("z"))
	assert.Nil(t, v.Field("missing"))
}

func TestParseValue_Invalid(t *testing.T) {
	for _, doc := range []string{"", "   ", "{", `{"a":}`, "undefined", `{"a":1} trailing`} {
		_, err := ParseValue([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestParseValue_Scalars(t *testing.T) {
	v, err := ParseValue([]byte(`"aé"`))
	require.NoError(t, err)
	assert.Equal(t, StringValue, v.Kind)
	assert.Equal(t, "aé", v.String)

	v, err = ParseValue([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, ArrayValue, v.Kind)
	assert.Empty(t, v.Items)
}
