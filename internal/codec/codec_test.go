package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	root, err := Parse([]byte(`{"a": 1, "b": ["x"]}`))
	require.NoError(t, err)
	obj, ok := root.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, obj, "a")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"a": `))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestParse_TrailingContent(t *testing.T) {
	_, err := Parse([]byte(`{} garbage`))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "trailing")
}

func TestParse_ReportsOffset(t *testing.T) {
	_, err := Parse([]byte(`{"a": }`))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Greater(t, pe.Offset, int64(0))
}

func TestSerialize_RoundTrip(t *testing.T) {
	root, err := Parse([]byte(`{"greeting": "Grüß dich", "count": 3}`))
	require.NoError(t, err)

	data, err := Serialize(root)
	require.NoError(t, err)
	// Non-ASCII text stays readable and numbers survive unchanged.
	assert.Contains(t, string(data), "Grüß dich")
	assert.Contains(t, string(data), "3")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, root, back)
}

func TestParse_NullDocument(t *testing.T) {
	root, err := Parse([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, root)
}
