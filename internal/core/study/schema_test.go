package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRegistry_Exhaustive(t *testing.T) {
	require.NoError(t, CheckResultRegistry())

	for _, kind := range PracticeKinds {
		shape, ok := resultShapes[kind]
		require.True(t, ok, "kind %q has no result shape", kind)
		assert.True(t, shape.closed, "result shape for %q must be closed", kind)
		assert.NotEmpty(t, shape.fields)
	}
}

func TestResultRegistry_ShapesAreDistinct(t *testing.T) {
	seen := make(map[string]PracticeKind)
	for kind, shape := range resultShapes {
		sig := ""
		for _, f := range shape.fields {
			sig += f.name + ","
		}
		if other, dup := seen[sig]; dup {
			t.Fatalf("kinds %q and %q share a result shape", other, kind)
		}
		seen[sig] = kind
	}
}

func TestObjectSpec_NullHandling(t *testing.T) {
	obj := map[string]interface{}{
		"greeting":       nil,
		"farewell":       "Tschuess",
		"middle_phrases": []interface{}{"ok"},
	}
	vs := dialogueSpec.validate("", obj)
	require.Len(t, vs, 1)
	assert.Equal(t, "greeting", vs[0].Path)
	assert.Equal(t, "must not be null", vs[0].Reason)
}

func TestObjectSpec_NotAnObject(t *testing.T) {
	vs := dialogueSpec.validate("", "just a string")
	require.Len(t, vs, 1)
	assert.Equal(t, "must be an object", vs[0].Reason)
}

func TestCheckTimestamp(t *testing.T) {
	assert.Empty(t, checkTimestamp("ts", "2025-11-13T09:15:00Z"))
	assert.Empty(t, checkTimestamp("ts", "2025-10-05T14:35:06.829Z"))
	assert.NotEmpty(t, checkTimestamp("ts", "13.11.2025"))
	assert.NotEmpty(t, checkTimestamp("ts", 42))
}

func TestCheckStringList_Bounds(t *testing.T) {
	check := checkStringList(listOpts{min: 1, max: 3, unique: true})

	assert.NotEmpty(t, check("xs", []interface{}{}))
	assert.NotEmpty(t, check("xs", []interface{}{"a", "b", "c", "d"}))
	assert.Empty(t, check("xs", []interface{}{"a", "b"}))

	vs := check("xs", []interface{}{"a", "a"})
	require.Len(t, vs, 1)
	assert.Equal(t, "xs[1]", vs[0].Path)
}
