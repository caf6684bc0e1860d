package vissim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{"ALL", "ALL"},
		{"", ""},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint16(3), "3"},
		{3.5, "3.5"},
		{3.0, "3.0"},
		{float32(0.25), "0.25"},
		{LINK_PRIMARY, "primary"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.value), "%T(%v)", tt.value, tt.value)
	}
}

func TestAttrTypeAccepts(t *testing.T) {
	tests := []struct {
		attrType AttrType
		value    interface{}
		want     bool
	}{
		{ATTR_FLOAT, 1.5, true},
		{ATTR_FLOAT, 2, true},
		{ATTR_FLOAT, "60.00000", true},
		{ATTR_FLOAT, "fast", false},
		{ATTR_FLOAT, true, false},
		{ATTR_INT, 3, true},
		{ATTR_INT, "3", true},
		{ATTR_INT, 3.5, false},
		{ATTR_INT, "3.5", false},
		{ATTR_BOOL, false, true},
		{ATTR_BOOL, "true", true},
		{ATTR_BOOL, "yes", false},
		{ATTR_BOOL, 1, false},
		{ATTR_STRING, "Main", true},
		{ATTR_STRING, LINK_TRUNK, true},
		{ATTR_STRING, 10, false},
		{ATTR_LIST, []float64{3.5}, true},
		{ATTR_LIST, 3.5, false},
		{ATTR_INT, nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.attrType.accepts(tt.value), "%s accepts %T(%v)", tt.attrType, tt.value, tt.value)
	}
}

func TestSchemaCheck(t *testing.T) {
	require.NoError(t, linkSchema.check("lnChgDist", 150.0))
	require.ErrorIs(t, linkSchema.check("lnChgDist", "far"), ErrTypeMismatch)
	require.ErrorIs(t, linkSchema.check("colour", "red"), ErrInvalidAttribute)
}
