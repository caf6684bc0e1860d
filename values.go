package vissim

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Attributes is attribute mapping of a single element
type Attributes map[string]string

// Attr is a single attribute to be written. Slices of Attr keep document order.
type Attr struct {
	Key   string
	Value interface{}
}

// Values are caller supplied overrides for create workflows
type Values map[string]interface{}

// formatValue converts value to its attribute representation
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// AttrType is semantic type of an entity attribute
type AttrType uint16

const (
	ATTR_FLOAT = AttrType(iota + 1)
	ATTR_INT
	ATTR_BOOL
	ATTR_STRING
	ATTR_LIST
)

func (iotaIdx AttrType) String() string {
	return [...]string{"float", "int", "bool", "string", "list"}[iotaIdx-1]
}

// Schema maps attribute names of an entity to their types
type Schema map[string]AttrType

// check returns ErrInvalidAttribute for undeclared attributes and ErrTypeMismatch
// for values which can't represent declared type
func (schema Schema) check(attr string, value interface{}) error {
	attrType, ok := schema[attr]
	if !ok {
		return errors.Wrapf(ErrInvalidAttribute, "'%s'", attr)
	}
	if !attrType.accepts(value) {
		return errors.Wrapf(ErrTypeMismatch, "attribute '%s' expects %s, got %T(%v)", attr, attrType, value, value)
	}
	return nil
}

func (attrType AttrType) accepts(value interface{}) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	kind := rv.Kind()
	switch attrType {
	case ATTR_FLOAT:
		switch {
		case kind == reflect.Float32 || kind == reflect.Float64:
			return true
		case isIntKind(kind):
			return true
		case kind == reflect.String:
			_, err := strconv.ParseFloat(rv.String(), 64)
			return err == nil
		}
	case ATTR_INT:
		switch {
		case isIntKind(kind):
			return true
		case kind == reflect.String:
			_, err := strconv.Atoi(rv.String())
			return err == nil
		}
	case ATTR_BOOL:
		switch kind {
		case reflect.Bool:
			return true
		case reflect.String:
			s := rv.String()
			return s == "true" || s == "false"
		}
	case ATTR_STRING:
		if kind == reflect.String {
			return true
		}
		_, ok := value.(fmt.Stringer)
		return ok
	case ATTR_LIST:
		return kind == reflect.Slice || kind == reflect.Array
	}
	return false
}

func isIntKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
