package tensor

import "fmt"

// DType is the type constraint for tensor element types.
//
// The framework stores every tensor as raw bytes and reinterprets them
// through this constraint, so only types with a fixed wire size are
// allowed.
type DType interface {
	~float32 | ~float64 | ~int32
}

// DataType identifies the element type of a RawTensor at runtime.
type DataType uint8

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
)

// Size returns the size of one element in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown data type: %d", dt))
	}
}

// String returns the canonical name of the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	default:
		return fmt.Sprintf("unknown(%d)", dt)
	}
}

// inferDataType maps a compile-time element type to its runtime tag.
func inferDataType[T DType]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	default:
		panic(fmt.Sprintf("unsupported element type: %T", zero))
	}
}
