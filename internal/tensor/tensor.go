// Package tensor provides the core tensor types shared by every other
// package: typed tensors, untyped raw storage, shapes, dtypes, and the
// Backend compute interface.
//
// A Tensor[T, B] pairs a RawTensor with the backend that operates on
// it. The element type and backend are carried in the type system, so
// mixing dtypes or backends is a compile error rather than a runtime
// surprise.
package tensor

import "fmt"

// Tensor is a typed view over a RawTensor bound to a backend.
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps an existing RawTensor. The raw dtype must match T.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	if raw.DType() != inferDataType[T]() {
		panic(fmt.Sprintf("tensor.New: raw dtype %s does not match element type", raw.DType()))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// FromSlice builds a tensor from a flat slice in row-major order.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	raw, err := NewRaw(shape, inferDataType[T](), backend.Device())
	if err != nil {
		return nil, err
	}
	copy(rawData[T](raw), data)

	return &Tensor[T, B]{raw: raw, backend: backend}, nil
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the backend this tensor is bound to.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the runtime element type tag.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// NumElements returns the number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Data returns the tensor's elements as a typed slice backed by the
// tensor's buffer. Writes through the slice are visible to the tensor.
func (t *Tensor[T, B]) Data() []T {
	return rawData[T](t.raw)
}

// Item returns the single element of a scalar tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor[T, B]) Item() T {
	if t.raw.NumElements() != 1 {
		panic(fmt.Sprintf("Item on tensor with %d elements", t.raw.NumElements()))
	}
	return t.Data()[0]
}

// At reads the element at the given multi-dimensional index.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.raw.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("index rank %d does not match tensor rank %d", len(indices), len(shape)))
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		flat += idx * t.raw.Stride()[i]
	}
	return flat
}

// Clone returns a deep copy with its own buffer.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Copy(), backend: t.backend}
}

// String formats a short description of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor(%s, %s, %s)", t.raw.DType(), t.raw.Shape(), t.backend.Name())
}

// rawData reinterprets a RawTensor's buffer as []T.
func rawData[T DType](raw *RawTensor) []T {
	switch any(*new(T)).(type) {
	case float32:
		return any(raw.AsFloat32()).([]T)
	case float64:
		return any(raw.AsFloat64()).([]T)
	case int32:
		return any(raw.AsInt32()).([]T)
	default:
		panic(fmt.Sprintf("unsupported element type %T", *new(T)))
	}
}
