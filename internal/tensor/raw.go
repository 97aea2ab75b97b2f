package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where tensor data lives.
//
// The framework currently ships a CPU backend only; the enum exists so
// backends can be added without touching tensor code.
type Device uint8

// Supported devices.
const (
	CPU Device = iota
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return fmt.Sprintf("unknown(%d)", d)
	}
}

// tensorBuffer is the shared, reference-counted byte storage behind
// one or more RawTensors. Sharing enables cheap clones; the reference
// count tells backends when an in-place update is safe.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
}

func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{data: make([]byte, size)}
	buf.refCount.Store(1)
	return buf
}

func (b *tensorBuffer) addRef() {
	b.refCount.Add(1)
}

func (b *tensorBuffer) release() {
	b.refCount.Add(-1)
}

// RawTensor is the untyped storage unit every backend operates on.
//
// It couples a shared byte buffer with shape, stride, and dtype
// metadata. RawTensor is deliberately free of arithmetic: all compute
// goes through a Backend, and typed access goes through the AsXxx
// views.
type RawTensor struct {
	buffer *tensorBuffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw allocates a zero-filled tensor with the given shape, dtype,
// and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	size := shape.NumElements() * dtype.Size()
	return &RawTensor{
		buffer: newTensorBuffer(size),
		shape:  shape.Clone(),
		stride: ComputeStrides(shape),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape. The caller must not mutate it.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Stride returns the tensor's row-major strides.
func (r *RawTensor) Stride() []int {
	return r.stride
}

// DType returns the element type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns where the data lives.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Data returns the raw backing bytes.
func (r *RawTensor) Data() []byte {
	return r.buffer.data
}

// AsFloat32 reinterprets the buffer as []float32.
// Panics if the dtype does not match.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("AsFloat32 on %s tensor", r.dtype))
	}
	if len(r.buffer.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements()) //nolint:gosec // G103: reinterpreting owned buffer, size checked at allocation.
}

// AsFloat64 reinterprets the buffer as []float64.
// Panics if the dtype does not match.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("AsFloat64 on %s tensor", r.dtype))
	}
	if len(r.buffer.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements()) //nolint:gosec // G103: reinterpreting owned buffer, size checked at allocation.
}

// AsInt32 reinterprets the buffer as []int32.
// Panics if the dtype does not match.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("AsInt32 on %s tensor", r.dtype))
	}
	if len(r.buffer.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements()) //nolint:gosec // G103: reinterpreting owned buffer, size checked at allocation.
}

// Clone returns a new RawTensor sharing the same buffer.
//
// The clone sees every write to the buffer. Backends consult IsUnique
// before mutating in place, so a live clone blocks in-place updates.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: ComputeStrides(r.shape),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Copy returns a deep copy with its own buffer.
func (r *RawTensor) Copy() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(err)
	}
	copy(out.buffer.data, r.buffer.data)
	return out
}

// IsUnique reports whether this tensor is the buffer's only reference,
// meaning an in-place update cannot be observed elsewhere.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.refCount.Load() == 1
}

// ForceNonUnique pins the buffer with an extra reference and returns a
// closure that drops it.
//
// The gradient tape keeps pointers into recorded tensors; an in-place
// update would silently corrupt the recorded values. Callers that hand
// a tensor to the tape bump the count for the duration of the inner
// backend call:
//
//	defer x.ForceNonUnique()()
func (r *RawTensor) ForceNonUnique() func() {
	r.buffer.addRef()
	return func() {
		r.buffer.release()
	}
}

// String formats a short description, e.g. "RawTensor(float32, [2 3], CPU)".
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(%s, %s, %s)", r.dtype, r.shape, r.device)
}
