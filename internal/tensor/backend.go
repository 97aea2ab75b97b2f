package tensor

// Backend is the compute interface every device implementation
// provides.
//
// It is intentionally small: exactly the operations the recurrent
// models and their gradients need. Both the plain CPU backend and the
// autodiff decorator implement the full interface, so model code can
// be generic over B without caring whether a gradient tape is
// attached.
//
// Operations allocate their result unless the backend can prove an
// in-place update is safe (see RawTensor.IsUnique). Shape and dtype
// violations panic: they indicate programmer error, not runtime
// conditions to recover from.
type Backend interface {
	// Name identifies the backend, e.g. "CPU" or "Autodiff(CPU)".
	Name() string

	// Device returns the device this backend computes on.
	Device() Device

	// Add computes element-wise a + b with broadcasting.
	Add(a, b *RawTensor) *RawTensor

	// Sub computes element-wise a - b with broadcasting.
	Sub(a, b *RawTensor) *RawTensor

	// Mul computes element-wise a * b with broadcasting.
	Mul(a, b *RawTensor) *RawTensor

	// Div computes element-wise a / b with broadcasting.
	Div(a, b *RawTensor) *RawTensor

	// MatMul computes the matrix product of two 2D tensors.
	MatMul(a, b *RawTensor) *RawTensor

	// Reshape returns a tensor with the same data and a new shape.
	// The element count must be preserved.
	Reshape(x *RawTensor, shape Shape) *RawTensor

	// Transpose permutes the tensor's axes. With no axes given, the
	// axis order is reversed.
	Transpose(x *RawTensor, axes ...int) *RawTensor

	// Tanh applies the hyperbolic tangent element-wise.
	Tanh(x *RawTensor) *RawTensor

	// Sigmoid applies the logistic function element-wise.
	Sigmoid(x *RawTensor) *RawTensor

	// Softmax normalizes x into a probability distribution along dim.
	// Implementations must use the max-shifted form so rows with large
	// magnitude spreads stay finite.
	Softmax(x *RawTensor, dim int) *RawTensor

	// Log applies the natural logarithm element-wise.
	Log(x *RawTensor) *RawTensor
}
