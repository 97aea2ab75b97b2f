package tensor

// Method wrappers that route through the tensor's backend. They exist
// so model code reads as arithmetic rather than backend plumbing.

// Add returns t + other element-wise, with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Add(t.raw, other.raw), backend: t.backend}
}

// Sub returns t - other element-wise, with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Sub(t.raw, other.raw), backend: t.backend}
}

// Mul returns t * other element-wise, with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Mul(t.raw, other.raw), backend: t.backend}
}

// Div returns t / other element-wise, with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Div(t.raw, other.raw), backend: t.backend}
}

// MatMul returns the matrix product t @ other for 2D tensors.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.MatMul(t.raw, other.raw), backend: t.backend}
}

// Reshape returns a tensor with the same elements and a new shape.
func (t *Tensor[T, B]) Reshape(dims ...int) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Reshape(t.raw, Shape(dims)), backend: t.backend}
}

// Transpose permutes the tensor's axes. With no axes given, the axis
// order is reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Transpose(t.raw, axes...), backend: t.backend}
}

// T is shorthand for Transpose on a 2D tensor.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	return t.Transpose()
}

// Tanh applies the hyperbolic tangent element-wise.
func (t *Tensor[T, B]) Tanh() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Tanh(t.raw), backend: t.backend}
}

// Sigmoid applies the logistic function element-wise.
func (t *Tensor[T, B]) Sigmoid() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Sigmoid(t.raw), backend: t.backend}
}

// Softmax normalizes the tensor into probabilities along dim.
func (t *Tensor[T, B]) Softmax(dim int) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Softmax(t.raw, dim), backend: t.backend}
}

// Log applies the natural logarithm element-wise.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Log(t.raw), backend: t.backend}
}
