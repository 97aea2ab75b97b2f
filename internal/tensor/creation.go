package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	raw, err := NewRaw(shape, inferDataType[T](), backend.Device())
	if err != nil {
		panic(err)
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return Full[T, B](shape, 1, backend)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a float tensor sampled from the standard normal
// distribution N(0, 1) using the Box-Muller transform.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.Data()
	for i := range data {
		// 1-Float64() keeps u1 in (0, 1] so the log stays finite.
		u1 := 1 - rand.Float64() //nolint:gosec // G404: weight init does not need crypto randomness.
		u2 := rand.Float64()     //nolint:gosec // G404: weight init does not need crypto randomness.
		z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
		data[i] = T(z)
	}
	return t
}
