package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// This keeps the variance of activations roughly constant across
// layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	raw, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}

	return tensor.New[float32](raw, backend)
}

// Gaussian initializes a tensor with values drawn from N(0, sigma²).
//
// The recurrent cells start from small Gaussian weights so their early
// outputs stay close to uniform. Pass a non-nil src for reproducible
// initialization; nil draws from the process-wide source.
func Gaussian[B tensor.Backend](shape tensor.Shape, sigma float64, src rand.Source, backend B) *tensor.Tensor[float32, B] {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}

	raw, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32(dist.Rand())
	}

	return tensor.New[float32](raw, backend)
}

// Zeros creates a tensor filled with zeros.
//
// This is the bias initialization used by every layer except the LSTM
// forget gate.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
