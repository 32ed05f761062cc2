package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"
)

// Array is a decoded .npy payload widened to float64.
type Array struct {
	Shape []int
	Data  []float64
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.Shape) }

// ReadNPY decodes one NumPy array from r.
func ReadNPY(r io.Reader) (*Array, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}
	descr := nr.Header.Descr
	if descr.Fortran {
		return nil, fmt.Errorf("%w: fortran-ordered arrays are not supported", ErrUnsupportedDType)
	}

	data, err := readWidened(nr, descr.Type)
	if err != nil {
		return nil, err
	}

	shape := append([]int(nil), descr.Shape...)
	want := 1
	for _, d := range shape {
		want *= d
	}
	if want != len(data) {
		return nil, fmt.Errorf("%w: header shape %v does not match %d elements", ErrShape, shape, len(data))
	}
	return &Array{Shape: shape, Data: data}, nil
}

// LoadNPY opens and decodes a .npy file.
func LoadNPY(path string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := ReadNPY(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func readWidened(nr *npyio.Reader, dtype string) ([]float64, error) {
	switch dtype {
	case "<f8":
		var v []float64
		err := nr.Read(&v)
		return v, err
	case "<f4":
		var v []float32
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		return widen(v), nil
	case "<i8":
		var v []int64
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		return widen(v), nil
	case "<i4":
		var v []int32
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		return widen(v), nil
	case "<i2":
		var v []int16
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		return widen(v), nil
	case "|i1":
		var v []int8
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		return widen(v), nil
	case "|u1":
		var v []uint8
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		return widen(v), nil
	case "|b1":
		var v []bool
		if err := nr.Read(&v); err != nil {
			return nil, err
		}
		out := make([]float64, len(v))
		for i, b := range v {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDType, dtype)
}

type number interface {
	~float32 | ~int64 | ~int32 | ~int16 | ~int8 | ~uint8
}

func widen[T number](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
