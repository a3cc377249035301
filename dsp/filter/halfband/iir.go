package halfband

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDesign indicates unusable design parameters.
var ErrInvalidDesign = errors.New("halfband: invalid design")

// IIRSpec selects a polyphase IIR design.
type IIRSpec struct {
	Coefficients int     // allpass sections across both branches
	Transition   float64 // normalized transition bandwidth in (0, 0.5)
}

// DesignIIR computes the allpass coefficients of a polyphase halfband
// lowpass. All returned coefficients lie in (0, 1).
func DesignIIR(spec IIRSpec) ([]float64, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	k, q := transitionParam(spec.Transition)
	order := spec.Coefficients*2 + 1

	coeffs := make([]float64, spec.Coefficients)
	for i := range coeffs {
		coeffs[i] = coefficient(i, k, q, order)
	}

	for i, c := range coeffs {
		if math.IsNaN(c) || c <= 0 || c >= 1 {
			return nil, fmt.Errorf("%w: coefficient[%d] = %g is not stable", ErrInvalidDesign, i, c)
		}
	}

	return coeffs, nil
}

// IIRAttenuation returns the stopband attenuation in dB of spec.
func IIRAttenuation(spec IIRSpec) (float64, error) {
	if err := spec.validate(); err != nil {
		return 0, err
	}

	_, q := transitionParam(spec.Transition)
	order := spec.Coefficients*2 + 1
	v := 4 * math.Exp(float64(order)*0.5*math.Log(q))

	return -10 * math.Log10(v/(1+v)), nil
}

func (s IIRSpec) validate() error {
	if s.Coefficients < 1 {
		return fmt.Errorf("%w: coefficient count must be >= 1: %d", ErrInvalidDesign, s.Coefficients)
	}

	if math.IsNaN(s.Transition) || s.Transition <= 0 || s.Transition >= 0.5 {
		return fmt.Errorf("%w: transition must be in (0, 0.5): %g", ErrInvalidDesign, s.Transition)
	}

	return nil
}

func transitionParam(transition float64) (k, q float64) {
	k = math.Pow(math.Tan((1-transition*2)*math.Pi*0.25), 2)
	kksqrt := math.Pow(1-k*k, 0.25)
	e := 0.5 * (1 - kksqrt) / (1 + kksqrt)
	e4 := e * e * e * e
	q = e * (1 + e4*(2+e4*(15+150*e4)))

	return k, q
}

func coefficient(index int, k, q float64, order int) float64 {
	c := index + 1
	num := thetaNum(q, order, c) * math.Pow(q, 0.25)
	den := thetaDen(q, order, c) + 0.5
	ww := (num * num) / (den * den)

	r := math.Sqrt((1-ww*k)*(1-ww/k)) / (1 + ww)

	return (1 - r) / (1 + r)
}

func thetaNum(q float64, order, c int) float64 {
	result := 0.0
	sign := 1.0

	for i := 0; ; i++ {
		term := math.Pow(q, float64(i*(i+1))) * math.Sin(float64(i*2+1)*float64(c)*math.Pi/float64(order)) * sign
		result += term
		sign = -sign

		if math.Abs(term) <= 1e-100 {
			break
		}
	}

	return result
}

func thetaDen(q float64, order, c int) float64 {
	result := 0.0
	sign := -1.0

	for i := 1; ; i++ {
		term := math.Pow(q, float64(i*i)) * math.Cos(2*float64(i)*float64(c)*math.Pi/float64(order)) * sign
		result += term
		sign = -sign

		if math.Abs(term) <= 1e-100 {
			break
		}
	}

	return result
}

// IIRDelay returns the low-frequency group delay, in high-rate samples, of
// the halfband filter built from coeffs.
//
// A first-order allpass (a + z^-1)/(1 + a z^-1) delays DC by (1-a)/(1+a)
// samples; each branch runs at half the high rate and the second branch
// carries one extra high-rate sample. Both branches are in phase in the
// passband, so the filter delay is their mean.
func IIRDelay(coeffs []float64) float64 {
	var even, odd float64

	for i, a := range coeffs {
		d := (1 - a) / (1 + a)
		if i%2 == 0 {
			even += d
		} else {
			odd += d
		}
	}

	return (2*even + 1 + 2*odd) / 2
}
