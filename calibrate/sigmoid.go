package calibrate

import "math"

// Sigmoid maps a raw decision value to a probability: 1/(1+exp(A*score+B)).
// A is negative for any sensibly separated training set, so probability grows
// with the decision value.
type Sigmoid struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Evaluate returns the calibrated probability for a decision value.
func (s Sigmoid) Evaluate(score float64) float64 {
	fApB := s.A*score + s.B
	if fApB >= 0 {
		return math.Exp(-fApB) / (1 + math.Exp(-fApB))
	}
	return 1 / (1 + math.Exp(fApB))
}

// fitSigmoid fits Platt scaling parameters to decision values and 0/1
// outcomes with Newton iterations and backtracking line search. Targets use
// the Bayesian priors (N+ +1)/(N+ +2) and 1/(N- +2) instead of hard 0/1, so
// the fit stays finite on separable data.
func fitSigmoid(scores []float64, y []int) Sigmoid {
	var prior0, prior1 float64
	for _, v := range y {
		if v == 1 {
			prior1++
		} else {
			prior0++
		}
	}
	hiTarget := (prior1 + 1) / (prior1 + 2)
	loTarget := 1 / (prior0 + 2)

	targets := make([]float64, len(y))
	for i, v := range y {
		if v == 1 {
			targets[i] = hiTarget
		} else {
			targets[i] = loTarget
		}
	}

	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12
		eps     = 1e-5
	)

	objective := func(a, b float64) float64 {
		var f float64
		for i, s := range scores {
			fApB := a*s + b
			if fApB >= 0 {
				f += targets[i]*fApB + math.Log1p(math.Exp(-fApB))
			} else {
				f += (targets[i]-1)*fApB + math.Log1p(math.Exp(fApB))
			}
		}
		return f
	}

	a, b := 0.0, math.Log((prior0+1)/(prior1+1))
	fval := objective(a, b)

	for it := 0; it < maxIter; it++ {
		h11, h22 := sigma, sigma
		var h21, g1, g2 float64
		for i, s := range scores {
			fApB := a*s + b
			var p, q float64
			if fApB >= 0 {
				p = math.Exp(-fApB) / (1 + math.Exp(-fApB))
				q = 1 / (1 + math.Exp(-fApB))
			} else {
				p = 1 / (1 + math.Exp(fApB))
				q = math.Exp(fApB) / (1 + math.Exp(fApB))
			}
			d2 := p * q
			h11 += s * s * d2
			h22 += d2
			h21 += s * d2
			d1 := targets[i] - p
			g1 += s * d1
			g2 += d1
		}
		if math.Abs(g1) < eps && math.Abs(g2) < eps {
			break
		}

		det := h11*h22 - h21*h21
		dA := -(h22*g1 - h21*g2) / det
		dB := -(-h21*g1 + h11*g2) / det
		gd := g1*dA + g2*dB

		stepsize := 1.0
		for stepsize >= minStep {
			newA := a + stepsize*dA
			newB := b + stepsize*dB
			newf := objective(newA, newB)
			if newf < fval+1e-4*stepsize*gd {
				a, b, fval = newA, newB, newf
				break
			}
			stepsize /= 2
		}
		if stepsize < minStep {
			break
		}
	}

	return Sigmoid{A: a, B: b}
}
