// Package physics evaluates the closed-form step response of a damped
// single-degree-of-freedom system:
//
//	u(t) = e^(-ζ·ωn·t)·(A·cos(ωn·t) + B·sin(ωd·t)) + up
//
// with up = p0/k, A = up and B = ωn·ζ·A/ωd.
//
//   - [Modal]: natural frequency, critical damping, damping ratio, damped frequency
//   - [Evaluate]: samples over [dynamo.DefaultWindow]
//   - [EvaluateWindow]: samples over a caller supplied window
//   - [TotalResponse]: parameters in, materialized [dynamo.Response] out
//   - [Oscillator]: the same curve as a function of time, with velocity and energy
//
// Only underdamped systems (ζ < 1) are accepted; anything else fails with
// [dynamo.ErrOverdamped] instead of producing NaN samples.
//
// # Example
//
//	resp, err := physics.TotalResponse(dynamo.SystemParameters{
//	    Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1,
//	})
//	if err != nil {
//	    return err
//	}
//	first := resp.Samples[0] // {T: 0, U: 2}
package physics
