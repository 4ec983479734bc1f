// Package dynamo provides the core value types for step response evaluation
// of a single-degree-of-freedom damped system.
//
// The package defines the data flowing between the calculator, the metrics
// and the plotting layers:
//
//   - [SystemParameters]: mass, damping, stiffness and constant load
//   - [ModalProperties]: natural/damped frequency, critical damping, damping ratio
//   - [Window]: the sampled time range
//   - [Sample]: one (time, displacement) pair
//   - [Response]: a materialized evaluation with its coefficients
//
// # Example
//
//	params := dynamo.SystemParameters{Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1}
//	resp, err := physics.TotalResponse(params)
//	if errors.Is(err, dynamo.ErrOverdamped) {
//	    // closed form does not apply
//	}
//
// All types are plain values. A [Response] is never mutated after it has
// been produced, so it may be shared freely.
package dynamo
