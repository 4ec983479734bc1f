// Package analysis provides post-processing for sampled step responses.
//
//   - [PowerSpectrum]: magnitude spectrum of a sampled signal
//   - [DominantFrequency]: strongest oscillation frequency in rad/s
//   - [ExactTrajectory]: exact damped-spring motion on the same grid
//   - [Compare]: pointwise deviation between two trajectories
//
// # Cross-checking
//
// The closed-form curve can be compared against the exact motion:
//
//	exact, _ := analysis.ExactTrajectory(params, modal, resp.Window)
//	dev := analysis.Compare(resp.Samples, exact)
//	if dev.Max > tol {
//	    // literal curve departs from the physical one
//	}
package analysis
