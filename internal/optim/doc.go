// Package optim sweeps system parameters over a grid and ranks the
// resulting responses by a metric.
package optim
