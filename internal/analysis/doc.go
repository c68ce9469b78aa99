// Package analysis extracts and characterises signals from recorded runs.
//
//   - [Series]: one scalar per frame for a body (x, y, dx, dy, speed)
//   - [Spectrum], [DominantPeriod]: bounce rhythm via FFT
//   - [Separation], [LyapunovExponent]: sensitivity of two nearby runs
//   - [PathToASCII]: a body's trajectory drawn in arena orientation
//
// # Sensitivity
//
// Chains of disc collisions amplify tiny offsets. A positive exponent from
// two runs that differ by a sub-pixel nudge indicates chaotic motion:
//
//	lambda := analysis.LyapunovExponent(analysis.Separation(base, nudged))
package analysis
