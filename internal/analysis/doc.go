// Package analysis characterizes a total-energy series taken from
// consecutive dumps.
//
//   - [Spectrum]: power spectrum of the fluctuations about the mean
//   - [Dominant]: strongest non-zero frequency of a spectrum
//   - [BlockAverage]: mean with a block-averaged standard error
//
// Series are assumed evenly spaced; the spacing is the dump interval in
// timesteps, see [Spacing].
package analysis
