// Package analysis inspects the per-frame metric series of a run.
//
//   - [PowerSpectrum]: magnitude spectrum of a mean-removed series
//   - [Dominant]: strongest oscillation frequency, e.g. of the sag after a cloth is released
//   - [SettleFrame]: frame from which a series stays near its final value
package analysis
