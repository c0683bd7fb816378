// Package modwt implements the Maximal Overlap Discrete Wavelet Transform
// (MODWT): a shift-invariant, non-decimated wavelet transform whose outputs
// stay the length of the input signal at every decomposition level.
//
// Unlike the classical decimated DWT, MODWT never downsamples. That makes
// it well suited to streaming analysis, since any window of the input,
// regardless of its alignment, decomposes consistently — circularly
// shifting the input circularly shifts the coefficients by the same
// amount (see Forward's shift-invariance property).
//
// # Single-level transform
//
// Forward and Inverse operate on one signal at one scale. Package
// multilevel builds a pyramidal decomposition on top of them, and package
// denoise applies wavelet-shrinkage denoising to a sliding window of a
// live sample stream with bounded memory.
//
// # Boundary handling
//
// Every convolution implicitly reads past the edges of the input; package
// boundary resolves those out-of-range taps under one of two policies,
// PERIODIC (wrap around) or ZERO_PADDING (treat as zero). Inverse only
// guarantees perfect reconstruction under PERIODIC.
//
// This module requires no cgo dependencies.
package modwt
