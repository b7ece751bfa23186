// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files with github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 and 32 bits are scaled to [-1,1]. Input that is not
// an io.ReadSeeker is buffered in memory first.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another decoder
//	}
package aiff
