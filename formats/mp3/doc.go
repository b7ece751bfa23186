// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every Source returned here
// reports two channels regardless of the file layout:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// A truncated final frame is reported as io.EOF.
package mp3
