// SPDX-License-Identifier: EPL-2.0

// Package sfx plays sound effects from memory with a pool of voices per sound.
//
// # Assets
//
// An Asset is one decoded sound plus numVoices players on an output.Device:
//
//	laser, err := sfx.Load("laser.wav", 4, 0.8, sfx.WithDevice(dev))
//	if errors.Is(err, sfx.ErrResourceLoad) {
//	    // missing file or unsupported format
//	}
//
//	laser.Play()           // next voice, once
//	laser.Loop()           // next voice, until Stop
//	laser.FadeIn(1000, 0.05)
//	laser.FadeOut(1000, 0.05)
//	laser.Stop()           // every voice
//	laser.Unload()
//
// # States
//
//	Unloaded <- Unload -- Idle <-> Playing
//	                        |         |
//	                    FadingIn  FadingOut
//
// State is derived on each call: a running fade wins over Playing, and
// Playing means at least one voice has not reached the end of the clip.
// After Unload every transport call returns ErrInvalidState.
//
// # Fades
//
// A fade changes the volume by increment once every increment*ms
// milliseconds, so about 1/increment steps cover ms. FadeIn always starts a
// new looping voice at volume 0. FadeOut works on the voice started last.
// Only one fade runs per asset; a new one replaces it.
//
// # Banks
//
// Bank keeps assets by id, downloads http(s) sources into a cache
// directory and can be synced with a list of Sound entries through Apply.
package sfx
