// SPDX-License-Identifier: EPL-2.0

package sfx

// State of an Asset as reported by Asset.State.
type State int

const (
	StateUnloaded State = iota
	StateIdle
	StatePlaying
	StateFadingIn
	StateFadingOut
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateFadingIn:
		return "fading-in"
	case StateFadingOut:
		return "fading-out"
	}
	return "unknown"
}
