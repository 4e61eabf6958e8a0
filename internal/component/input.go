package component

import "github.com/strikezone/server/internal/core/ecs"

// Input is the per-tick snapshot of raw device state. It lives on a single
// entity written only by the input system; gameplay systems read it instead
// of touching device state directly.
type Input struct {
	Keys        map[string]bool
	MouseDX     float64 // accumulated since the previous tick
	MouseDY     float64
	PrimaryDown bool
	Secondary   bool
	Tick        uint64
}

var InputKey = ecs.NewKey[Input]("input")

// Key names as reported by browser KeyboardEvent.code.
const (
	KeyForward = "KeyW"
	KeyBack    = "KeyS"
	KeyLeft    = "KeyA"
	KeyRight   = "KeyD"
	KeyJump    = "Space"
	KeyReload  = "KeyR"
)

// Pressed reports whether the key is held.
func (in *Input) Pressed(code string) bool {
	return in.Keys[code]
}

// WeaponSlot returns the 0-based slot of a held Digit1..Digit9 key.
func (in *Input) WeaponSlot() (int, bool) {
	for i := 1; i <= 9; i++ {
		if in.Keys["Digit"+string(rune('0'+i))] {
			return i - 1, true
		}
	}
	return 0, false
}
