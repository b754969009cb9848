package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionTiltLeft         // Left, A, H - tilt the device left
	ActionTiltRight        // Right, D, L - tilt the device right
	ActionRestart          // R, Enter - restart after game over
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTiltLeft:
		return "TiltLeft"
	case ActionTiltRight:
		return "TiltRight"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tilt returns the sensor tilt value the action stands for.
// A positive tilt moves the player left, matching the accelerometer's x axis.
func (a Action) Tilt() float64 {
	switch a {
	case ActionTiltLeft:
		return 1
	case ActionTiltRight:
		return -1
	default:
		return 0
	}
}
