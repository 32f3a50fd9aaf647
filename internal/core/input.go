package core

// Action represents a semantic viewer action, abstracted from physical key
// presses so the controller can be tested without a terminal.
type Action int

const (
	ActionNone       Action = iota
	ActionStart             // Enter - start the run (Idle only)
	ActionPause             // Space, P - pause/resume ticking
	ActionRestart           // R - new population, back to Idle
	ActionNextParam         // Tab, Down - select next parameter
	ActionPrevParam         // Shift+Tab, Up - select previous parameter
	ActionIncrease          // Right, + - raise selected parameter
	ActionDecrease          // Left, - - lower selected parameter
	ActionPace              // F - cycle viewer speed
	ActionScreenshot        // Ctrl+S - save the screen to a file
	ActionBack              // B, Escape - back to the menu
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionNextParam:
		return "NextParam"
	case ActionPrevParam:
		return "PrevParam"
	case ActionIncrease:
		return "Increase"
	case ActionDecrease:
		return "Decrease"
	case ActionPace:
		return "Pace"
	case ActionScreenshot:
		return "Screenshot"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
