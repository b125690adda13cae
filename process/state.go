package process

// State is a step of ProcessTest.Run.
type State int

const (
	StateInit State = iota
	StateSpawning
	StateAwaitingReadiness
	StateRunningTests
	StateTerminating
	StateDone
	StateSetupFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateSpawning:
		return "Spawning"
	case StateAwaitingReadiness:
		return "AwaitingReadiness"
	case StateRunningTests:
		return "RunningTests"
	case StateTerminating:
		return "Terminating"
	case StateDone:
		return "Done"
	case StateSetupFailed:
		return "SetupFailed"
	default:
		return "Unknown"
	}
}
