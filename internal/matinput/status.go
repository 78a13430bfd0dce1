package matinput

// Status is the connection state shown on the mat indicator.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusListening
	StatusActive
	StatusFailed
	StatusListenFailed
	StatusUnavailable // no backend configured
)

// String returns the indicator text for the status.
func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "Mat Control: Disconnected"
	case StatusConnecting:
		return "Connecting..."
	case StatusConnected:
		return "Mat Control: Connected"
	case StatusListening:
		return "Mat Control: Listening"
	case StatusActive:
		return "Mat Control: Active"
	case StatusFailed:
		return "Mat Control: Connection Failed"
	case StatusListenFailed:
		return "Mat Control: Listen Failed"
	case StatusUnavailable:
		return "Mat Control: Off"
	default:
		return "Mat Control: Unknown"
	}
}

// Healthy reports whether the indicator should show as green.
func (s Status) Healthy() bool {
	switch s {
	case StatusConnected, StatusListening, StatusActive:
		return true
	default:
		return false
	}
}
