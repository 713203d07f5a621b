package safety

// Severity grades a warning. Values are ordered: Info < Warning < Critical < Emergency.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
	Emergency
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	case Emergency:
		return "emergency"
	default:
		return "unknown"
	}
}
