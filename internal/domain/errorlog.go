package domain

type Severity = string

const (
	SeverityInfo     Severity = "info"
	SeverityWarn     Severity = "warn"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// ErrorLogEntry is the structured failure record. Append-only; the
// pipeline never reads these back.
type ErrorLogEntry struct {
	Message      string `json:"errorMessage"`
	Stack        string `json:"errorStack,omitempty"`
	Kind         string `json:"errorType,omitempty"` // taxonomy classification
	FunctionName string `json:"functionName,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	UserAction   string `json:"userAction,omitempty"`
	RequestData  string `json:"requestData,omitempty"` // serialized, redacted snapshot
	Severity     string `json:"severity,omitempty"`
	Environment  string `json:"-"`
	ClientIP     string `json:"-"`
	UserAgent    string `json:"-"`
}
