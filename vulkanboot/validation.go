package vulkanboot

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// DiagnosticExtension is appended to the instance extensions when validation is active.
const DiagnosticExtension = "VK_EXT_debug_report"

// ValidationState is the outcome of checking the requested validation layers.
type ValidationState struct {
	Enabled  bool
	Possible bool
	Layers   []string
	Missing  []string
}

// Active reports whether layers and the diagnostic extension go on the instance.
func (v ValidationState) Active() bool {
	return v.Enabled && v.Possible
}

// InstanceLayers returns the layers to enable on instance and device creation.
func (v ValidationState) InstanceLayers() []string {
	if !v.Active() {
		return nil
	}
	return append([]string(nil), v.Layers...)
}

// InstanceExtensions returns required plus the diagnostic extension when active.
func (v ValidationState) InstanceExtensions(required []string) []string {
	out := append([]string(nil), required...)
	if v.Active() && !contains(out, DiagnosticExtension) {
		out = append(out, DiagnosticExtension)
	}
	return out
}

// CheckValidation decides whether the requested layers can be enabled.
// Possible is true only if every layer is reported, compared case-sensitively.
func CheckValidation(q CapabilityQuery, enabled bool, layers []string) (ValidationState, error) {
	state := ValidationState{
		Enabled: enabled,
		Layers:  append([]string(nil), layers...),
	}
	available, err := q.InstanceLayers()
	if err != nil {
		return state, errors.Wrap(err, "list instance layers")
	}
	state.Missing = missing(available, layers)
	state.Possible = len(state.Missing) == 0
	if state.Enabled && !state.Possible {
		return state, errors.Wrapf(ErrValidationUnavailable, "missing %v", state.Missing)
	}
	return state, nil
}

type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "verbose"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type Category int

const (
	CategoryGeneral Category = iota
	CategoryValidation
	CategoryPerformance
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryValidation:
		return "validation"
	case CategoryPerformance:
		return "performance"
	default:
		return "unknown"
	}
}

// DiagnosticSink receives validation messages. It must never abort the caller.
type DiagnosticSink func(severity Severity, category Category, message string)

// LogSink writes diagnostics to a logger.
func LogSink(logger log.FieldLogger) DiagnosticSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func(severity Severity, category Category, message string) {
		entry := logger.WithField("category", category.String())
		switch severity {
		case SeverityError:
			entry.Error(message)
		case SeverityWarning:
			entry.Warn(message)
		default:
			entry.Debug(message)
		}
	}
}
