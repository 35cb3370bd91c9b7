package formats

import "fmt"

// Load error codes.
const (
	CodeBadDimensions   = "BAD_DIMENSIONS"
	CodeUnknownSymbol   = "UNKNOWN_SYMBOL"
	CodeBadLegend       = "BAD_LEGEND"
	CodeMissingNext     = "MISSING_NEXT"
	CodeNoPlayer        = "NO_PLAYER"
	CodeMultiplePlayers = "MULTIPLE_PLAYERS"
	CodeBadMetadata     = "BAD_METADATA"
	CodeNoDams          = "NO_DAMS"
)

// LoadError reports why a level file was rejected.
// Line is 1-based, or 0 when the format has no line information.
type LoadError struct {
	Code    string
	Line    int
	Message string
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func loadErr(code string, line int, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}
