package login_usecases

// Stable flow error codes. Clients branch on these to decide which screen
// to show next, so their values never change.
const (
	CodeInvalidCredentials     = "invalid_credentials"
	CodeUserNotFound           = "user_not_found"
	CodeFlowOrderViolation     = "flow_order_violation"
	CodeFaceNotDetected        = "face_not_detected"
	CodeFaceMismatch           = "face_mismatch"
	CodePositionMismatch       = "position_mismatch"
	CodeSecondaryFactorInvalid = "secondary_factor_invalid"
	CodeMalformedInput         = "malformed_input"
	CodeInternalFailure        = "internal_failure"
)

// FlowError is a login flow outcome the caller is expected to act on. It
// carries a stable machine-readable code alongside a human-readable
// message.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return e.Message
}

func newFlowError(code string, message string) *FlowError {
	return &FlowError{Code: code, Message: message}
}
