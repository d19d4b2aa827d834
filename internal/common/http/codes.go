package http

const (
	CodeUnknown         = "UNKNOWN"
	CodeInvalidJSON     = "INVALID_JSON"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
)
