package httpserver

// Machine-readable codes carried in the "error" field of failed envelopes.
const (
	ErrInvalidJSON     = "invalid_json"
	ErrMissingInitData = "missing_init_data"
	ErrInvalidInitData = "invalid_init_data"
	ErrUpstream        = "upstream_error"
	ErrNotReady        = "not ready"
)
