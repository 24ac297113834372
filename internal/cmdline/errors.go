package cmdline

// InformationRequested is returned when the user asked for help or the
// version string. It is not a failure: the caller prints Text to stdout and
// exits zero.
type InformationRequested struct {
	Text string
}

func (e *InformationRequested) Error() string {
	return "user information requested"
}

// ParseError reports an invalid argument list. The caller prints the message
// to stderr and exits nonzero.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
