package ast

// InternalError reports a broken internal contract, such as building a
// Dash from text that is not a dash run. It is raised with panic and is
// never the result of bad input text.
type InternalError struct {
	Msg string
}

func (e InternalError) Error() string {
	return "internal error: " + e.Msg
}
