package model

// ExecResult contains the result of a command executed through a host
// provider. All fields are always populated (empty string / zero when not
// applicable).
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
