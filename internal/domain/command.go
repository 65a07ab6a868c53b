package domain

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
// Fields are ordered to minimize memory padding.
type ExecCommand struct {
	Program string
	Dir     string
	Input   string   // Written to the command's stdin when non-empty
	Args    []string
	Env     []string // Extra KEY=VALUE pairs appended to the inherited environment
}

// NewCommand creates an ExecCommand for program with args, run in dir.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}
