package domain

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates an ExecCommand for the given program and arguments.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}

// GitCommitCommand builds a `git commit` invocation.
// If messageFile is non-empty it is passed with -F ahead of gitArgs, which are
// forwarded verbatim and may end in a "--" pathspec list.
func GitCommitCommand(gitArgs []string, messageFile, dir string) *ExecCommand {
	args := make([]string, 0, len(gitArgs)+3)
	args = append(args, "commit")
	if messageFile != "" {
		args = append(args, "-F", messageFile)
	}
	args = append(args, gitArgs...)
	return NewCommand("git", args, dir)
}
