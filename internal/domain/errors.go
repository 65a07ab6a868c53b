package domain

import "errors"

// Domain errors.
var (
	ErrNotGitRepository = errors.New("not a git repository (or any of the parent directories)")
	ErrNothingToCommit  = errors.New("nothing to commit")
	ErrNoCommits        = errors.New("repository has no commits")
	ErrOracleFailed     = errors.New("oracle call failed")
	ErrEmptyResponse    = errors.New("oracle returned an empty response")
	ErrNoJSONObject     = errors.New("no JSON object found in response")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigExists     = errors.New("config file already exists")
	ErrHookInput        = errors.New("invalid hook input")
	ErrNoStatus         = errors.New("no status recorded")
)
