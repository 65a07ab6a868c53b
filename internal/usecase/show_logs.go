package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cahaseler/cc-track/internal/domain"
)

// ShowLogsInput contains the parameters for showing pipeline logs.
type ShowLogsInput struct {
	RunID string // Only lines of this run (empty = all)
	Lines int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing pipeline logs.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the pipeline log.
type ShowLogs struct {
	stateDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(stateDir string) *ShowLogs {
	return &ShowLogs{stateDir: stateDir}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.GlobalLogPath(uc.stateDir)

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ShowLogsOutput{LogPath: logPath}, nil
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	if in.RunID != "" {
		tag := "[run-" + in.RunID + "]"
		kept := lines[:0]
		for _, line := range lines {
			if strings.Contains(line, tag) {
				kept = append(kept, line)
			}
		}
		lines = kept
	}
	if in.Lines > 0 && len(lines) > in.Lines {
		lines = lines[len(lines)-in.Lines:]
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
