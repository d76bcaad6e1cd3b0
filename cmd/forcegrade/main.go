package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Drawing graded at or above the threshold
	ExitGradeFailed = 1 // Drawing graded below the threshold
	ExitError       = 2 // Configuration or runtime error
)

// GradeFailureError indicates that grading ran successfully, but the
// drawing scored below the pass threshold.
type GradeFailureError struct {
	Message string
}

func (e *GradeFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var gradeFailureErr *GradeFailureError
		if errors.As(err, &gradeFailureErr) {
			os.Exit(ExitGradeFailed)
		}

		os.Exit(ExitError)
	}
}
