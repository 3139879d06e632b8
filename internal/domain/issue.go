package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Issue is a tracker issue as fetched for one commit.
type Issue struct {
	Subject     string
	Project     string
	Tracker     string
	Status      string
	Author      string
	AssignedTo  string
	Description string
	URL         string
	ID          int
}

// ParseIssueID parses the issue id given on the command line.
// Only positive decimal integers are accepted; an optional leading '#' is allowed.
func ParseIssueID(s string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if trimmed == "" {
		return 0, ErrMissingIssueID
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIssueID, s)
	}
	return id, nil
}

// IssueURL returns the browsable URL of an issue.
func IssueURL(baseURL string, id int) string {
	return fmt.Sprintf("%s/issues/%d", strings.TrimRight(baseURL, "/"), id)
}

// IssueXMLURL returns the API endpoint for an issue, without credentials.
func IssueXMLURL(baseURL string, id int) string {
	return IssueURL(baseURL, id) + ".xml"
}
