package problem

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnresolvable is returned when free-text input names no problem.
var ErrUnresolvable = errors.New("cannot resolve problem id")

// URL shapes tried in order; the first match wins.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/problemset/problem/(\d+)/([A-Z])`),
	regexp.MustCompile(`/contest/(\d+)/problem/([A-Z])`),
	regexp.MustCompile(`/gym/(\d+)/problem/([A-Z])`),
}

var (
	hostPattern = regexp.MustCompile(`codeforces\.com/(problemset/problem/\d+/[A-Z]|contest/\d+/problem/[A-Z]|gym/\d+/problem/[A-Z])`)
	idPattern   = regexp.MustCompile(`^(\d+)([A-Z])$`)
)

// ResolveURL derives "{contestId}{letter}" from a problemset, contest or gym
// problem URL.
func ResolveURL(url string) (string, bool) {
	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1] + m[2], true
		}
	}
	return "", false
}

// Resolve returns the id for url, falling back to name with spaces replaced
// by underscores. The result is never empty.
func Resolve(url, name string) string {
	if id, ok := ResolveURL(url); ok {
		return id
	}
	if name == "" {
		name = DefaultName
	}
	return strings.ReplaceAll(name, " ", "_")
}

// IsProblemURL reports whether url points at a Codeforces problem page.
func IsProblemURL(url string) bool {
	return hostPattern.MatchString(url)
}

// ParseInput accepts a bare id ("1850A"), a problem URL, or
// "{contestId}/{letter}" and returns the canonical id.
func ParseInput(input string) (string, error) {
	input = strings.TrimSpace(input)

	if idPattern.MatchString(input) {
		return input, nil
	}

	if strings.HasPrefix(input, "http") {
		if id, ok := ResolveURL(input); ok {
			return id, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnresolvable, input)
	}

	if strings.Contains(input, "/") {
		parts := strings.Split(input, "/")
		if len(parts) == 2 && idPattern.MatchString(parts[0]+parts[1]) {
			return parts[0] + parts[1], nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnresolvable, input)
}

// SplitID splits a canonical id into its contest id and problem letter.
func SplitID(id string) (contest, letter string, err error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnresolvable, id)
	}
	return m[1], m[2], nil
}
