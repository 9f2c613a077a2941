package problem

// Default values used when a page element is missing or unparsable.
const (
	DefaultName  = "Unknown Problem"
	DefaultLimit = "Unknown"
)

// DateFormat is the layout of Record.CreatedDate.
const DateFormat = "2006-01-02 15:04:05"

// TestCase is one sample input/output pair taken from a problem page.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Record holds everything extracted about a single problem. It is built once
// per request and discarded after the workspace has been written.
type Record struct {
	ProblemID   string     `json:"problem_id"`
	ProblemName string     `json:"problem_name"`
	URL         string     `json:"url"`
	TimeLimit   string     `json:"time_limit"`
	MemoryLimit string     `json:"memory_limit"`
	TestCases   []TestCase `json:"test_cases"`
	CreatedDate string     `json:"created_date"`
	Language    string     `json:"language"`
}

// Field is the result of looking up one optional page element.
type Field struct {
	Value string
	Found bool
}

// Or returns the field value, or def if the element was not found.
func (f Field) Or(def string) string {
	if !f.Found {
		return def
	}
	return f.Value
}
