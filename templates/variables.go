package templates

import (
	"time"

	"github.com/pevans/cfprep/problem"
)

// SolutionVariables returns the placeholders available to solution
// templates.
func SolutionVariables(rec *problem.Record) Variables {
	return Variables{
		"problem_name": orDefault(rec.ProblemName, problem.DefaultName),
		"problem_id":   orDefault(rec.ProblemID, "Unknown"),
		"problem_url":  rec.URL,
		"date":         orDefault(rec.CreatedDate, time.Now().Format("2006-01-02")),
	}
}

// MetadataVariables returns the solution variables plus the test case count
// and the limits. Individual test files are not included.
func MetadataVariables(rec *problem.Record) Variables {
	vars := SolutionVariables(rec)
	vars["test_case_count"] = len(rec.TestCases)
	vars["time_limit"] = orDefault(rec.TimeLimit, problem.DefaultLimit)
	vars["memory_limit"] = orDefault(rec.MemoryLimit, problem.DefaultLimit)
	return vars
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
