package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"study-backend/internal/codec"
	"study-backend/internal/core/study"
)

// documentCheck validates one local document file. optional marks documents
// whose absence is fine (the practice history).
type documentCheck struct {
	name     string
	optional bool
	validate func(root interface{}) error
}

var documentChecks = []documentCheck{
	{name: study.DocKnowledgeBase, validate: func(root interface{}) error {
		_, err := study.ValidateKnowledgeBase(root)
		return err
	}},
	{name: study.DocPrompts, validate: func(root interface{}) error {
		_, err := study.ValidatePromptCollection(root)
		return err
	}},
	{name: study.DocPracticeHistory, optional: true, validate: func(root interface{}) error {
		_, err := study.ValidatePracticeHistory(root)
		return err
	}},
	{name: study.DocDialoguePhrases, validate: func(root interface{}) error {
		_, err := study.ValidateDialoguePhrases(root)
		return err
	}},
}

// runValidate checks every study document under dir and prints a per-file
// report. It returns false when any document is invalid.
func runValidate(dir string, out io.Writer) (bool, error) {
	allValid := true
	for _, check := range documentChecks {
		valid, notes := validateDocument(dir, check)
		if !valid {
			allValid = false
		}
		status := "VALID"
		if !valid {
			status = "INVALID"
		}
		fmt.Fprintf(out, "%-7s %s\n", status, check.name)
		for _, note := range notes {
			fmt.Fprintf(out, "        - %s\n", note)
		}
	}
	if allValid {
		fmt.Fprintln(out, "all documents are valid")
	} else {
		fmt.Fprintln(out, "some documents contain errors")
	}
	return allValid, nil
}

func validateDocument(dir string, check documentCheck) (bool, []string) {
	path := filepath.Join(dir, check.name)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if check.optional {
			return true, []string{"optional document absent, treated as empty"}
		}
		return false, []string{"file not found"}
	}
	if err != nil {
		return false, []string{err.Error()}
	}

	root, err := codec.Parse(data)
	if err != nil {
		return false, []string{err.Error()}
	}

	if err := check.validate(root); err != nil {
		if vs, ok := study.AsViolations(err); ok {
			notes := make([]string, len(vs))
			for i, v := range vs {
				notes[i] = v.Error()
			}
			return false, notes
		}
		return false, []string{err.Error()}
	}
	return true, nil
}
