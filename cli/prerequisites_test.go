package cli

import (
	"strings"
	"testing"
)

func TestDefaultPrerequisites(t *testing.T) {
	prereqs := DefaultPrerequisites()

	if len(prereqs) == 0 {
		t.Error("DefaultPrerequisites should return at least one prerequisite")
	}

	foundGit := false
	for _, prereq := range prereqs {
		if prereq.Name == "git" {
			foundGit = true
			if !prereq.Required {
				t.Error("git should be required")
			}
		}
		if prereq.Name == "gh" && prereq.Required {
			t.Error("gh should be optional, not required")
		}
	}
	if !foundGit {
		t.Error("git prerequisite missing")
	}
}

func TestCheck_ExistingCommand(t *testing.T) {
	prereq := Prerequisite{
		Name:        "echo",
		Required:    true,
		Description: "Echo command",
	}

	result := Check(prereq)
	if !result.Found {
		t.Skip("echo command not found in PATH, skipping test")
	}

	if result.Path == "" {
		t.Error("Check should return path for found command")
	}
	if result.Error != nil {
		t.Errorf("Check should not return error for found command: %v", result.Error)
	}
}

func TestCheck_NonExistingCommand(t *testing.T) {
	prereq := Prerequisite{
		Name:        "definitely-not-a-real-command-12345",
		Required:    true,
		Description: "Fake command",
		InstallURL:  "http://example.com",
	}

	result := Check(prereq)
	if result.Found {
		t.Error("Check should return Found=false for non-existing command")
	}
	if result.Path != "" {
		t.Error("Check should return empty path for non-existing command")
	}
	if result.Error == nil {
		t.Error("Check should return error for non-existing command")
	}
}

func TestValidateRequired_Missing(t *testing.T) {
	prereqs := []Prerequisite{
		{Name: "definitely-not-a-real-command-12345", Required: true, Description: "Fake", InstallURL: "http://example.com"},
	}

	err := ValidateRequired(prereqs)
	if err == nil {
		t.Fatal("ValidateRequired should fail when a required tool is missing")
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-command-12345") {
		t.Errorf("error should name the missing tool: %v", err)
	}
}

func TestValidateRequired_OptionalMissingOK(t *testing.T) {
	prereqs := []Prerequisite{
		{Name: "definitely-not-a-real-command-12345", Required: false, Description: "Fake"},
	}

	if err := ValidateRequired(prereqs); err != nil {
		t.Errorf("missing optional tool should not fail validation: %v", err)
	}
}

func TestFormatCheckResults(t *testing.T) {
	results := []CheckResult{
		{Prerequisite: Prerequisite{Name: "git", Required: true}, Found: true, Version: "git version 2.43.0"},
		{Prerequisite: Prerequisite{Name: "gh", Required: false}, Found: false},
	}

	out := FormatCheckResults(results)
	if !strings.Contains(out, "git") || !strings.Contains(out, "2.43.0") {
		t.Errorf("output missing git info: %q", out)
	}
	if !strings.Contains(out, "[optional]") {
		t.Errorf("output should mark gh optional: %q", out)
	}
}
