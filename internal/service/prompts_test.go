package service

import (
	"strings"
	"testing"

	"github.com/qaops/testcase-gateway/internal/models"
)

func TestPromptForGherkin(t *testing.T) {
	prompt := promptFor(models.ModeGherkin, "")

	if !strings.Contains(prompt, "Feature") {
		t.Error("gherkin prompt should request a Feature")
	}
	if !strings.Contains(prompt, "Given") {
		t.Error("gherkin prompt should mention Given-When-Then steps")
	}
	if strings.Contains(prompt, "Test Case ID") {
		t.Error("gherkin prompt must not contain the traditional marker")
	}
}

func TestPromptForTraditional(t *testing.T) {
	prompt := promptFor(models.ModeTraditional, "")

	if !strings.Contains(prompt, "Test Case ID") {
		t.Error("traditional prompt should contain the Test Case ID marker")
	}
	if strings.Contains(prompt, ".feature") {
		t.Error("traditional prompt must not request a feature file")
	}
}

func TestPromptForAdditionalInfo(t *testing.T) {
	for _, mode := range []models.Mode{models.ModeGherkin, models.ModeTraditional} {
		prompt := promptFor(mode, "X")
		if !strings.HasSuffix(prompt, "X") {
			t.Errorf("mode %s: prompt should end with the free text, got suffix %q", mode, prompt[len(prompt)-20:])
		}
		if !strings.Contains(prompt, "Additional information about the test requirements: X") {
			t.Errorf("mode %s: free text should follow the fixed suffix prefix", mode)
		}
	}
}

func TestPromptForNoSuffixWithoutInfo(t *testing.T) {
	prompt := promptFor(models.ModeGherkin, "")
	if strings.Contains(prompt, "Additional information") {
		t.Error("empty free text must not produce a suffix")
	}
}
