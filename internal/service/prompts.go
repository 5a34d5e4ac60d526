package service

import "github.com/qaops/testcase-gateway/internal/models"

const (
	gherkinPromptTemplate = `You are a test automation specialist. Create Gherkin feature file test cases based on the images provided.
The test cases should follow the Given-When-Then format and be comprehensive.

Requirements:
- Create a Feature description
- Generate at least 3-5 Scenarios
- Each Scenario should have clear Given, When, Then steps
- Use appropriate tags where necessary
- Include parameters and examples where appropriate
- Format the output as a valid .feature file`

	traditionalPromptTemplate = `You are a test automation specialist. Create traditional test cases in a tabular format based on the images provided.

Requirements:
- Present test cases in a structured format with these sections for each test case:
  - Test Case ID (e.g., TC001)
  - Description: Brief description of what the test case verifies
  - Preconditions: What must be true before executing the test
  - Steps: Numbered list of actions to perform
  - Expected Results: What should happen when steps are executed
  - Priority: High, Medium, or Low importance
- Generate at least 5-7 comprehensive test cases
- Include test cases for different scenarios including edge cases
- Assign appropriate priority to each test case`

	additionalInfoPrefix = "\n\nAdditional information about the test requirements: "
)

// promptFor is a pure function of (mode, free text). The free text is
// appended verbatim, unsanitized and unbounded.
func promptFor(mode models.Mode, additionalInfo string) string {
	prompt := traditionalPromptTemplate
	if mode == models.ModeGherkin {
		prompt = gherkinPromptTemplate
	}
	if additionalInfo != "" {
		prompt += additionalInfoPrefix + additionalInfo
	}
	return prompt
}
