package coach

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed coach_prompt.md
var coachPrompt string

type promptData struct {
	UserProfile
	ResourceList string
}

// buildPrompt renders the profile into the coaching instruction. The output
// is deterministic: identical profiles always produce identical prompts, and
// every profile field appears in the rendered text.
func buildPrompt(profile UserProfile) (string, error) {
	tmpl, err := template.New("coach").Parse(coachPrompt)
	if err != nil {
		return "", err
	}

	data := promptData{
		UserProfile:  profile,
		ResourceList: strings.Join(profile.WorkoutResources, ", "),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
