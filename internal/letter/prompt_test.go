package letter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"letterforge/internal/model"
)

func fullForm() model.LetterForm {
	return model.LetterForm{
		AboutYou: model.AboutYou{
			FullName:           "Jane Doe",
			CitizenshipCountry: "Brazil",
			CurrentCountry:     "Canada",
		},
		Application: model.ApplicationContext{
			ApplicationType: "Study Permit",
			TargetCountry:   "Canada",
		},
		Explanation: model.Explanation{
			Main:       "I had a gap in my studies between 2021 and 2022 due to a family emergency.",
			Dates:      "March 2021 to January 2022",
			Background: "My father required full-time care after surgery.",
		},
		Tone:     ToneFormal,
		Template: TemplateConservative,
		Emphasis: "Continuous employment during the gap",
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	in := PromptInput{Form: fullForm(), LetterDate: "March 5, 2025"}

	first := BuildPrompt(in)
	second := BuildPrompt(in)
	require.Equal(t, first, second)
}

func TestBuildPrompt_ContainsFormAnswersVerbatim(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Form: fullForm(), LetterDate: "March 5, 2025"})

	require.Contains(t, prompt, "Jane Doe")
	require.Contains(t, prompt, "Brazil")
	require.Contains(t, prompt, "Study Permit")
	require.Contains(t, prompt, "I had a gap in my studies between 2021 and 2022 due to a family emergency.")
	require.Contains(t, prompt, "March 2021 to January 2022")
	require.Contains(t, prompt, "My father required full-time care after surgery.")
	require.Contains(t, prompt, "Continuous employment during the gap")
	require.Contains(t, prompt, "March 5, 2025")
	require.Contains(t, prompt, `"To Whom It May Concern:"`)
}

func TestBuildPrompt_OptionalBlocksOmitted(t *testing.T) {
	form := fullForm()
	form.Explanation.Dates = ""
	form.Explanation.Background = ""
	form.Emphasis = ""

	prompt := BuildPrompt(PromptInput{Form: form, LetterDate: "March 5, 2025"})

	require.NotContains(t, prompt, "Timeline/Relevant Dates")
	require.NotContains(t, prompt, "Background Context")
	require.NotContains(t, prompt, "Key Points to Emphasize")
}

func TestBuildPrompt_ToneChangesDirective(t *testing.T) {
	formal := fullForm()
	personal := fullForm()
	personal.Tone = TonePersonal

	formalPrompt := BuildPrompt(PromptInput{Form: formal, LetterDate: "March 5, 2025"})
	personalPrompt := BuildPrompt(PromptInput{Form: personal, LetterDate: "March 5, 2025"})

	require.NotEqual(t, formalPrompt, personalPrompt)
	require.Contains(t, formalPrompt, toneDirectives[ToneFormal])
	require.Contains(t, personalPrompt, toneDirectives[TonePersonal])
}

func TestBuildPrompt_TemplateChangesDirective(t *testing.T) {
	for _, tmpl := range Templates() {
		form := fullForm()
		form.Template = tmpl
		prompt := BuildPrompt(PromptInput{Form: form, LetterDate: "March 5, 2025"})
		require.Contains(t, prompt, templateDirectives[tmpl], "template %s", tmpl)
	}
}

func TestBuildPrompt_UnknownSelectorsFallBack(t *testing.T) {
	form := fullForm()
	form.Tone = "sarcastic"
	form.Template = "haiku"

	prompt := BuildPrompt(PromptInput{Form: form, LetterDate: "March 5, 2025"})

	require.Contains(t, prompt, toneDirectives[ToneNeutral])
	require.Contains(t, prompt, templateDirectives[TemplateModern])
}

func TestBuildPrompt_Order(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Form: fullForm(), LetterDate: "March 5, 2025"})

	applicant := strings.Index(prompt, "**Applicant Information:**")
	situation := strings.Index(prompt, "**Situation Requiring Explanation:**")
	guidelines := strings.Index(prompt, "**Writing Guidelines:**")
	requirements := strings.Index(prompt, "**Critical Requirements:**")

	require.True(t, applicant >= 0 && applicant < situation)
	require.True(t, situation < guidelines)
	require.True(t, guidelines < requirements)
}
