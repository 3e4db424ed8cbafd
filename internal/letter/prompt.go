package letter

import (
	"fmt"
	"strings"

	"letterforge/internal/model"
)

// SystemPrompt frames every generation call regardless of provider.
const SystemPrompt = "You are an expert immigration document writer. Generate professional, factual letters of explanation."

const (
	ToneFormal   = "formal"
	ToneNeutral  = "neutral"
	TonePersonal = "personal"
)

const (
	TemplateConservative = "conservative"
	TemplateModern       = "modern"
	TemplateProfessional = "professional"
)

var toneDirectives = map[string]string{
	ToneFormal:   "Use formal, professional language throughout.",
	ToneNeutral:  "Use clear, balanced language that is professional but not overly formal.",
	TonePersonal: "Use warm, personal language while maintaining professionalism.",
}

var templateDirectives = map[string]string{
	TemplateConservative: "Follow a traditional block-paragraph layout: at most five substantial paragraphs, measured pacing, no headings inside the body.",
	TemplateModern:       "Use shorter paragraphs with clear topic sentences so the letter scans easily; six to eight paragraphs are acceptable.",
	TemplateProfessional: "Write dense, businesslike paragraphs with precise vocabulary, as in formal corporate correspondence.",
}

// Tones and Templates list the accepted selector values.
func Tones() []string     { return []string{ToneFormal, ToneNeutral, TonePersonal} }
func Templates() []string { return []string{TemplateConservative, TemplateModern, TemplateProfessional} }

// PromptInput carries everything BuildPrompt needs. The letter date is an
// input rather than read from the clock so the function stays deterministic
// for identical inputs.
type PromptInput struct {
	Form       model.LetterForm
	LetterDate string
}

// BuildPrompt turns validated form answers and style selectors into the full
// instruction string for a generation call. Pure string construction: no
// side effects, no conditionals beyond the selector lookups.
func BuildPrompt(in PromptInput) string {
	form := in.Form

	toneDirective, ok := toneDirectives[form.Tone]
	if !ok {
		toneDirective = toneDirectives[ToneNeutral]
	}
	templateDirective, ok := templateDirectives[form.Template]
	if !ok {
		templateDirective = templateDirectives[TemplateModern]
	}

	var b strings.Builder
	b.WriteString("You are an expert immigration document writer with 15+ years of experience drafting Letters of Explanation for USCIS, IRCC, and other immigration authorities. Your letters are known for being clear, professional, and persuasive while maintaining complete honesty.\n\n")

	b.WriteString("**Applicant Information:**\n")
	fmt.Fprintf(&b, "- Full Name: %s\n", form.AboutYou.FullName)
	fmt.Fprintf(&b, "- Country of Citizenship: %s\n", form.AboutYou.CitizenshipCountry)
	fmt.Fprintf(&b, "- Current Country of Residence: %s\n", form.AboutYou.CurrentCountry)
	fmt.Fprintf(&b, "- Application Type: %s\n", form.Application.ApplicationType)
	fmt.Fprintf(&b, "- Target Country: %s\n\n", form.Application.TargetCountry)

	b.WriteString("**Situation Requiring Explanation:**\n")
	b.WriteString(form.Explanation.Main)
	b.WriteString("\n\n")

	if form.Explanation.Dates != "" {
		fmt.Fprintf(&b, "**Timeline/Relevant Dates:**\n%s\n\n", form.Explanation.Dates)
	}
	if form.Explanation.Background != "" {
		fmt.Fprintf(&b, "**Background Context:**\n%s\n\n", form.Explanation.Background)
	}
	if form.Emphasis != "" {
		fmt.Fprintf(&b, "**Key Points to Emphasize:**\n%s\n\n", form.Emphasis)
	}

	b.WriteString("**Writing Guidelines:**\n")
	b.WriteString(toneDirective)
	b.WriteString("\n")
	b.WriteString(templateDirective)
	b.WriteString("\n\n")

	b.WriteString("**Critical Requirements:**\n")
	b.WriteString("1. Format as a professional business letter:\n")
	fmt.Fprintf(&b, "   - Date: %s\n", in.LetterDate)
	b.WriteString("   - Salutation: \"To Whom It May Concern:\"\n")
	b.WriteString("   - Body with clear paragraph structure\n")
	fmt.Fprintf(&b, "   - Closing: \"Sincerely,\" followed by %s\n\n", form.AboutYou.FullName)

	b.WriteString("2. Content Structure (500-800 words):\n")
	b.WriteString("   - Introduction (2-3 sentences): state who you are, your citizenship, and the purpose of this letter\n")
	b.WriteString("   - Background (1-2 paragraphs): relevant context about the situation, timeline, and circumstances\n")
	b.WriteString("   - Detailed Explanation (2-3 paragraphs): thoroughly explain the situation, addressing potential concerns proactively and honestly\n")
	b.WriteString("   - Supporting Details: specific dates, facts, and concrete details that support the explanation\n")
	b.WriteString("   - Conclusion (1 paragraph): reaffirm commitment, express appreciation\n\n")

	b.WriteString("3. What to AVOID:\n")
	b.WriteString("   - Do NOT make legal claims or guarantees about immigration outcomes\n")
	b.WriteString("   - Do NOT provide legal advice or interpretations of law\n")
	b.WriteString("   - Do NOT use overly emotional language\n")
	b.WriteString("   - Do NOT make promises about future behavior that cannot be guaranteed\n")
	b.WriteString("   - Do NOT include irrelevant personal details\n\n")

	b.WriteString("4. What to INCLUDE:\n")
	b.WriteString("   - Specific dates and timelines\n")
	b.WriteString("   - Concrete facts and verifiable information\n")
	b.WriteString("   - Logical flow from background to explanation to conclusion\n")
	b.WriteString("   - A professional, respectful tone throughout\n")
	b.WriteString("   - Clear paragraph breaks for readability\n\n")

	b.WriteString("Generate a complete, professional Letter of Explanation now. Make it thorough, credible, and well-structured.")

	return b.String()
}
