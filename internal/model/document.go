package model

import "time"

// Section is one labeled block of a generated letter. Headings come from a
// lossy line heuristic, so the raw text stays authoritative for rendering.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type AboutYou struct {
	FullName           string `json:"full_name"`
	CitizenshipCountry string `json:"citizenship_country"`
	CurrentCountry     string `json:"current_country"`
}

type ApplicationContext struct {
	ApplicationType string `json:"application_type"`
	TargetCountry   string `json:"target_country"`
}

type Explanation struct {
	Main       string `json:"main"`
	Dates      string `json:"dates,omitempty"`
	Background string `json:"background,omitempty"`
}

// LetterForm holds the validated multi-step form answers a letter is
// generated from. It is retained inside the stored record so the applicant
// name can be recovered later for email personalization.
type LetterForm struct {
	AboutYou    AboutYou           `json:"about_you"`
	Application ApplicationContext `json:"application"`
	Explanation Explanation        `json:"explanation"`
	Tone        string             `json:"tone"`
	Template    string             `json:"template"`
	Emphasis    string             `json:"emphasis,omitempty"`
}

// DocumentRecord is the stored unit: generated content, the originating form
// answers and the paid-visibility flag. IsPaid is monotonic; there is no
// refund path that resets it.
type DocumentRecord struct {
	Sections    []Section  `json:"sections"`
	RawText     string     `json:"raw_text"`
	GeneratedAt time.Time  `json:"generated_at"`
	Form        LetterForm `json:"form"`
	IsPaid      bool       `json:"is_paid"`
}
