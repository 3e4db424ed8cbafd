package model

// EmailJob is the payload of a queued letter delivery. The letter text
// travels inside the job so the worker never depends on the document still
// being present in the store.
type EmailJob struct {
	DocumentID    string `json:"document_id"`
	Recipient     string `json:"recipient"`
	ApplicantName string `json:"applicant_name"`
	LetterText    string `json:"letter_text"`
}
