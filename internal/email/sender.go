package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"letterforge/internal/model"
	"letterforge/internal/pdf"
)

var ErrInvalidRecipient = errors.New("invalid recipient address")

// Sender delivers the finished letter by email with a PDF attachment.
type Sender struct {
	client *resend.Client
	from   string
}

func NewSender(apiKey, from string) *Sender {
	return &Sender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendLetter sends the templated message and returns the provider-assigned
// message id.
func (s *Sender) SendLetter(ctx context.Context, job model.EmailJob) (string, error) {
	if !strings.Contains(job.Recipient, "@") {
		return "", ErrInvalidRecipient
	}

	now := time.Now()
	attachment, err := pdf.Render(job.LetterText, job.ApplicantName, now)
	if err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{job.Recipient},
		Subject: "Your Immigration Explanation Letter",
		Html:    htmlBody(job.ApplicantName, job.LetterText),
		Text:    textBody(job.ApplicantName, job.LetterText),
		Attachments: []*resend.Attachment{
			{
				Filename: pdf.Filename(job.ApplicantName, now),
				Content:  attachment,
			},
		},
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("send letter email failed: %w", err)
	}
	return sent.Id, nil
}

// Publish satisfies the dispatcher seam used by the billing flow when no
// queue is configured: the email is simply sent inline.
func (s *Sender) Publish(ctx context.Context, job model.EmailJob) error {
	_, err := s.SendLetter(ctx, job)
	return err
}

func htmlBody(applicantName, letterText string) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; line-height: 1.6; color: #333;\">")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", html.EscapeString(applicantName))
	b.WriteString("<p>Thank you for your purchase! Your personalized immigration explanation letter is attached as a PDF and included below.</p>")
	fmt.Fprintf(&b, "<div style=\"background: #fff; padding: 24px; border: 1px solid #d1d5db; white-space: pre-wrap; font-family: Georgia, serif;\">%s</div>", html.EscapeString(letterText))
	b.WriteString("<p><strong>Next steps:</strong> review the letter carefully, make any final edits, and submit it with your immigration application.</p>")
	b.WriteString("<p style=\"font-size: 13px; color: #6b7280;\">This letter is for informational purposes only and does not constitute legal advice. For legal guidance, consult a qualified immigration attorney.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func textBody(applicantName, letterText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", applicantName)
	b.WriteString("Thank you for your purchase! Your personalized immigration explanation letter is below and attached as a PDF.\n\n")
	b.WriteString("----- YOUR LETTER -----\n\n")
	b.WriteString(letterText)
	b.WriteString("\n\n----- END OF LETTER -----\n\n")
	b.WriteString("Next steps: review the letter carefully, make any final edits, and submit it with your immigration application.\n\n")
	b.WriteString("This letter is for informational purposes only and does not constitute legal advice.\n")
	return b.String()
}
