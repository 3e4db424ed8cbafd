package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Render lays out the final letter text (post user editing) as an A4 PDF.
func Render(letterText, applicantName string, generatedAt time.Time) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Letter of Explanation", true)
	doc.SetAuthor(applicantName, true)
	doc.SetMargins(25, 25, 25)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Times", "B", 14)
	doc.MultiCell(0, 8, tr("Letter of Explanation"), "", "C", false)
	doc.Ln(2)

	doc.SetFont("Times", "", 9)
	doc.SetTextColor(110, 110, 110)
	doc.MultiCell(0, 5, tr("Generated "+generatedAt.Format("January 2, 2006")), "", "C", false)
	doc.SetTextColor(0, 0, 0)
	doc.Ln(6)

	doc.SetFont("Times", "", 12)
	for _, line := range strings.Split(letterText, "\n") {
		if strings.TrimSpace(line) == "" {
			doc.Ln(4)
			continue
		}
		doc.MultiCell(0, 6, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf failed: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Filename builds letter_<sanitized-name>_<date>.pdf for downloads and
// attachments.
func Filename(applicantName string, now time.Time) string {
	name := strings.Trim(unsafeFilenameChars.ReplaceAllString(applicantName, "_"), "_")
	name = strings.ToLower(name)
	if name == "" {
		name = "applicant"
	}
	return fmt.Sprintf("letter_%s_%s.pdf", name, now.Format("2006-01-02"))
}
