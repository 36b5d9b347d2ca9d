package tailoring

import (
	"fmt"
	"strings"
)

// FormatCoverLetter renders a structured cover letter as plain text for
// display or clipboard use.
func FormatCoverLetter(letter CoverLetter) string {
	var b strings.Builder
	if letter.SubjectLine != "" {
		fmt.Fprintf(&b, "SUBJECT: %s\n\n", letter.SubjectLine)
	}
	b.WriteString(letter.Body)
	if letter.ClosingName != "" {
		fmt.Fprintf(&b, "\n\nSincerely,\n%s", letter.ClosingName)
	}
	return b.String()
}
