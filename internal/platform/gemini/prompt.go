package gemini

import (
	"fmt"
	"strings"
)

// buildPrompt assembles the round-1 generation prompt from the brief, the
// evaluation checks, and the attachment count.
func buildPrompt(brief string, checks []string, attachmentCount int) string {
	var b strings.Builder

	b.WriteString("You are an expert front-end developer. Build a complete, ")
	b.WriteString("working single-page web application as one self-contained ")
	b.WriteString("HTML file with inline CSS and JavaScript. No build step, ")
	b.WriteString("no external dependencies.\n\n")

	fmt.Fprintf(&b, "Application brief:\n%s\n\n", brief)

	if len(checks) > 0 {
		b.WriteString("The app will be evaluated against these checks:\n")
		for _, check := range checks {
			fmt.Fprintf(&b, "- %s\n", check)
		}
		b.WriteString("\n")
	}

	if attachmentCount > 0 {
		fmt.Fprintf(&b, "The task includes %d attachment(s) referenced by the brief.\n\n", attachmentCount)
	}

	b.WriteString("Respond with the full HTML document inside a ```html code fence.")

	return b.String()
}

// buildModifyPrompt assembles the round-2 prompt: original brief, the
// requested revision, and the currently published page.
func buildModifyPrompt(originalBrief, newBrief, existingPage string) string {
	var b strings.Builder

	b.WriteString("You are an expert front-end developer. Modify the existing ")
	b.WriteString("single-page web application below. Keep it a single ")
	b.WriteString("self-contained HTML file with inline CSS and JavaScript.\n\n")

	fmt.Fprintf(&b, "Original brief:\n%s\n\n", originalBrief)
	fmt.Fprintf(&b, "Requested changes:\n%s\n\n", newBrief)

	if existingPage != "" {
		fmt.Fprintf(&b, "Current application code:\n```html\n%s\n```\n\n", existingPage)
	}

	b.WriteString("Respond with the complete updated HTML document inside a ```html code fence.")

	return b.String()
}
