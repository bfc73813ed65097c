package generation

import (
	"fmt"
	"strings"
)

// Readme builds the round-1 README for a generated app.
func Readme(brief string, checks []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", headline(brief))
	b.WriteString("## Summary\n\n")
	b.WriteString(brief)
	b.WriteString("\n\n")

	if len(checks) > 0 {
		b.WriteString("## Evaluation Criteria\n\n")
		for _, check := range checks {
			fmt.Fprintf(&b, "- %s\n", check)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Setup\n\n")
	b.WriteString("Static single-page app. Open `index.html` in a browser, ")
	b.WriteString("or visit the GitHub Pages URL for this repository.\n\n")
	b.WriteString("## License\n\nMIT — see [LICENSE](LICENSE).\n")

	return b.String()
}

// UpdatedReadme builds the round-2 README, documenting both the original
// brief and the revision applied on top of it.
func UpdatedReadme(originalBrief, revisionBrief string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", headline(originalBrief))
	b.WriteString("## Summary\n\n")
	b.WriteString(originalBrief)
	b.WriteString("\n\n")
	b.WriteString("## Revision\n\n")
	b.WriteString(revisionBrief)
	b.WriteString("\n\n")
	b.WriteString("## Setup\n\n")
	b.WriteString("Static single-page app. Open `index.html` in a browser, ")
	b.WriteString("or visit the GitHub Pages URL for this repository.\n\n")
	b.WriteString("## License\n\nMIT — see [LICENSE](LICENSE).\n")

	return b.String()
}

// headline derives a README title from a brief: the text up to the first
// sentence break, capped at 80 characters.
func headline(brief string) string {
	title := strings.TrimSpace(brief)
	if idx := strings.IndexAny(title, ".\n"); idx > 0 {
		title = title[:idx]
	}
	if len(title) > 80 {
		title = strings.TrimSpace(title[:80])
	}
	if title == "" {
		title = "Generated App"
	}
	return title
}

// MITLicense returns the MIT license text used for generated repositories.
func MITLicense() string {
	return `MIT License

Copyright (c) 2025

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`
}

// Gitignore returns the .gitignore for generated repositories.
func Gitignore() string {
	return `.DS_Store
node_modules/
*.log
.env
dist/
`
}
