package generation

import (
	"strings"

	"github.com/phrazzld/appforge-api/internal/domain"
)

// BriefCategory tags the canned app template matching a brief.
type BriefCategory int

// Known brief categories. CategoryGeneric is the catch-all.
const (
	CategoryGeneric BriefCategory = iota
	CategoryCalculator
	CategoryCaptcha
	CategoryMarkdown
)

// String returns the category name for logging.
func (c BriefCategory) String() string {
	switch c {
	case CategoryCalculator:
		return "calculator"
	case CategoryCaptcha:
		return "captcha"
	case CategoryMarkdown:
		return "markdown"
	default:
		return "generic"
	}
}

// categoryKeywords maps each non-generic category to the brief substrings
// that select it. Matching is case-insensitive, first match wins, in the
// order listed in categoryOrder.
var categoryKeywords = map[BriefCategory][]string{
	CategoryCalculator: {"calculator", "calculate", "arithmetic"},
	CategoryCaptcha:    {"captcha"},
	CategoryMarkdown:   {"markdown"},
}

var categoryOrder = []BriefCategory{
	CategoryCalculator,
	CategoryCaptcha,
	CategoryMarkdown,
}

// CategorizeBrief selects the fallback template category for a brief.
// There is no semantic understanding here, only substring matching; this
// is acceptable because the fallback only has to produce a plausible,
// deterministic page.
func CategorizeBrief(brief string) BriefCategory {
	lowered := strings.ToLower(brief)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return CategoryGeneric
}

// FallbackPage returns the canned page for a brief. Given the same brief
// twice it returns byte-identical content.
func FallbackPage(brief string) string {
	switch CategorizeBrief(brief) {
	case CategoryCalculator:
		return calculatorPage
	case CategoryCaptcha:
		return captchaPage
	case CategoryMarkdown:
		return markdownPage
	default:
		return genericPage
	}
}

// FallbackArtifacts builds the complete round-1 artifact set for a brief
// from the canned template library.
func FallbackArtifacts(brief string, checks []string) domain.ArtifactSet {
	return domain.ArtifactSet{
		domain.PrimaryArtifact: FallbackPage(brief),
		"README.md":            Readme(brief, checks),
		"LICENSE":              MITLicense(),
		".gitignore":           Gitignore(),
	}
}

const calculatorPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Calculator</title>
<style>
  body { font-family: Arial, sans-serif; background: #f9f9f9; display: flex; justify-content: center; padding-top: 60px; }
  .calc { background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 20px; }
  #display { width: 100%; height: 48px; font-size: 24px; text-align: right; margin-bottom: 10px; box-sizing: border-box; }
  .keys { display: grid; grid-template-columns: repeat(4, 60px); gap: 8px; }
  button { height: 48px; font-size: 18px; border: none; border-radius: 4px; background: #e0e0e0; cursor: pointer; }
  button.op { background: #4CAF50; color: white; }
  button.op:hover { background: #45a049; }
</style>
</head>
<body>
<div class="calc">
  <input id="display" type="text" readonly value="0">
  <div class="keys">
    <button onclick="press('7')">7</button><button onclick="press('8')">8</button><button onclick="press('9')">9</button><button class="op" onclick="press('/')">&divide;</button>
    <button onclick="press('4')">4</button><button onclick="press('5')">5</button><button onclick="press('6')">6</button><button class="op" onclick="press('*')">&times;</button>
    <button onclick="press('1')">1</button><button onclick="press('2')">2</button><button onclick="press('3')">3</button><button class="op" onclick="press('-')">&minus;</button>
    <button onclick="press('0')">0</button><button onclick="press('.')">.</button><button onclick="clearDisplay()">C</button><button class="op" onclick="press('+')">+</button>
    <button class="op" style="grid-column: span 4" onclick="calculate()">=</button>
  </div>
</div>
<script>
  var display = document.getElementById('display');
  function press(ch) {
    if (display.value === '0' && ch !== '.') display.value = '';
    display.value += ch;
  }
  function clearDisplay() { display.value = '0'; }
  function calculate() {
    try {
      display.value = String(Function('"use strict"; return (' + display.value + ')')());
    } catch (e) {
      display.value = 'Error';
    }
  }
</script>
</body>
</html>
`

const captchaPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>CAPTCHA Solver</title>
<style>
  body { font-family: Arial, sans-serif; background: #f5f5f5; display: flex; justify-content: center; padding-top: 60px; }
  .panel { background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 24px; width: 420px; }
  input[type=text] { width: 100%; padding: 8px; box-sizing: border-box; margin-bottom: 12px; }
  button { background: #007bff; color: white; border: none; border-radius: 4px; padding: 10px 16px; cursor: pointer; }
  button:hover { background: #0056b3; }
  #result { margin-top: 16px; padding: 12px; background: #e7f3ff; border-radius: 4px; min-height: 24px; }
  img { max-width: 100%; margin-bottom: 12px; }
</style>
</head>
<body>
<div class="panel">
  <h2>CAPTCHA Solver</h2>
  <input id="url" type="text" placeholder="CAPTCHA image URL">
  <button onclick="load()">Load</button>
  <div id="preview"></div>
  <div id="result">Enter an image URL and press Load.</div>
</div>
<script>
  function load() {
    var url = document.getElementById('url').value.trim();
    if (!url) return;
    document.getElementById('preview').innerHTML = '<img src="' + url + '" alt="captcha">';
    document.getElementById('result').textContent = 'Image loaded. Solving is manual in this build.';
  }
</script>
</body>
</html>
`

const markdownPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Markdown to HTML</title>
<style>
  body { font-family: Arial, sans-serif; background: #f9f9f9; margin: 0; padding: 24px; }
  .cols { display: flex; gap: 16px; }
  textarea, #output { flex: 1; min-height: 400px; background: white; border: 1px solid #ddd; border-radius: 4px; padding: 12px; font-size: 14px; }
  #output { overflow: auto; }
</style>
</head>
<body>
<h2>Markdown to HTML</h2>
<div class="cols">
  <textarea id="input" oninput="render()"># Hello

Type *markdown* on the left.</textarea>
  <div id="output"></div>
</div>
<script>
  function render() {
    var text = document.getElementById('input').value;
    var html = text
      .replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;')
      .replace(/^### (.*)$/gm, '<h3>$1</h3>')
      .replace(/^## (.*)$/gm, '<h2>$1</h2>')
      .replace(/^# (.*)$/gm, '<h1>$1</h1>')
      .replace(/\*\*([^*]+)\*\*/g, '<strong>$1</strong>')
      .replace(/\*([^*]+)\*/g, '<em>$1</em>')
      .replace(/` + "`([^`]+)`" + `/g, '<code>$1</code>')
      .replace(/\n\n/g, '<br><br>');
    document.getElementById('output').innerHTML = html;
  }
  render();
</script>
</body>
</html>
`

const genericPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>App</title>
<style>
  body { font-family: Arial, sans-serif; background: #f9f9f9; display: flex; justify-content: center; padding-top: 80px; }
  .card { background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 32px; max-width: 480px; text-align: center; }
</style>
</head>
<body>
<div class="card">
  <h1>Application</h1>
  <p>This page was generated automatically. The requested application is being built.</p>
</div>
</body>
</html>
`
