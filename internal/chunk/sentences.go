package chunk

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// abbreviations that end with a period but do not terminate a sentence
var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "prof.": true,
	"sr.": true, "jr.": true, "st.": true, "no.": true, "vs.": true,
	"inc.": true, "ltd.": true, "co.": true, "corp.": true, "dept.": true,
	"gov.": true, "gen.": true, "col.": true, "approx.": true, "est.": true,
	"e.g.": true, "i.e.": true, "etc.": true, "al.": true,
	"u.s.": true, "u.s.a.": true, "u.k.": true, "u.n.": true, "e.u.": true,
	"jan.": true, "feb.": true, "mar.": true, "apr.": true, "jun.": true,
	"jul.": true, "aug.": true, "sep.": true, "sept.": true, "oct.": true,
	"nov.": true, "dec.": true,
}

// splitSentences segments text at sentence terminators, keeping abbreviations
// like "Mr.", "U.S.A.", "Inc." attached to their sentence instead of
// splitting on every period.
func splitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// A terminator mid-token ("3.14", "U.S.A.") is never a boundary.
		if i+1 < len(runes) && runes[i+1] != ' ' {
			continue
		}
		if r == '.' {
			token := lastToken(current.String())
			if abbreviations[strings.ToLower(token)] || isInitial(token) {
				continue
			}
		}
		// The next visible character must plausibly start a sentence.
		if i+2 < len(runes) {
			next := runes[i+2]
			if !unicode.IsUpper(next) && !unicode.IsDigit(next) &&
				next != '"' && next != '\'' && next != '(' {
				continue
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
		if i+1 < len(runes) {
			i++ // swallow the boundary space
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// lastToken returns the final space-delimited token of s
func lastToken(s string) string {
	if idx := strings.LastIndexByte(s, ' '); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// isInitial reports single-letter initials like "J."
func isInitial(token string) bool {
	return len(token) == 2 && token[1] == '.' && unicode.IsUpper(rune(token[0]))
}

// stripHTML extracts visible text from snippets that carry HTML fragments,
// skipping script/style/noscript subtrees. Plain text passes through
// untouched.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}
