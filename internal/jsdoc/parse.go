package jsdoc

import (
	"strings"
)

// Parse reads a raw "/** ... */" comment. It returns nil for anything else.
func Parse(raw string) *Info {
	if !strings.HasPrefix(raw, "/**") || !strings.HasSuffix(raw, "*/") || len(raw) < 5 {
		return nil
	}
	body := raw[3 : len(raw)-2]
	lines := strings.Split(body, "\n")
	for k, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[k] = strings.TrimSpace(line)
	}
	text := strings.TrimSpace(strings.Join(lines, " "))

	info := &Info{}
	chunks := splitTags(text)
	if len(chunks) > 0 && !strings.HasPrefix(chunks[0], "@") {
		info.Description = chunks[0]
		chunks = chunks[1:]
	}
	for _, c := range chunks {
		info.Tags = append(info.Tags, parseTag(c))
	}
	return info
}

// splitTags cuts text before every '@' that starts a word outside braces.
func splitTags(text string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '@':
			if depth == 0 && (i == 0 || text[i-1] == ' ') && i+1 < len(text) && isTagByte(text[i+1]) {
				if chunk := strings.TrimSpace(text[start:i]); chunk != "" {
					out = append(out, chunk)
				}
				start = i
			}
		}
	}
	if chunk := strings.TrimSpace(text[start:]); chunk != "" {
		out = append(out, chunk)
	}
	return out
}

func isTagByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseTag(chunk string) Tag {
	i := 1
	for i < len(chunk) && (isTagByte(chunk[i]) || chunk[i] == '_') {
		i++
	}
	tag := Tag{Name: chunk[1:i]}
	rest := strings.TrimSpace(chunk[i:])
	if strings.HasPrefix(rest, "{") {
		if end := matchBrace(rest); end > 0 {
			tag.Type = ParseType(strings.TrimSpace(rest[1:end]))
			rest = strings.TrimSpace(rest[end+1:])
		}
	}
	tag.Text = rest
	return tag
}

func matchBrace(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
