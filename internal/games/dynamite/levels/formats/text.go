package formats

import (
	"strings"
	"unicode/utf8"
)

var metadataNouns = map[string]bool{
	"title":  true,
	"hint":   true,
	"author": true,
	"next":   true,
}

type block struct {
	start int // 1-based line of the first entry
	lines []string
}

// ParseText parses the plain text level format: a tile map, then legend
// lines "<code> <definition>", then ":noun: value" metadata, each group
// separated by blank lines.
func ParseText(name string, data []byte) (Level, error) {
	blocks := splitBlocks(string(data))
	if len(blocks) == 0 {
		return Level{}, loadErr(CodeBadDimensions, 0, "level %q is empty", name)
	}

	mapBlock := blocks[0]
	src := source{
		name:     name,
		rows:     mapBlock.lines,
		rowLine:  func(row int) int { return mapBlock.start + row },
		legend:   make(map[rune]string),
		legLine:  make(map[rune]int),
		metadata: make(map[string]string),
	}

	for _, b := range blocks[1:] {
		for i, ln := range b.lines {
			lineNo := b.start + i
			if strings.HasPrefix(ln, ":") {
				if err := parseMetadata(ln, lineNo, src.metadata); err != nil {
					return Level{}, err
				}
				continue
			}
			if err := parseLegendLine(ln, lineNo, src.legend, src.legLine); err != nil {
				return Level{}, err
			}
		}
	}

	return build(src)
}

func splitBlocks(text string) []block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []block
	var cur *block
	for i, ln := range strings.Split(text, "\n") {
		ln = strings.TrimRight(ln, " \t")
		if ln == "" {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, block{start: i + 1})
			cur = &blocks[len(blocks)-1]
		}
		cur.lines = append(cur.lines, ln)
	}
	return blocks
}

func parseLegendLine(ln string, lineNo int, legend map[rune]string, lines map[rune]int) error {
	code, size := utf8.DecodeRuneInString(ln)
	rest := ln[size:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') || strings.TrimSpace(rest) == "" {
		return loadErr(CodeBadLegend, lineNo, "legend line %q must be \"<code> <definition>\"", ln)
	}
	if _, dup := legend[code]; dup {
		return loadErr(CodeBadLegend, lineNo, "code %q defined twice", code)
	}
	legend[code] = strings.TrimSpace(rest)
	lines[code] = lineNo
	return nil
}

func parseMetadata(ln string, lineNo int, meta map[string]string) error {
	noun, value, ok := strings.Cut(ln[1:], ":")
	noun = strings.ToLower(strings.TrimSpace(noun))
	if !ok || noun == "" {
		return loadErr(CodeBadMetadata, lineNo, "metadata line %q must be \":noun: value\"", ln)
	}
	if !metadataNouns[noun] {
		return loadErr(CodeBadMetadata, lineNo, "unknown metadata noun %q", noun)
	}
	if _, dup := meta[noun]; dup {
		return loadErr(CodeBadMetadata, lineNo, "metadata %q given twice", noun)
	}
	meta[noun] = strings.TrimSpace(value)
	return nil
}
