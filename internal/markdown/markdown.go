// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts style guidelines and component code into HTML
// for the design handoff document. Raw HTML in the source is omitted, so
// user text can never inject markup.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CodeBlock renders code as a highlighted block for lang ("html", "css",
// "js"). The fence is longer than any backtick run in code, so the code
// cannot close it early.
func CodeBlock(lang, code string) (string, error) {
	fence := strings.Repeat("`", max(3, longestRun(code, '`')+1))
	var src strings.Builder
	src.WriteString(fence + lang + "\n")
	src.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		src.WriteString("\n")
	}
	src.WriteString(fence + "\n")
	return ToHTML(src.String())
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
