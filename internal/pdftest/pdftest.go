// Package pdftest builds tiny structurally valid PDF buffers for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Minimal returns a one-page PDF with no Info dictionary.
func Minimal() []byte { return build("") }

// WithTitle returns a one-page PDF whose Info dictionary carries title.
func WithTitle(title string) []byte { return build(title) }

func build(title string) []byte {
	var buf bytes.Buffer

	buf.WriteString("%PDF-1.4\n")

	obj1Offset := buf.Len()
	buf.WriteString("1 0 obj\n")
	buf.WriteString("<</Type/Catalog/Pages 2 0 R>>\n")
	buf.WriteString("endobj\n")

	obj2Offset := buf.Len()
	buf.WriteString("2 0 obj\n")
	buf.WriteString("<</Type/Pages/Kids[3 0 R]/Count 1>>\n")
	buf.WriteString("endobj\n")

	obj3Offset := buf.Len()
	buf.WriteString("3 0 obj\n")
	buf.WriteString("<</Type/Page/MediaBox[0 0 612 792]/Parent 2 0 R/Resources<<>>>>\n")
	buf.WriteString("endobj\n")

	objCount := 4
	infoOffset := 0
	if title != "" {
		infoOffset = buf.Len()
		fmt.Fprintf(&buf, "4 0 obj\n<</Title(%s)>>\nendobj\n", escapeString(title))
		objCount = 5
	}

	xrefOffset := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", objCount)
	// each entry is exactly 20 bytes: 10-digit offset, 5-digit gen, type, CRLF
	fmt.Fprintf(&buf, "%010d %05d f\r\n", 0, 65535)
	fmt.Fprintf(&buf, "%010d %05d n\r\n", obj1Offset, 0)
	fmt.Fprintf(&buf, "%010d %05d n\r\n", obj2Offset, 0)
	fmt.Fprintf(&buf, "%010d %05d n\r\n", obj3Offset, 0)
	if title != "" {
		fmt.Fprintf(&buf, "%010d %05d n\r\n", infoOffset, 0)
	}

	buf.WriteString("trailer\n")
	if title != "" {
		fmt.Fprintf(&buf, "<</Size %d/Root 1 0 R/Info 4 0 R>>\n", objCount)
	} else {
		fmt.Fprintf(&buf, "<</Size %d/Root 1 0 R>>\n", objCount)
	}
	buf.WriteString("startxref\n")
	fmt.Fprintf(&buf, "%d\n", xrefOffset)
	buf.WriteString("%%EOF")

	return buf.Bytes()
}

func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
