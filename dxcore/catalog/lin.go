/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"dirpx.dev/rxmerr"
)

const linFormat = "lin"

// ParseLIN reads linetype definitions in the AutoCAD .lin layout:
//
//	;; comment
//	*DASHED,Dashed __ __ __
//	A,.5,-.25
//	*GAS_LINE,Gas line ----GAS----
//	A,.5,-.2,["GAS",STANDARD,S=.1,R=0.0,X=-0.1,Y=-.05],-.25
//	*TRACKS,Tracks -|-|-|-
//	A,.15,[TRACK1,ltypeshp.shx,S=.25],.15
//
// Each definition is a "*NAME[,description]" header followed by an "A,"
// pattern line. Positive values are dashes, negative values are gaps and
// zero is a point. A bracketed field is a zero-advance glyph: a quoted
// first field makes a Text element with the second field as its style,
// otherwise a Shape element whose glyph is "SHAPE@FILE". Glyph options are
// S= (scale), R= or U= (relative rotation), A= (absolute rotation), X= and
// Y= (offsets); rotations accept a d, r or g suffix for degrees, radians or
// grads. A header without a pattern line defines a solid pattern.
//
// Definitions with glyphs are Complex, all others Simple. A malformed
// definition is skipped and reported; parsing resumes at the next header.
// The returned error combines every failure.
func ParseLIN(r io.Reader) ([]linetype.Pattern, error) {
	var (
		patterns []linetype.Pattern
		pending  *linHeader
		skip     bool
		c        = rxmerr.NewCollector()
	)

	flush := func() {
		if pending == nil {
			return
		}
		p, err := linetype.NewPattern(pending.name, pending.description, linetype.Simple,
			[]linetype.Element{linetype.Dash(0)})
		if err != nil {
			c.Append(fmt.Errorf("lin line %d: %w", pending.line, err))
		} else {
			patterns = append(patterns, p)
		}
		pending = nil
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if line == "" || strings.HasPrefix(line, ";;") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "*"):
			flush()
			h, err := parseLINHeader(line, lineNo)
			if err != nil {
				c.Append(err)
				skip = true
				continue
			}
			pending = &h
			skip = false

		case len(line) >= 2 && (line[0] == 'A' || line[0] == 'a') && line[1] == ',':
			if pending == nil {
				if !skip {
					c.Append(&errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: "pattern line without header"})
				}
				skip = false
				continue
			}
			h := *pending
			pending = nil
			p, err := parseLINPattern(h, line[2:], lineNo)
			if err != nil {
				c.Append(err)
				continue
			}
			patterns = append(patterns, p)

		default:
			c.Append(&errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: "expected *NAME header or A, pattern line"})
		}
	}
	flush()

	if err := sc.Err(); err != nil {
		c.Append(fmt.Errorf("cannot read lin data: %w", err))
	}
	return patterns, c.Err()
}

type linHeader struct {
	name        linetype.Name
	description string
	line        int
}

func parseLINHeader(line string, lineNo int) (linHeader, error) {
	body := line[1:]
	rawName, description, _ := strings.Cut(body, ",")

	name, err := linetype.ParseName(rawName)
	if err != nil {
		return linHeader{}, &errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: err.Error()}
	}
	if name.IsZero() {
		return linHeader{}, &errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: "empty linetype name"}
	}
	return linHeader{name: name, description: strings.TrimSpace(description), line: lineNo}, nil
}

func parseLINPattern(h linHeader, body string, lineNo int) (linetype.Pattern, error) {
	fields, err := splitLINFields(body)
	if err != nil {
		return linetype.Pattern{}, &errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: err.Error()}
	}

	tier := linetype.Simple
	elements := make([]linetype.Element, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "[") {
			e, err := parseLINGlyph(f)
			if err != nil {
				return linetype.Pattern{}, &errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: err.Error()}
			}
			tier = linetype.Complex
			elements = append(elements, e)
			continue
		}

		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return linetype.Pattern{}, &errors.SyntaxError{Format: linFormat, Line: lineNo, Reason: fmt.Sprintf("invalid length %q", f)}
		}
		switch {
		case v > 0:
			elements = append(elements, linetype.Dash(v))
		case v < 0:
			elements = append(elements, linetype.Gap(-v))
		default:
			elements = append(elements, linetype.Point())
		}
	}

	p, err := linetype.NewPattern(h.name, h.description, tier, elements)
	if err != nil {
		return linetype.Pattern{}, fmt.Errorf("lin line %d: %w", lineNo, err)
	}
	return p, nil
}

// splitLINFields splits on commas outside brackets and quotes.
func splitLINFields(s string) ([]string, error) {
	var (
		fields  []string
		start   int
		bracket bool
		quoted  bool
	)
	for i, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			if bracket {
				return nil, fmt.Errorf("nested '[' at column %d", i+1)
			}
			bracket = true
		case r == ']':
			if !bracket {
				return nil, fmt.Errorf("unbalanced ']' at column %d", i+1)
			}
			bracket = false
		case r == ',' && !bracket:
			fields = append(fields, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated text string")
	}
	if bracket {
		return nil, fmt.Errorf("unterminated '['")
	}
	fields = append(fields, strings.TrimSpace(s[start:]))

	for _, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("empty field")
		}
	}
	return fields, nil
}

func parseLINGlyph(field string) (linetype.Element, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(field, "["), "]")
	parts, err := splitGlyphFields(inner)
	if err != nil {
		return linetype.Element{}, err
	}
	if len(parts) < 2 {
		return linetype.Element{}, fmt.Errorf("glyph %s needs a name and a style or file", field)
	}

	var p linetype.Placement
	for _, opt := range parts[2:] {
		key, val, ok := strings.Cut(opt, "=")
		if !ok {
			return linetype.Element{}, fmt.Errorf("glyph option %q is not KEY=VALUE", opt)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "S":
			v, err := parseFinite(val)
			if err != nil {
				return linetype.Element{}, fmt.Errorf("glyph scale: %w", err)
			}
			p.Scale = v
		case "R", "U", "A":
			v, err := parseAngle(val)
			if err != nil {
				return linetype.Element{}, fmt.Errorf("glyph rotation: %w", err)
			}
			p.Rotation = v
			p.AbsoluteRotation = key == "A"
		case "X":
			v, err := parseFinite(val)
			if err != nil {
				return linetype.Element{}, fmt.Errorf("glyph x offset: %w", err)
			}
			p.XOffset = v
		case "Y":
			v, err := parseFinite(val)
			if err != nil {
				return linetype.Element{}, fmt.Errorf("glyph y offset: %w", err)
			}
			p.YOffset = v
		default:
			return linetype.Element{}, fmt.Errorf("unknown glyph option %q", key)
		}
	}

	first := parts[0]
	if strings.HasPrefix(first, `"`) {
		text := strings.TrimSuffix(strings.TrimPrefix(first, `"`), `"`)
		return linetype.Text(0, text, parts[1], p), nil
	}

	glyph := first
	if parts[1] != "" {
		glyph += "@" + parts[1]
	}
	return linetype.Shape(0, glyph, p), nil
}

// splitGlyphFields splits the inside of a bracket on commas outside quotes.
// Unlike pattern fields, the style or file field may be empty.
func splitGlyphFields(s string) ([]string, error) {
	var (
		fields []string
		start  int
		quoted bool
	)
	for i, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated text string")
	}
	return append(fields, strings.TrimSpace(s[start:])), nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// parseAngle returns degrees.
func parseAngle(s string) (float64, error) {
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "d"), strings.HasSuffix(s, "D"):
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "r"), strings.HasSuffix(s, "R"):
		s = s[:len(s)-1]
		factor = 180 / math.Pi
	case strings.HasSuffix(s, "g"), strings.HasSuffix(s, "G"):
		s = s[:len(s)-1]
		factor = 0.9
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	return v * factor, nil
}

// WriteLIN writes patterns in the layout ParseLIN reads. Solid patterns are
// written as a header only. Gaps and negative dashes are both written as
// negative values; dashes of length zero and points are both written as 0.
//
// Text containing a double quote, and descriptions or styles containing a
// line break, cannot be represented and are rejected before anything is
// written for that pattern.
func WriteLIN(w io.Writer, patterns []linetype.Pattern) error {
	bw := bufio.NewWriter(w)
	for _, p := range patterns {
		def, err := formatLIN(p)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(def); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatLIN(p linetype.Pattern) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if strings.ContainsAny(p.Description(), "\r\n") {
		return "", fmt.Errorf("linetype %s: description contains a line break", p.Name())
	}

	var sb strings.Builder
	sb.WriteString("*" + p.Name().String())
	if p.Description() != "" {
		sb.WriteString("," + p.Description())
	}
	sb.WriteString("\n")
	if p.IsSolid() {
		return sb.String(), nil
	}

	sb.WriteString("A")
	for _, e := range p.Elements() {
		sb.WriteString(",")
		switch e.Kind {
		case linetype.KindDash:
			sb.WriteString(formatNumber(e.Length))
		case linetype.KindGap:
			sb.WriteString(formatNumber(-e.Length))
		case linetype.KindPoint:
			sb.WriteString("0")
		case linetype.KindText, linetype.KindShape:
			g, err := formatLINGlyph(e)
			if err != nil {
				return "", fmt.Errorf("linetype %s: %w", p.Name(), err)
			}
			sb.WriteString(g)
		}
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func formatLINGlyph(e linetype.Element) (string, error) {
	if e.Length != 0 {
		return "", fmt.Errorf("%s element with a non-zero advance has no lin form", e.Kind)
	}

	var head string
	switch e.Kind {
	case linetype.KindText:
		if strings.ContainsAny(e.Text, "\"\r\n") || strings.ContainsAny(e.Style, ",[]\"\r\n") {
			return "", fmt.Errorf("text element %s has no lin form", e.Redacted())
		}
		head = `"` + e.Text + `",` + e.Style
	default:
		name, file, _ := strings.Cut(e.Glyph, "@")
		if strings.ContainsAny(e.Glyph, ",[]\"\r\n") {
			return "", fmt.Errorf("shape element %s has no lin form", e)
		}
		head = name + "," + file
	}

	rot := "R="
	if e.AbsoluteRotation {
		rot = "A="
	}
	return "[" + head +
		",S=" + formatNumber(e.Scale) +
		"," + rot + formatNumber(e.Rotation) +
		",X=" + formatNumber(e.XOffset) +
		",Y=" + formatNumber(e.YOffset) + "]", nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
