package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/festivalmap/festivals/internal/festival"
)

const (
	moduleHeader    = "// Generated by the festivals scraper. Do not edit."
	festivalsOpen   = "export const festivals = ["
	getLocationsDef = "export const getLocations = () => [...new Set(festivals.map((f) => f.location))].sort();"
)

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`, "\n", `\n`, "\t", `\t`, "'", `\'`)
	unescapes = map[byte]byte{'\\': '\\', 'r': '\r', 'n': '\n', 't': '\t', '\'': '\''}
)

// Escape makes s safe inside a single-quoted JS string literal.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling escape at end of %q", s)
		}
		i++
		r, ok := unescapes[s[i]]
		if !ok {
			return "", fmt.Errorf("unknown escape \\%c in %q", s[i], s)
		}
		b.WriteByte(r)
	}
	return b.String(), nil
}

func quote(s string) string {
	return "'" + Escape(s) + "'"
}

// EncodeModule renders records as the JS data module.
// The output depends only on records, so identical input gives identical bytes.
func EncodeModule(records []*festival.Record) []byte {
	var b bytes.Buffer
	b.WriteString(moduleHeader + "\n")

	if len(records) == 0 {
		b.WriteString(festivalsOpen + "];\n")
	} else {
		b.WriteString(festivalsOpen + "\n")
		for _, r := range records {
			b.WriteString("  {\n")
			fmt.Fprintf(&b, "    id: %d,\n", r.ID)
			for _, f := range stringFields(r) {
				fmt.Fprintf(&b, "    %s: %s,\n", f.key, quote(*f.value))
			}
			b.WriteString("  },\n")
		}
		b.WriteString("];\n")
	}

	b.WriteString("\n" + getLocationsDef + "\n")
	return b.Bytes()
}

type stringField struct {
	key   string
	value *string
}

// stringFields lists the string properties of r in output order.
func stringFields(r *festival.Record) []stringField {
	return []stringField{
		{"name", &r.Name},
		{"location", &r.Location},
		{"address", &r.Address},
		{"startDate", &r.StartDate},
		{"endDate", &r.EndDate},
		{"periodText", &r.PeriodText},
		{"description", &r.Description},
		{"mcstUrl", &r.McstURL},
		{"homepageUrl", &r.HomepageURL},
		{"imageUrl", &r.ImageURL},
		{"feeText", &r.FeeText},
	}
}

// DecodeModule parses a data module written by EncodeModule.
func DecodeModule(data []byte) ([]*festival.Record, error) {
	records := make([]*festival.Record, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		inArray bool
		current *festival.Record
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case !inArray:
			if line == festivalsOpen+"];" {
				return records, nil
			}
			if line == festivalsOpen {
				inArray = true
			}
		case line == "];":
			if current != nil {
				return nil, fmt.Errorf("line %d: unterminated record", lineNo)
			}
			return records, nil
		case line == "{":
			current = &festival.Record{}
		case line == "},":
			if current == nil {
				return nil, fmt.Errorf("line %d: unexpected record end", lineNo)
			}
			records = append(records, current)
			current = nil
		default:
			if current == nil {
				return nil, fmt.Errorf("line %d: property outside record", lineNo)
			}
			if err := decodeProperty(current, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("festivals array not found or not terminated")
}

func decodeProperty(r *festival.Record, line string) error {
	key, value, found := strings.Cut(strings.TrimSuffix(line, ","), ": ")
	if !found {
		return fmt.Errorf("malformed property %q", line)
	}

	if key == "id" {
		id, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", value, err)
		}
		r.ID = id
		return nil
	}

	if len(value) < 2 || value[0] != '\'' || value[len(value)-1] != '\'' {
		return fmt.Errorf("property %s is not a quoted string", key)
	}
	text, err := Unescape(value[1 : len(value)-1])
	if err != nil {
		return err
	}

	for _, f := range stringFields(r) {
		if f.key == key {
			*f.value = text
			return nil
		}
	}
	return fmt.Errorf("unknown property %q", key)
}
