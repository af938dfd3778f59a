// Package pathcodec normalizes the raw encodings a taxonomy path arrives in.
//
// Upstream exports are inconsistent: a path may already be a JSON array, a
// string holding a JSON array, or a brace-delimited scalar list whose
// original separators were lost in a flattening step. The codec turns any
// of these into a clean ordered sequence; anything it cannot recognize
// yields an empty result rather than an error.
package pathcodec

import (
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// maxIDDigits is the flush threshold for reassembling run-on digit groups
// in brace-encoded id lists. The flattening that produced these strings
// dropped the separators between multi-digit ids, so the decoder can only
// guess boundaries: it accumulates digit groups and flushes a buffer as one
// id when it reaches 5 digits, when appending the next group would exceed
// 5, or when input runs out. This is a lossy heuristic, not an exact
// decoder — ids that are not 4-5 digits, or that abut ambiguously, may be
// split wrong. Kept as-is deliberately; true fidelity would need the
// original delimiters.
const maxIDDigits = 5

// ParseIDPath normalizes a raw id path into an ordered id sequence.
// Returns nil for any shape it does not recognize.
func ParseIDPath(raw any) []int64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case []int64:
		out := make([]int64, len(v))
		copy(out, v)
		return out
	case []any:
		return coerceIDs(v)
	case string:
		s := strings.TrimSpace(v)
		switch {
		case strings.HasPrefix(s, "["):
			parsed, err := oj.ParseString(s)
			if err != nil {
				return nil
			}
			list, ok := parsed.([]any)
			if !ok {
				return nil
			}
			return coerceIDs(list)
		case strings.HasPrefix(s, "{"):
			return decodeBraceIDs(s)
		}
		return nil
	}
	return nil
}

// ParseNamePath normalizes a raw name path into an ordered name sequence.
// Returns nil for any shape it does not recognize.
func ParseNamePath(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		return coerceNames(v)
	case string:
		s := strings.TrimSpace(v)
		switch {
		case strings.HasPrefix(s, "["):
			parsed, err := oj.ParseString(s)
			if err != nil {
				return nil
			}
			list, ok := parsed.([]any)
			if !ok {
				return nil
			}
			return coerceNames(list)
		case strings.HasPrefix(s, "{"):
			return decodeBraceNames(s)
		}
		return nil
	}
	return nil
}

func coerceIDs(list []any) []int64 {
	out := make([]int64, 0, len(list))
	for _, el := range list {
		switch n := el.(type) {
		case int64:
			out = append(out, n)
		case int:
			out = append(out, int64(n))
		case float64:
			out = append(out, int64(n))
		case string:
			id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				continue
			}
			out = append(out, id)
		}
	}
	return out
}

func coerceNames(list []any) []string {
	out := make([]string, 0, len(list))
	for _, el := range list {
		switch s := el.(type) {
		case string:
			out = append(out, s)
		case int64:
			out = append(out, strconv.FormatInt(s, 10))
		case float64:
			out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
		}
	}
	return out
}

// decodeBraceIDs reassembles a brace-delimited flattened digit list into
// plausible ids using the maxIDDigits flush rule.
func decodeBraceIDs(s string) []int64 {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if inner == "" {
		return nil
	}

	var out []int64
	flush := func(buf string) {
		if buf == "" {
			return
		}
		id, err := strconv.ParseInt(buf, 10, 64)
		if err != nil {
			return
		}
		out = append(out, id)
	}

	buf := ""
	for _, tok := range strings.Split(inner, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if len(buf)+len(tok) > maxIDDigits {
			flush(buf)
			buf = ""
		}
		buf += tok
		if len(buf) >= maxIDDigits {
			flush(buf)
			buf = ""
		}
	}
	flush(buf)
	return out
}

// decodeBraceNames splits a brace-delimited name list on commas, honoring
// double-quoted tokens so names containing commas survive as one token.
func decodeBraceNames(s string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if inner == "" {
		return nil
	}

	var out []string
	var buf strings.Builder
	inQuote := false
	emit := func() {
		tok := strings.TrimSpace(buf.String())
		tok = strings.Trim(tok, `"`)
		if tok != "" {
			out = append(out, tok)
		}
		buf.Reset()
	}

	for _, r := range inner {
		switch {
		case r == '"':
			inQuote = !inQuote
			buf.WriteRune(r)
		case r == ',' && !inQuote:
			emit()
		default:
			buf.WriteRune(r)
		}
	}
	emit()
	return out
}
