// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractTXT reads a plain-text file. Valid UTF-8 passes straight through;
// otherwise Windows-1252 and Latin-1 decoding are tried, and as a last resort
// invalid bytes are dropped.
func extractTXT(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	if utf8.Valid(raw) {
		return cleanText(string(raw)), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		if decoded, err := cm.NewDecoder().Bytes(raw); err == nil {
			return cleanText(string(decoded)), nil
		}
	}

	return cleanText(string(toValidUTF8(raw))), nil
}

func toValidUTF8(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size != 1 {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return out
}
