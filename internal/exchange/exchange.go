// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package exchange reads and writes the delimited files records move
// through: URL lists, the seed dataset, and scraped-record files.
//
// Record files use ';' as the delimiter and a header row. Empty or
// whitespace-only cells are unknown values. A row that cannot be read
// aborts the whole file with ErrMalformedInput.
package exchange

import (
	"bufio"
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jszwec/csvutil"

	"github.com/pdiddy/player-scraper/internal/dates"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// Delimiter separates fields in record files.
const Delimiter = ';'

// ErrMalformedInput marks a record file that cannot be read.
var ErrMalformedInput = errors.New("malformed input")

// ReadURLs returns every non-blank line of r, trimmed, in order.
// Duplicates are kept. Lines are taken whole: page titles may contain
// commas and quotes.
func ReadURLs(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var urls []string
	for sc.Scan() {
		u := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if u != "" {
			urls = append(urls, u)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "reading URL list: %v", err)
	}
	return urls, nil
}

// decodeRows decodes every row of a ';'-delimited file into T. required
// names a header the file must carry.
func decodeRows[T any](r io.Reader, required string) ([]T, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter

	dec, err := csvutil.NewDecoder(cr)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "reading header: %v", err)
	}
	if !slices.Contains(dec.Header(), required) {
		return nil, errors.Wrapf(ErrMalformedInput, "missing %q column", required)
	}

	var rows []T
	for line := 2; ; line++ {
		var row T
		err := dec.Decode(&row)
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "line %d: %v", line, err)
		}
		rows = append(rows, row)
	}
}

func text(s string) *string {
	return types.StringOrNil(strings.TrimSpace(s))
}

// count returns nil unless s is made of digits only.
func count(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// birthDate accepts an ISO date or any form the date normalizer knows.
// Anything else is unknown.
func birthDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(types.DateLayout, s); err == nil {
		return &s
	}
	if iso, ok := dates.NormalizeBirthDate(s); ok {
		return &iso
	}
	return nil
}

func formatText(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func formatCount(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
