// Package altbill resolves superseded bills to the alternative bills that
// replaced them, using a precomputed bill-number map.
package altbill

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/aohus/political-metrics/pkg/domainerrors"
)

// Table maps a canonical superseded bill number to the bill numbers of its
// successors. Loaded once; read-only thereafter.
type Table map[string][]string

// billNoWidth is the zero-padded width of the numeric part of a canonical
// bill number, which is prefixed by a two-digit era code.
const billNoWidth = 5

// LoadTable decodes a precomputed alternative-bill map. The table is one of
// the two base lookup structures, so a malformed payload is fatal to the run.
func LoadTable(r io.Reader) (Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "decoding alternative-bill table")
	}
	return t, nil
}

// Linker answers which bills superseded a given bill.
type Linker struct {
	table   Table
	eraCode string
	logger  *slog.Logger
}

// NewLinker builds a linker over a loaded table. eraCode is the two-digit
// assembly-term prefix applied to short bill numbers during canonicalization.
func NewLinker(table Table, eraCode string, logger *slog.Logger) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linker{table: table, eraCode: eraCode, logger: logger}
}

// Link returns the successor bill numbers for a superseded bill. A miss is
// logged and yields an empty result; the caller keeps the bill row either way.
func (l *Linker) Link(billNo string) []string {
	canonical := l.canonicalize(billNo)
	successors, ok := l.table[canonical]
	if !ok {
		l.logger.Error("no alternative-bill entry for superseded bill",
			"bill_no", billNo,
			"canonical_no", canonical,
		)
		return nil
	}
	out := make([]string, len(successors))
	copy(out, successors)
	return out
}

// canonicalize brings a raw bill number into the table's key format: short
// numbers gain the era-code prefix and zero padding, long ones are already
// canonical.
func (l *Linker) canonicalize(billNo string) string {
	if len(billNo) > billNoWidth {
		return billNo
	}
	return l.eraCode + strings.Repeat("0", billNoWidth-len(billNo)) + billNo
}
