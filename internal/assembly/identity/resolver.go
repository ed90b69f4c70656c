// Package identity collapses the two raw member feeds into one canonical
// identity space: an immutable (name, term) → member id index plus per-term
// era records.
//
// The comprehensive feed stores a person's terms as slash-delimited parallel
// lists whose lengths can legitimately differ: proportional-representation
// terms carry no district, and some rows repeat a term label. Reconciling
// those lists is the whole job of this package; everything downstream
// assumes the index is correct and never mutates it.
package identity

import (
	"log/slog"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/pkg/domainerrors"
	pstrings "github.com/aohus/political-metrics/pkg/platform/strings"
)

// Key identifies a member within one assembly term.
type Key struct {
	Name string
	Term string
}

// Index is the canonical member identity lookup. Built once, read-only
// thereafter; safe for concurrent readers.
type Index struct {
	byKey   map[Key]string
	members []models.Member
	eras    []models.MemberEraRecord
}

// ConstituentAssembly is the historic first-term label, which carries no
// ordinal number.
const ConstituentAssembly = "제헌"

// districtlessTypes are the district-type values whose terms carry no
// district, shortening the district list relative to its siblings.
var districtlessTypes = map[string]bool{
	"비례대표":     true,
	"전국구":      true,
	"통일주체국민회의": true,
}

// BuildIndex constructs the identity index from the comprehensive feed and
// the current-members feed. Rows from the current-members feed are merged in
// only for keys the comprehensive feed did not produce.
//
// Individual malformed rows are logged and skipped; BuildIndex fails only
// when no identity at all could be built, since every downstream proposer
// resolution depends on this table.
func BuildIndex(comprehensive []models.RawMemberRecord, active []models.RawActiveMemberRecord, currentTerm string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	idx := &Index{byKey: make(map[Key]string)}
	seen := make(map[string]bool)

	for _, rec := range comprehensive {
		eras, err := expandEras(rec)
		if err != nil {
			logger.Error("skipping unreconcilable member record",
				"member", rec.Name,
				"member_id", rec.Code,
				"error", err,
			)
			continue
		}
		if !seen[rec.Code] {
			seen[rec.Code] = true
			idx.members = append(idx.members, models.Member{ID: rec.Code, Name: rec.Name})
		}
		for _, era := range eras {
			idx.register(Key{Name: rec.Name, Term: era.Term}, rec.Code, logger)
			idx.eras = append(idx.eras, era)
		}
	}

	for _, rec := range active {
		for _, key := range activeKeys(rec, currentTerm) {
			if _, ok := idx.byKey[key]; ok {
				continue
			}
			idx.byKey[key] = rec.Code
			idx.eras = append(idx.eras, models.MemberEraRecord{
				MemberID:     rec.Code,
				Term:         key.Term,
				Name:         rec.Name,
				Party:        rec.Party,
				District:     rec.District,
				DistrictType: rec.DistrictType,
				Role:         rec.Role,
			})
			if !seen[rec.Code] {
				seen[rec.Code] = true
				idx.members = append(idx.members, models.Member{ID: rec.Code, Name: rec.Name})
			}
		}
	}

	if len(idx.byKey) == 0 {
		return nil, domainerrors.New(domainerrors.CodeValidation, "member feeds produced no identities")
	}
	return idx, nil
}

// register records a key, keeping the first registration on conflict. The
// key space is unique by contract; a duplicate is a data-entry problem to
// surface, not to silently resolve.
func (x *Index) register(key Key, memberID string, logger *slog.Logger) {
	if existing, ok := x.byKey[key]; ok {
		if existing != memberID {
			logger.Warn("conflicting member identity registration",
				"member", key.Name,
				"term", key.Term,
				"existing_id", existing,
				"new_id", memberID,
			)
		}
		return
	}
	x.byKey[key] = memberID
}

// Resolve looks up the member id for a display name within a term.
// The boolean is false on a miss; the caller decides whether the dependent
// record is dropped.
func (x *Index) Resolve(name, term string) (string, bool) {
	id, ok := x.byKey[Key{Name: name, Term: term}]
	return id, ok
}

// Members returns the canonical member rows.
func (x *Index) Members() []models.Member {
	out := make([]models.Member, len(x.members))
	copy(out, x.members)
	return out
}

// Eras returns every per-term era record produced during resolution.
func (x *Index) Eras() []models.MemberEraRecord {
	out := make([]models.MemberEraRecord, len(x.eras))
	copy(out, x.eras)
	return out
}

// Len reports the number of distinct (name, term) keys.
func (x *Index) Len() int { return len(x.byKey) }

// expandEras zips one comprehensive-feed row's parallel lists into era
// records, realigning the district list and collapsing duplicate term
// entries first.
func expandEras(rec models.RawMemberRecord) ([]models.MemberEraRecord, error) {
	divs := pstrings.SplitKeep(rec.DistrictTypes, "/")
	terms := pstrings.SplitTrim(rec.Terms, ",")
	if len(terms) == 0 {
		return nil, domainerrors.New(domainerrors.CodeValidation, "record has no term labels")
	}

	if len(terms) == 1 {
		// Single term: the multi-valued fields are used verbatim.
		return []models.MemberEraRecord{{
			MemberID:     rec.Code,
			Term:         termLabel(terms[0]),
			Name:         rec.Name,
			Party:        rec.Parties,
			District:     rec.Districts,
			DistrictType: rec.DistrictTypes,
			Role:         rec.Role,
		}}, nil
	}

	parties := pstrings.SplitKeep(rec.Parties, "/")
	districts := pstrings.SplitKeep(rec.Districts, "/")
	if districts == nil {
		districts = make([]string, len(divs))
	}

	terms, divs, parties, districts = dropDuplicateTerm(terms, divs, parties, districts)

	// Districtless terms shorten the district list; re-align by inserting a
	// null at each such term's position before zipping.
	if len(divs) > len(districts) {
		realigned := make([]string, 0, len(divs))
		di := 0
		for _, div := range divs {
			if districtlessTypes[div] {
				realigned = append(realigned, "")
				continue
			}
			if di < len(districts) {
				realigned = append(realigned, districts[di])
				di++
			}
		}
		districts = realigned
	}

	if len(divs) != len(terms) || len(districts) != len(terms) {
		return nil, domainerrors.Newf(domainerrors.CodeValidation,
			"unreconcilable parallel lists: %d terms, %d district types, %d districts",
			len(terms), len(divs), len(districts))
	}

	eras := make([]models.MemberEraRecord, 0, len(terms))
	for i, t := range terms {
		label := termLabel(t)
		if label == ConstituentAssembly {
			// The source rows for constituent-assembly members are one party
			// short; the first party entry covers that term.
			parties = append(parties, parties[0])
		}
		if i >= len(parties) {
			return nil, domainerrors.Newf(domainerrors.CodeValidation,
				"party list exhausted at term %s", label)
		}
		eras = append(eras, models.MemberEraRecord{
			MemberID:     rec.Code,
			Term:         label,
			Name:         rec.Name,
			Party:        parties[i],
			District:     districts[i],
			DistrictType: divs[i],
			Role:         rec.Role,
		})
	}
	return eras, nil
}

// dropDuplicateTerm removes one position of a term label that appears exactly
// twice, a known data-entry artifact in the comprehensive feed. The parallel
// lists shrink together so later zipping stays aligned; the district list
// only shrinks when it is long enough to contain the duplicate position.
func dropDuplicateTerm(terms, divs, parties, districts []string) ([]string, []string, []string, []string) {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	for i, t := range terms {
		if counts[t] != 2 {
			continue
		}
		terms = append(terms[:i:i], terms[i+1:]...)
		if i < len(divs) {
			divs = append(divs[:i:i], divs[i+1:]...)
		}
		if i < len(parties) {
			parties = append(parties[:i:i], parties[i+1:]...)
		}
		if len(districts) >= len(terms)+1 && i < len(districts) {
			districts = append(districts[:i:i], districts[i+1:]...)
		}
		break
	}
	return terms, divs, parties, districts
}

// activeKeys expands one current-members row into the identity keys it may
// introduce: first-term members key to the configured current term, returning
// members to each of their listed terms.
func activeKeys(rec models.RawActiveMemberRecord, currentTerm string) []Key {
	if rec.Reelection == models.ReelectionFirstTerm {
		return []Key{{Name: rec.Name, Term: currentTerm}}
	}
	labels := pstrings.SplitTrim(rec.Terms, ",")
	keys := make([]Key, 0, len(labels))
	for _, l := range labels {
		keys = append(keys, Key{Name: rec.Name, Term: termLabel(l)})
	}
	return keys
}

// termLabel normalizes a raw term label: "제21대" becomes "21"; the
// constituent-assembly label stays as-is.
func termLabel(raw string) string {
	if raw == ConstituentAssembly || raw == "" {
		return raw
	}
	runes := []rune(raw)
	if len(runes) >= 3 && runes[0] == '제' && runes[len(runes)-1] == '대' {
		return string(runes[1 : len(runes)-1])
	}
	return raw
}
