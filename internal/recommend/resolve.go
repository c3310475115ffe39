package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
)

// MaxBatch caps the number of recommendations in one batch.
const MaxBatch = 10

type rawEntry struct {
	ID     *float64 `json:"id"`
	Type   *string  `json:"type"`
	Reason *string  `json:"reason"`
}

// Ref points at a catalog entry by variant and id.
type Ref struct {
	Kind   Kind
	ID     int
	Reason string
}

// Resolve parses a JSON array of {id, type, reason} objects and resolves each
// against the supplied catalogs, keeping the model's order. Malformed,
// unresolvable and duplicate entries are skipped and counted in dropped. Only
// a payload that is not a JSON array at all is reported as an error.
func Resolve(raw string, jobs []catalog.Job, certs []catalog.Certification) (recs []Recommendation, dropped int, err error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &entries); err != nil {
		return []Recommendation{}, 0, fmt.Errorf("decode recommendation list: %w", err)
	}

	refs := make([]Ref, 0, len(entries))
	for _, e := range entries {
		ref, ok := parseEntry(e)
		if !ok {
			dropped++
			continue
		}
		refs = append(refs, ref)
	}

	recs, unresolved := ResolveRefs(refs, jobs, certs)
	return recs, dropped + unresolved, nil
}

func parseEntry(data json.RawMessage) (Ref, bool) {
	var e rawEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return Ref{}, false
	}
	if e.ID == nil || e.Type == nil || e.Reason == nil {
		return Ref{}, false
	}
	id := *e.ID
	if id <= 0 || id != math.Trunc(id) || id > math.MaxInt32 {
		return Ref{}, false
	}
	kind, err := ParseKind(*e.Type)
	if err != nil {
		return Ref{}, false
	}
	reason := strings.TrimSpace(*e.Reason)
	if reason == "" {
		return Ref{}, false
	}
	return Ref{Kind: kind, ID: int(id), Reason: reason}, true
}

// ResolveRefs turns refs into recommendations, dropping dangling ids and
// repeated keys, and stops at MaxBatch items.
func ResolveRefs(refs []Ref, jobs []catalog.Job, certs []catalog.Certification) (recs []Recommendation, dropped int) {
	recs = make([]Recommendation, 0, min(len(refs), MaxBatch))
	seen := make(map[Key]bool, len(refs))

	for i, ref := range refs {
		if len(recs) == MaxBatch {
			dropped += len(refs) - i
			break
		}
		key := Key{Kind: ref.Kind, ID: ref.ID}
		if seen[key] {
			dropped++
			continue
		}

		var (
			rec Recommendation
			ok  bool
		)
		switch ref.Kind {
		case KindJob:
			var j catalog.Job
			if j, ok = catalog.FindJob(jobs, ref.ID); ok {
				rec = NewJob(j, ref.Reason)
			}
		case KindCertification:
			var c catalog.Certification
			if c, ok = catalog.FindCertification(certs, ref.ID); ok {
				rec = NewCertification(c, ref.Reason)
			}
		}
		if !ok {
			dropped++
			continue
		}

		seen[key] = true
		recs = append(recs, rec)
	}
	return recs, dropped
}
