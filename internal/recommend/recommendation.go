// Package recommend produces recommendation batches for the swipe matchmaker.
//
// A batch is built by prompting a text generator with the user's profile and
// the simplified job and certification catalogs, then resolving the model's
// {id, type, reason} tuples back against those catalogs. Anything the model
// returns that cannot be resolved is dropped. When no generator is configured,
// or its circuit is open, a static fallback batch is served instead.
package recommend

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
)

// Kind tags the variant of a Recommendation.
type Kind string

const (
	KindJob           Kind = "job"
	KindCertification Kind = "certification"
)

// ParseKind converts a raw type tag, returning an error for unknown values.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindJob, KindCertification:
		return k, nil
	}
	return "", fmt.Errorf("unknown recommendation type %q", s)
}

// Item is the closed set of things that can be recommended. The unexported
// method keeps implementations inside this package.
type Item interface {
	Kind() Kind
	ItemID() int
	Title() string
	item()
}

type JobItem struct{ Job catalog.Job }

func (JobItem) Kind() Kind { return KindJob }
func (i JobItem) ItemID() int { return i.Job.ID }
func (i JobItem) Title() string { return i.Job.Title }
func (JobItem) item() {}

type CertificationItem struct{ Certification catalog.Certification }

func (CertificationItem) Kind() Kind { return KindCertification }
func (i CertificationItem) ItemID() int { return i.Certification.ID }
func (i CertificationItem) Title() string { return i.Certification.Title }
func (CertificationItem) item() {}

// Recommendation is one card of a batch. It is never mutated after creation.
type Recommendation struct {
	Item   Item
	Reason string
}

func NewJob(j catalog.Job, reason string) Recommendation {
	return Recommendation{Item: JobItem{Job: j}, Reason: reason}
}

func NewCertification(c catalog.Certification, reason string) Recommendation {
	return Recommendation{Item: CertificationItem{Certification: c}, Reason: reason}
}

// Key identifies a recommendation within a batch.
type Key struct {
	Kind Kind
	ID   int
}

func (k Key) String() string { return fmt.Sprintf("%s-%d", k.Kind, k.ID) }

func (r Recommendation) Key() Key {
	return Key{Kind: r.Item.Kind(), ID: r.Item.ItemID()}
}

// Match calls the handler for r's variant. Each caller supplies one handler
// per variant, so a new variant does not compile until every site handles it.
func Match[T any](r Recommendation, job func(catalog.Job) T, cert func(catalog.Certification) T) T {
	switch it := r.Item.(type) {
	case JobItem:
		return job(it.Job)
	case CertificationItem:
		return cert(it.Certification)
	}
	panic(fmt.Sprintf("recommend: unhandled item %T", r.Item))
}

type wireRecommendation struct {
	Type    Kind   `json:"type"`
	Details any    `json:"details"`
	Reason  string `json:"reason"`
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	details := Match(r,
		func(j catalog.Job) any { return j },
		func(c catalog.Certification) any { return c },
	)
	return json.Marshal(wireRecommendation{Type: r.Item.Kind(), Details: details, Reason: r.Reason})
}
