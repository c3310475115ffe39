package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/metrics"
)

// Profile is the part of a user the recommender looks at.
type Profile struct {
	CurrentJob    string
	DesiredJob    string
	CurrentSkills []string
	DesiredSkills []string
}

func ProfileOf(u catalog.User) Profile {
	return Profile{
		CurrentJob:    u.CurrentJob,
		DesiredJob:    u.DesiredJob,
		CurrentSkills: u.CurrentSkills,
		DesiredSkills: u.DesiredSkills,
	}
}

// fallbackRefs is served, most relevant first, when no generator is reachable.
var fallbackRefs = []Ref{
	{Kind: KindJob, ID: 5, Reason: "Building predictive models here is a direct step toward the AI engineering role you want."},
	{Kind: KindCertification, ID: 2, Reason: "Cloud fundamentals underpin most AI integration work you are aiming for."},
	{Kind: KindJob, ID: 2, Reason: "Your software development background fits, and AI features increasingly ship through the frontend."},
	{Kind: KindCertification, ID: 4, Reason: "Project management skills help you lead the AI initiatives you want to join."},
}

// Source produces recommendation batches. A nil generator puts it in offline
// mode, where every batch is the static fallback.
type Source struct {
	gen       Generator
	mockDelay time.Duration
}

type Option func(*Source)

// WithMockDelay makes offline batches arrive after d, like a real call would.
func WithMockDelay(d time.Duration) Option {
	return func(s *Source) { s.mockDelay = d }
}

func NewSource(gen Generator, opts ...Option) *Source {
	s := &Source{gen: gen}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Offline reports whether the source has no generator configured.
func (s *Source) Offline() bool { return s.gen == nil }

// Recommend returns up to MaxBatch recommendations, most relevant first. The
// returned slice is always usable: on a failed call or an unparsable reply it
// is empty and the error says why; when the generator is unavailable the
// static fallback is returned with a nil error.
func (s *Source) Recommend(ctx context.Context, p Profile, jobs []catalog.Job, certs []catalog.Certification) ([]Recommendation, error) {
	log := logging.Ctx(ctx)

	if s.gen == nil {
		log.Debug().Msg("no generator configured, serving fallback recommendations")
		if err := sleepCtx(ctx, s.mockDelay); err != nil {
			return []Recommendation{}, err
		}
		return s.fallback(jobs, certs), nil
	}

	prompt, err := buildRecommendationPrompt(p, jobs, certs)
	if err != nil {
		metrics.RecommendationFetches.WithLabelValues("failed").Inc()
		return []Recommendation{}, err
	}

	raw, err := s.gen.Generate(ctx, prompt, GenerateOptions{Operation: "recommendations", JSON: true})
	if errors.Is(err, ErrUnavailable) {
		log.Warn().Err(err).Msg("generator unavailable, serving fallback recommendations")
		return s.fallback(jobs, certs), nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("recommendation call failed")
		metrics.RecommendationFetches.WithLabelValues("failed").Inc()
		return []Recommendation{}, err
	}

	recs, dropped, err := Resolve(raw, jobs, certs)
	if err != nil {
		log.Warn().Err(err).Int("raw_length", len(raw)).Msg("unparsable recommendation reply")
		metrics.RecommendationFetches.WithLabelValues("failed").Inc()
		return []Recommendation{}, err
	}
	if dropped > 0 {
		log.Info().Int("dropped", dropped).Int("kept", len(recs)).Msg("discarded recommendation entries")
		metrics.RecommendationDropped.Add(float64(dropped))
	}
	metrics.RecommendationFetches.WithLabelValues("remote").Inc()
	return recs, nil
}

func (s *Source) fallback(jobs []catalog.Job, certs []catalog.Certification) []Recommendation {
	recs, _ := ResolveRefs(fallbackRefs, jobs, certs)
	metrics.RecommendationFetches.WithLabelValues("fallback").Inc()
	return recs
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
