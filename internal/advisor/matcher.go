package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/metrics"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
)

const matchApology = "I'm sorry, I couldn't find candidates at the moment. Please try again later."

// Matcher shortlists job seekers for recruiters. A nil generator means offline.
type Matcher struct {
	gen  recommend.Generator
	opts options
}

func NewMatcher(gen recommend.Generator, opts ...Option) *Matcher {
	return &Matcher{gen: gen, opts: buildOptions(opts)}
}

type candidate struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	DesiredJob    string         `json:"desiredJob"`
	CurrentSkills []string       `json:"currentSkills"`
	DesiredSkills []string       `json:"desiredSkills"`
	DesiredSalary *catalog.Range `json:"desiredSalary"`
}

// FindCandidates returns a markdown shortlist of the best 3 to 5 candidates
// for recruiter.
func (m *Matcher) FindCandidates(ctx context.Context, recruiter catalog.User, candidates []catalog.User) (string, error) {
	if !recruiter.Role.IsPremiumRecruiter() {
		return "", ErrWrongRole
	}

	if m.gen == nil {
		if err := sleep(ctx, m.opts.mockDelay); err != nil {
			return "", err
		}
		metrics.AdvisorReplies.WithLabelValues("talent", "mock").Inc()
		return mockMatches(recruiter), nil
	}

	prompt, err := buildMatchPrompt(recruiter, candidates)
	if err != nil {
		return "", err
	}

	answer, err := retry(ctx, m.opts.attempts, func() (string, error) {
		return m.gen.Generate(ctx, prompt, recommend.GenerateOptions{Operation: "talent_matches"})
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logging.Ctx(ctx).Error().Err(err).Int("user_id", recruiter.ID).Msg("talent matching call failed")
		metrics.AdvisorReplies.WithLabelValues("talent", "apology").Inc()
		return matchApology, nil
	}
	metrics.AdvisorReplies.WithLabelValues("talent", "remote").Inc()
	return recommend.StripCodeFence(answer), nil
}

func buildMatchPrompt(recruiter catalog.User, candidates []catalog.User) (string, error) {
	list := make([]candidate, len(candidates))
	for i, c := range candidates {
		list[i] = candidate{
			ID:            c.ID,
			Name:          c.Name,
			DesiredJob:    c.DesiredJob,
			CurrentSkills: c.CurrentSkills,
			DesiredSkills: c.DesiredSkills,
			DesiredSalary: c.DesiredSalary,
		}
	}
	candidatesJSON, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}

	return fmt.Sprintf(`You are an AI Headhunting assistant for HR professionals on the I-CAN platform.
An HR Manager from %s, is looking for candidates.
Their requirements are:
- Skills needed: %s
- Salary Budget: %s

Here is a list of available candidates in JSON format:
%s

Analyze the list of candidates and find the top 3-5 best matches based on the HR manager's required skills and budget.
For each match, provide the candidate's name, a match score (as a percentage), and a brief justification for why they are a good fit.
Present the final output in a clean, readable markdown format.`,
		orNotSpecified(recruiter.Company),
		joinOrNotSpecified(recruiter.RequiredSkills),
		formatBudget(recruiter.Budget),
		candidatesJSON,
	), nil
}

func formatBudget(r *catalog.Range) string {
	if r == nil {
		return notSpecified
	}
	return fmt.Sprintf("Rp %s - Rp %s", groupThousands(r.Min), groupThousands(r.Max))
}

// groupThousands renders 40000000 as 40,000,000.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func mockMatches(recruiter catalog.User) string {
	return fmt.Sprintf(`**Mock Response: Top 3 Candidate Matches for %s**

1.  **Brian (ID: 1):** High match (92%%). Strong alignment on desired role (AI Engineer) and possesses key skills like AI/ML Fundamentals. Actively seeking new opportunities.
2.  **Alice (ID: 4):** Good match (85%%). While the current role is different, the desired skills in AI Integration and the goal to switch into the field make this a promising candidate worth talking to.
3.  **Charlie (ID: 5):** Moderate match (78%%). Has a solid software development background and is looking to transition into AI. Would require some upskilling but shows high potential.`,
		recruiter.Company)
}
