package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/metrics"
)

const adviceApology = "I'm sorry, I encountered an error trying to process your request. Please check your connection or API key and try again."

// CVReader turns an uploaded CV into text.
type CVReader interface {
	Text(ctx context.Context, key, mime string) (string, error)
}

type AdviceRequest struct {
	Message     string
	CVObjectKey string
	CVMimeType  string
}

// Coach gives career advice to job seekers. A nil agent means offline.
type Coach struct {
	agent Agent
	cvs   CVReader
	opts  options
}

func NewCoach(agent Agent, cvs CVReader, opts ...Option) *Coach {
	return &Coach{agent: agent, cvs: cvs, opts: buildOptions(opts)}
}

// Advise answers req for user in markdown. Model failures produce an apology
// rather than an error; only a wrong role or a cancelled context fail.
func (c *Coach) Advise(ctx context.Context, user catalog.User, req AdviceRequest) (string, error) {
	if !user.Role.IsJobSeeker() {
		return "", ErrWrongRole
	}
	log := logging.Ctx(ctx)

	if c.agent == nil {
		if err := sleep(ctx, c.opts.mockDelay); err != nil {
			return "", err
		}
		metrics.AdvisorReplies.WithLabelValues("advice", "mock").Inc()
		return mockAdvice(user), nil
	}

	prompt := buildAdvicePrompt(user, c.cvNote(ctx, req), req.Message)
	answer, err := retry(ctx, c.opts.attempts, func() (string, error) {
		return c.agent.Ask(ctx, strconv.Itoa(user.ID), prompt)
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Error().Err(err).Int("user_id", user.ID).Msg("career advice call failed")
		metrics.AdvisorReplies.WithLabelValues("advice", "apology").Inc()
		return adviceApology, nil
	}
	metrics.AdvisorReplies.WithLabelValues("advice", "remote").Inc()
	return answer, nil
}

func (c *Coach) cvNote(ctx context.Context, req AdviceRequest) string {
	if req.CVObjectKey == "" {
		return "The user has not uploaded a CV."
	}
	if c.cvs == nil {
		return "The user has uploaded a CV but it is not available. Assume its content is relevant to their profile."
	}

	text, err := c.cvs.Text(ctx, req.CVObjectKey, req.CVMimeType)
	if err != nil || strings.TrimSpace(text) == "" {
		logging.Ctx(ctx).Warn().Err(err).Str("object_key", req.CVObjectKey).Msg("could not read uploaded cv")
		return "The user has uploaded a CV but it could not be read. Assume its content is relevant to their profile."
	}
	return "The user's CV reads:\n" + text
}

func buildAdvicePrompt(u catalog.User, cvNote, message string) string {
	return fmt.Sprintf(`A user named %s is asking for career advice.
Their current role is: %s.
They want to become a: %s.
Their current skills are: %s.
They want to learn: %s.
%s

The user's message is: %q`,
		u.Name,
		orNotSpecified(u.CurrentJob),
		orNotSpecified(u.DesiredJob),
		joinOrNotSpecified(u.CurrentSkills),
		joinOrNotSpecified(u.DesiredSkills),
		cvNote,
		message,
	)
}

func mockAdvice(u catalog.User) string {
	return fmt.Sprintf(`**Mock Response:**

Hello %[1]s! Based on your interest in **%[2]s** and your message, here are some suggestions:

*   **Focus on Core Skills:** For a %[2]s, it's crucial to master skills like AI/ML Fundamentals, Python, and data structures. Your profile shows you're already skilled in %[3]s, which is a great start.
*   **CV Improvement:** Add a project section to your CV. If you uploaded one, I would suggest making the descriptions more results-oriented (e.g., 'Increased efficiency by 15%% using X algorithm').
*   **Next Steps:** Consider taking a specialized course in Natural Language Processing, as it aligns with your goals.`,
		u.Name, u.DesiredJob, strings.Join(u.CurrentSkills, ", "))
}
