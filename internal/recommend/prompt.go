package recommend

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
)

type promptJob struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description []string `json:"description"`
}

type promptCertification struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func joinOrUnspecified(items []string) string {
	return orUnspecified(strings.Join(items, ", "))
}

func buildRecommendationPrompt(p Profile, jobs []catalog.Job, certs []catalog.Certification) (string, error) {
	pj := make([]promptJob, 0, len(jobs))
	for _, j := range jobs {
		pj = append(pj, promptJob{ID: j.ID, Title: j.Title, Company: j.CompanyName, Location: j.Location, Description: j.Description})
	}
	pc := make([]promptCertification, 0, len(certs))
	for _, c := range certs {
		pc = append(pc, promptCertification{ID: c.ID, Title: c.Title, Description: c.Description})
	}

	jobsJSON, err := json.Marshal(pj)
	if err != nil {
		return "", fmt.Errorf("marshal jobs: %w", err)
	}
	certsJSON, err := json.Marshal(pc)
	if err != nil {
		return "", fmt.Errorf("marshal certifications: %w", err)
	}

	return fmt.Sprintf(`You are the AI matchmaker of the I-CAN career platform.
The user's current role is: %s.
They want to become a: %s.
Their current skills are: %s.
They want to learn: %s.

Available jobs (JSON):
%s

Available certifications (JSON):
%s

Pick the jobs and certifications that genuinely help this user reach their goal.
Leave out anything irrelevant entirely; do not include it with a low score.
Order the picks from most to least relevant and return at most %d of them.
For each pick give a short reason of under 25 words addressed to the user.

Return only a JSON array, no markdown and no other text, in this shape:
[{"id": number, "type": "job" | "certification", "reason": string}]`,
		orUnspecified(p.CurrentJob),
		orUnspecified(p.DesiredJob),
		joinOrUnspecified(p.CurrentSkills),
		joinOrUnspecified(p.DesiredSkills),
		jobsJSON,
		certsJSON,
		MaxBatch,
	), nil
}
