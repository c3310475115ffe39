// Package catalog holds the static job, certification and user tables the
// matchmaker works against. Nothing in here is mutated after start-up.
package catalog

import (
	"slices"
	"strings"
)

// Role is the portal role of a user.
type Role string

const (
	RoleGuest      Role = "GUEST"
	RoleClient     Role = "CLIENT"
	RoleHRD        Role = "HRD"
	RoleHRDPremium Role = "HRD_PREMIUM"
)

// IsJobSeeker reports whether the role may use the swipe matchmaker and the
// career coach.
func (r Role) IsJobSeeker() bool { return r == RoleClient }

// IsRecruiter reports whether the role may search for candidates.
func (r Role) IsRecruiter() bool { return r == RoleHRD || r == RoleHRDPremium }

// IsPremiumRecruiter reports whether the role has AI headhunting.
func (r Role) IsPremiumRecruiter() bool { return r == RoleHRDPremium }

// Range is an inclusive min/max amount in the smallest currency unit.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type User struct {
	ID             int      `json:"id"`
	Username       string   `json:"username"`
	Role           Role     `json:"role"`
	Name           string   `json:"name"`
	ProfilePicture string   `json:"profilePicture"`
	CurrentJob     string   `json:"currentJob,omitempty"`
	DesiredJob     string   `json:"desiredJob,omitempty"`
	CurrentSkills  []string `json:"currentSkills,omitempty"`
	DesiredSkills  []string `json:"desiredSkills,omitempty"`
	DesiredSalary  *Range   `json:"desiredSalary,omitempty"`
	Company        string   `json:"company,omitempty"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
	Budget         *Range   `json:"budget,omitempty"`
}

type Job struct {
	ID          int      `json:"id"`
	CompanyName string   `json:"companyName"`
	CompanyLogo string   `json:"companyLogo"`
	Title       string   `json:"title"`
	Description []string `json:"description"`
	Salary      int64    `json:"salary"`
	Location    string   `json:"location"`
	PostedBy    int      `json:"postedBy"`
}

type Certification struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// Catalog bundles the tables so callers can pass them around as one value.
type Catalog struct {
	Users          []User
	Jobs           []Job
	Certifications []Certification
}

// Default returns the seeded catalog.
func Default() *Catalog {
	return &Catalog{
		Users:          slices.Clone(users),
		Jobs:           slices.Clone(jobs),
		Certifications: slices.Clone(certifications),
	}
}

func (c *Catalog) User(id int) (User, bool) {
	for _, u := range c.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (c *Catalog) Job(id int) (Job, bool) {
	return FindJob(c.Jobs, id)
}

func (c *Catalog) Certification(id int) (Certification, bool) {
	return FindCertification(c.Certifications, id)
}

// JobsPerPage is the job portal page size.
const JobsPerPage = 4

// JobQuery narrows SearchJobs. The zero value matches every job.
type JobQuery struct {
	// Keyword matches title or company name, case-insensitively.
	Keyword   string
	MinSalary int64
}

func (c *Catalog) SearchJobs(q JobQuery) []Job {
	kw := strings.ToLower(strings.TrimSpace(q.Keyword))
	out := make([]Job, 0, len(c.Jobs))
	for _, j := range c.Jobs {
		if j.Salary < q.MinSalary {
			continue
		}
		if kw != "" && !strings.Contains(strings.ToLower(j.Title), kw) && !strings.Contains(strings.ToLower(j.CompanyName), kw) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Paginate returns the 1-based page of items and the page count. A page past
// the end is empty.
func Paginate[T any](items []T, page, size int) ([]T, int) {
	if size <= 0 || page < 1 {
		return nil, 0
	}
	pages := (len(items) + size - 1) / size
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, pages
	}
	return items[start:min(start+size, len(items))], pages
}

// JobSeekers returns every user with the client role.
func (c *Catalog) JobSeekers() []User {
	var out []User
	for _, u := range c.Users {
		if u.Role.IsJobSeeker() {
			out = append(out, u)
		}
	}
	return out
}

// FindJob looks a job up by id in an arbitrary slice.
func FindJob(jobs []Job, id int) (Job, bool) {
	i := slices.IndexFunc(jobs, func(j Job) bool { return j.ID == id })
	if i < 0 {
		return Job{}, false
	}
	return jobs[i], true
}

// FindCertification looks a certification up by id in an arbitrary slice.
func FindCertification(certs []Certification, id int) (Certification, bool) {
	i := slices.IndexFunc(certs, func(c Certification) bool { return c.ID == id })
	if i < 0 {
		return Certification{}, false
	}
	return certs[i], true
}
