package domain

import (
	"context"
	"strings"
	"time"
)

// FresherDetails is filled for candidates with no professional experience.
type FresherDetails struct {
	Degree    string `json:"degree"`
	Domain    string `json:"domain"`
	CGPA      string `json:"cgpa"`
	Marks12th string `json:"marks_12th"`
	Marks10th string `json:"marks_10th"`
}

// ExperienceDetails is filled for candidates with at least one year of experience.
type ExperienceDetails struct {
	LastCompany       string `json:"last_company"`
	YearsInCompany    int    `json:"years_in_company" validate:"min=0,max=50"`
	PositionInCompany string `json:"position_in_company"`
}

// Candidate is the form submitted by the person applying.
type Candidate struct {
	Name              string             `json:"name" validate:"required"`
	Email             string             `json:"email" validate:"required,candidate_email"`
	Phone             string             `json:"phone" validate:"required,digits"`
	YearsExp          int                `json:"years_exp" validate:"min=0,max=80"`
	DesiredPositions  []string           `json:"desired_positions" validate:"min=1"`
	Location          string             `json:"location" validate:"required"`
	TechStack         []string           `json:"tech_stack" validate:"min=1"`
	LinkedIn          string             `json:"linkedin,omitempty"`
	GitHub            string             `json:"github,omitempty"`
	PreferredLocation string             `json:"preferred_location,omitempty"`
	Fresher           *FresherDetails    `json:"fresher,omitempty"`
	Experience        *ExperienceDetails `json:"experience,omitempty"`
}

// IsFresher reports whether the candidate has no years of experience.
func (c Candidate) IsFresher() bool {
	return c.YearsExp == 0
}

// Normalize trims free-text fields, cleans list fields and keeps exactly one of
// the fresher/experience branches depending on years of experience.
func (c Candidate) Normalize() Candidate {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Location = strings.TrimSpace(c.Location)
	c.LinkedIn = strings.TrimSpace(c.LinkedIn)
	c.GitHub = strings.TrimSpace(c.GitHub)
	c.PreferredLocation = strings.TrimSpace(c.PreferredLocation)
	c.DesiredPositions = uniqueNonEmpty(c.DesiredPositions)
	c.TechStack = uniqueNonEmpty(c.TechStack)

	if c.IsFresher() {
		if c.Fresher == nil {
			c.Fresher = &FresherDetails{}
		} else {
			f := *c.Fresher
			c.Fresher = &f
		}
		c.Experience = nil
	} else {
		if c.Experience == nil {
			c.Experience = &ExperienceDetails{}
		} else {
			e := *c.Experience
			c.Experience = &e
		}
		c.Fresher = nil
	}
	return c
}

// uniqueNonEmpty trims entries, drops blanks and removes duplicates while
// preserving first-seen order.
func uniqueNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// CandidateRecord is the anonymized audit entry written to the candidate log.
type CandidateRecord struct {
	ID                string   `json:"id"`
	NameHash          string   `json:"name_hash"`
	EmailHash         string   `json:"email_hash"`
	PhoneHash         string   `json:"phone_hash"`
	YearsExp          int      `json:"years_exp"`
	DesiredPositions  []string `json:"desired_positions"`
	Location          string   `json:"location"`
	TechStack         []string `json:"tech_stack"`
	PreferredLocation string   `json:"preferred_location,omitempty"`
	CreatedAt         string   `json:"created_at"`

	// Fresher fields
	Degree    *string `json:"degree,omitempty"`
	Domain    *string `json:"domain,omitempty"`
	CGPA      *string `json:"cgpa,omitempty"`
	Marks12th *string `json:"marks_12th,omitempty"`
	Marks10th *string `json:"marks_10th,omitempty"`

	// Experience fields
	LastCompany       *string `json:"last_company,omitempty"`
	YearsInCompany    *int    `json:"years_in_company,omitempty"`
	PositionInCompany *string `json:"position_in_company,omitempty"`
}

// Created parses CreatedAt, returning the zero time when it is malformed.
func (r CandidateRecord) Created() time.Time {
	t, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

type CandidateLogRepository interface {
	Append(ctx context.Context, record CandidateRecord) error
	List(ctx context.Context) ([]CandidateRecord, error)
}

type ExportUsecase interface {
	ExportCandidates(ctx context.Context, format string) ([]byte, string, error)
}

// FormOptions lists the choices offered by the candidate form.
type FormOptions struct {
	JobRoles          []string `json:"job_roles"`
	CommonSkills      []string `json:"common_skills"`
	MaxYearsExp       int      `json:"max_years_exp"`
	MaxYearsInCompany int      `json:"max_years_in_company"`
}

var JobRoles = []string{
	"Software Engineer",
	"Data Scientist",
	"Machine Learning Engineer",
	"Full Stack Developer",
	"Backend Developer",
	"Frontend Developer",
	"DevOps Engineer",
	"Cloud Engineer",
	"QA Engineer",
	"Product Manager",
}

var CommonSkills = []string{
	"Python", "Java", "JavaScript", "C++", "React",
	"Node.js", "Django", "SQL", "AWS", "Docker",
}

func DefaultFormOptions() FormOptions {
	return FormOptions{
		JobRoles:          JobRoles,
		CommonSkills:      CommonSkills,
		MaxYearsExp:       80,
		MaxYearsInCompany: 50,
	}
}
