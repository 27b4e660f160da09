package models

// Resume is a user's resume document, one per account
type Resume struct {
	Summary    string            `json:"summary"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
}

// EducationEntry is one degree or certification line
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ExperienceEntry is one role held at a company
type ExperienceEntry struct {
	Role     string `json:"role"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
	Details  string `json:"details"`
}

// ProjectEntry is one portfolio project
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EmptyResume returns the default document served before a user saves one.
// Slices are non-nil so they serialize as empty arrays.
func EmptyResume() *Resume {
	return &Resume{
		Skills:     []string{},
		Education:  []EducationEntry{},
		Experience: []ExperienceEntry{},
		Projects:   []ProjectEntry{},
	}
}

// Normalize replaces nil sections with empty ones so stored documents
// round-trip as arrays rather than nulls.
func (r *Resume) Normalize() {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
}

// ResumeDownloadResponse wraps the rendered printable document
type ResumeDownloadResponse struct {
	HTML string `json:"html"`
}
