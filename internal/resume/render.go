package resume

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/lernify/road-api/internal/models"
)

var resumeTemplate = template.Must(template.New("resume").Parse(`<html>
<head><meta charset='utf-8'><title>Resume</title></head>
<body style='font-family: Arial, sans-serif; padding: 24px;'>
  <h1 style='margin:0'>{{.FirstName}} {{.LastName}}</h1>
  <p style='color:#555;margin:4px 0'>{{.Email}} &#8226; {{.Phone}}</p>
  <h2>Summary</h2>
  <p>{{.Summary}}</p>
  <h2>Skills</h2>
  <p>{{.Skills}}</p>
  <h2>Education</h2>
  <ul>{{range .Education}}<li><strong>{{.Degree}}</strong> - {{.Institution}} ({{.Year}})</li>{{end}}</ul>
  <h2>Experience</h2>
  <ul>{{range .Experience}}<li><strong>{{.Role}}</strong> - {{.Company}} ({{.Duration}})<br/>{{.Details}}</li>{{end}}</ul>
  <h2>Projects</h2>
  <ul>{{range .Projects}}<li><strong>{{.Name}}</strong>: {{.Description}}</li>{{end}}</ul>
</body>
</html>`))

type renderData struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Summary    string
	Skills     string
	Education  []models.EducationEntry
	Experience []models.ExperienceEntry
	Projects   []models.ProjectEntry
}

// RenderHTML builds the printable resume document. All user supplied fields
// pass through html/template so markup in resume content cannot inject into
// the page.
func RenderHTML(user *models.User, r *models.Resume) (string, error) {
	data := renderData{
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Phone:      user.Phone,
		Summary:    r.Summary,
		Skills:     strings.Join(r.Skills, ", "),
		Education:  r.Education,
		Experience: r.Experience,
		Projects:   r.Projects,
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render resume: %w", err)
	}
	return buf.String(), nil
}
