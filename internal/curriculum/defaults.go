package curriculum

import "github.com/lernify/road-api/internal/models"

// DefaultTracks returns the built-in curriculum used when no track files
// are configured. Order here is the order domains are listed to clients.
func DefaultTracks() []Track {
	return []Track{
		{
			Name:        "Frontend Development",
			Description: "Build interfaces with HTML, CSS, JavaScript and React.",
			Lessons: []Lesson{
				{
					Title:       "HTML & CSS Basics",
					Description: "Learn structure and styling.",
					Videos: []string{
						"https://www.youtube.com/watch?v=G3e-cpL7ofc",
						"https://www.youtube.com/watch?v=1Rs2ND1ryYc",
					},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "HTML stands for?", Options: []string{"HyperText Markup Language", "Hyperlinks and Text Markup Language"}, Correct: 0},
						{Prompt: "CSS is used for?", Options: []string{"Styling", "Database"}, Correct: 0},
					}},
				},
				{
					Title:       "JavaScript Fundamentals",
					Description: "Variables, functions, DOM.",
					Videos:      []string{"https://www.youtube.com/watch?v=PkZNo7MFNFg"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "typeof null is?", Options: []string{"object", "null"}, Correct: 0},
					}},
				},
				{
					Title:       "React Basics",
					Description: "Components and hooks.",
					Videos:      []string{"https://www.youtube.com/watch?v=bMknfKXIFA8"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "React is a ...", Options: []string{"library", "framework"}, Correct: 0},
					}},
				},
			},
		},
		{
			Name:        "Backend Development",
			Description: "Design APIs and work with databases.",
			Lessons: []Lesson{
				{
					Title:       "HTTP & REST",
					Description: "Understand APIs.",
					Videos:      []string{"https://www.youtube.com/watch?v=Q-BpqyOT3a8"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "HTTP status 200 means?", Options: []string{"OK", "Not Found"}, Correct: 0},
					}},
				},
				{
					Title:       "Databases",
					Description: "SQL vs NoSQL.",
					Videos:      []string{"https://www.youtube.com/watch?v=ztHopE5Wnpc"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "MongoDB is ...", Options: []string{"NoSQL", "SQL"}, Correct: 0},
					}},
				},
			},
		},
		{
			Name:        "AI/ML",
			Description: "Python, data handling and model basics.",
			Lessons: []Lesson{
				{
					Title:       "Python Basics",
					Description: "Syntax and data structures.",
					Videos:      []string{"https://www.youtube.com/watch?v=_uQrJ0TkZlc"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "Which is a list?", Options: []string{"[1,2,3]", "(1,2,3)"}, Correct: 0},
					}},
				},
				{
					Title:       "NumPy & Pandas",
					Description: "Data handling.",
					Videos:      []string{"https://www.youtube.com/watch?v=vmEHCJofslg"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "Pandas primary structure?", Options: []string{"DataFrame", "Tensor"}, Correct: 0},
					}},
				},
			},
		},
		{
			Name:        "Data Science",
			Description: "Statistics and analytical tooling.",
			Lessons: []Lesson{
				{
					Title:       "Statistics Fundamentals",
					Description: "Descriptive and inferential statistics.",
					Videos:      []string{"https://www.youtube.com/watch?v=xxpc-HPKN28"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "Mean of 2, 4, 6 is?", Options: []string{"4", "6"}, Correct: 0},
					}},
				},
				{
					Title:       "SQL for Analytics",
					Description: "Querying and aggregating data.",
					Videos:      []string{"https://www.youtube.com/watch?v=HXV3zeQKqGY"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "Which clause groups rows?", Options: []string{"GROUP BY", "ORDER BY"}, Correct: 0},
					}},
				},
			},
		},
		{
			Name:        "DevOps & Cloud",
			Description: "Linux, containers and delivery pipelines.",
			Lessons: []Lesson{
				{
					Title:       "Linux Essentials",
					Description: "Shell, files, and processes.",
					Videos:      []string{"https://www.youtube.com/watch?v=sWbUDq4S6Y8"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "Command to list files?", Options: []string{"ls", "cd"}, Correct: 0},
					}},
				},
				{
					Title:       "Docker Fundamentals",
					Description: "Images and containers.",
					Videos:      []string{"https://www.youtube.com/watch?v=fqMOX6JJhGo"},
					Quiz: models.QuestionSet{Questions: []models.Question{
						{Prompt: "A Docker image is ...", Options: []string{"a template for containers", "a running process"}, Correct: 0},
					}},
				},
			},
		},
	}
}
