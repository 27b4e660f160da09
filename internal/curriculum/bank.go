package curriculum

import "github.com/lernify/road-api/internal/models"

// bankSize is the fixed number of questions in every generated assessment
const bankSize = 20

// questionBank returns the shared question set used by all assessment steps
// across all domains. Build validates it once; callers share the instance.
func questionBank() models.QuestionSet {
	return models.QuestionSet{
		Questions: []models.Question{
			{Prompt: "HTTP status 404 means?", Options: []string{"Not Found", "OK", "Server Error", "Forbidden"}, Correct: 0},
			{Prompt: "Which data structure uses FIFO order?", Options: []string{"Queue", "Stack", "Tree", "Heap"}, Correct: 0},
			{Prompt: "SQL command to fetch rows?", Options: []string{"SELECT", "INSERT", "ALTER", "GRANT"}, Correct: 0},
			{Prompt: "Git command to record changes?", Options: []string{"git commit", "git clone", "git fetch", "git stash"}, Correct: 0},
			{Prompt: "Which protocol secures HTTP traffic?", Options: []string{"TLS", "FTP", "SMTP", "UDP"}, Correct: 0},
			{Prompt: "JSON stands for?", Options: []string{"JavaScript Object Notation", "Java Standard Output Network", "Joined Serial Object Names", "JavaScript Ordered Nodes"}, Correct: 0},
			{Prompt: "Binary of decimal 5 is?", Options: []string{"101", "110", "100", "111"}, Correct: 0},
			{Prompt: "Which is a NoSQL database?", Options: []string{"MongoDB", "PostgreSQL", "MySQL", "SQLite"}, Correct: 0},
			{Prompt: "Time complexity of binary search?", Options: []string{"O(log n)", "O(n)", "O(n log n)", "O(1)"}, Correct: 0},
			{Prompt: "CSS property for text color?", Options: []string{"color", "font-style", "text-align", "background"}, Correct: 0},
			{Prompt: "Which HTTP method is idempotent?", Options: []string{"PUT", "POST", "PATCH", "CONNECT"}, Correct: 0},
			{Prompt: "Python keyword to define a function?", Options: []string{"def", "func", "lambda", "fn"}, Correct: 0},
			{Prompt: "Which port does HTTPS use by default?", Options: []string{"443", "80", "22", "8080"}, Correct: 0},
			{Prompt: "REST stands for?", Options: []string{"Representational State Transfer", "Remote Execution Standard Transport", "Request-Response State Tracking", "Resource Exchange over Secure Transport"}, Correct: 0},
			{Prompt: "Which is a JavaScript package manager?", Options: []string{"npm", "pip", "cargo", "maven"}, Correct: 0},
			{Prompt: "An index in a database speeds up?", Options: []string{"Reads", "Writes", "Backups", "Migrations"}, Correct: 0},
			{Prompt: "Which structure maps keys to values?", Options: []string{"Hash table", "Linked list", "Array", "Graph"}, Correct: 0},
			{Prompt: "Docker is used for?", Options: []string{"Containerization", "Version control", "Compilation", "Monitoring"}, Correct: 0},
			{Prompt: "Which is a relational database?", Options: []string{"PostgreSQL", "Redis", "Cassandra", "Neo4j"}, Correct: 0},
			{Prompt: "OSI layer of TCP?", Options: []string{"Transport", "Network", "Session", "Physical"}, Correct: 0},
		},
	}
}
