package extract

import (
	"regexp"
	"strings"
)

// canonicalTech maps lower-case spellings to display names.
var canonicalTech = map[string]string{
	"python": "Python", "javascript": "JavaScript", "js": "JavaScript",
	"typescript": "TypeScript", "ts": "TypeScript", "java": "Java",
	"c#": "C#", "csharp": "C#", "c++": "C++", "cpp": "C++", "c": "C",
	"go": "Go", "golang": "Go", "ruby": "Ruby", "php": "PHP", "swift": "Swift",
	"kotlin": "Kotlin", "rust": "Rust", "scala": "Scala",
	"react": "React", "reactjs": "React", "react.js": "React",
	"angular": "Angular", "vue": "Vue.js", "vuejs": "Vue.js", "vue.js": "Vue.js",
	"django": "Django", "flask": "Flask", "fastapi": "FastAPI", "spring": "Spring",
	"spring boot": "Spring Boot", "asp.net": "ASP.NET", ".net": ".NET", "dotnet": ".NET",
	"laravel": "Laravel", "rails": "Ruby on Rails", "ruby on rails": "Ruby on Rails",
	"node": "Node.js", "nodejs": "Node.js", "node.js": "Node.js", "express": "Express",
	"mysql": "MySQL", "postgresql": "PostgreSQL", "postgres": "PostgreSQL",
	"mongodb": "MongoDB", "mongo": "MongoDB", "sqlite": "SQLite", "redis": "Redis",
	"oracle": "Oracle", "sql server": "SQL Server", "mssql": "SQL Server",
	"dynamodb": "DynamoDB", "sql": "SQL", "graphql": "GraphQL",
	"aws": "AWS", "azure": "Azure", "gcp": "Google Cloud", "google cloud": "Google Cloud",
	"firebase": "Firebase", "heroku": "Heroku", "netlify": "Netlify",
	"docker": "Docker", "kubernetes": "Kubernetes", "k8s": "Kubernetes",
	"git": "Git", "jenkins": "Jenkins", "travis ci": "Travis CI", "jira": "Jira",
	"confluence": "Confluence", "terraform": "Terraform", "kafka": "Kafka",
	"html": "HTML", "css": "CSS", "linux": "Linux",
}

var (
	techSplitRe = regexp.MustCompile(`(?i)\s*(?:[,;/&\n|]|\band\b|\bplus\b)\s*`)
	techLeadRe  = regexp.MustCompile(`(?i)^(?:i (?:mainly |mostly |primarily )?(?:use|know|work with|code in|program in|am proficient in|have worked with)|mostly|mainly|primarily|experience with|proficient in)\s+`)
	techTailRe  = regexp.MustCompile(`(?i)\s+(?:etc|and more|and others|as well)$`)
)

var techFiller = map[string]bool{
	"etc": true, "others": true, "more": true, "some": true, "also": true, "too": true,
}

// SplitTechStack splits a free-form technology list on commas, semicolons,
// slashes, ampersands, newlines and the word "and". Entries are trimmed,
// known technologies get their canonical spelling, and duplicates are
// dropped case-insensitively keeping the first occurrence.
func SplitTechStack(s string) []string {
	s = techTailRe.ReplaceAllString(strings.TrimSpace(s), "")
	s = techLeadRe.ReplaceAllString(s, "")

	seen := make(map[string]bool)
	var out []string
	for _, part := range techSplitRe.Split(s, -1) {
		item := cleanFree(part)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if techFiller[key] || len(item) > 40 {
			continue
		}
		if canon, ok := canonicalTech[key]; ok {
			item = canon
			key = strings.ToLower(canon)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
