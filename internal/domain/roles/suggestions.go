package roles

import (
	"sort"
	"strings"
)

// Suggestion lists skills worth adding for titles containing Key
type Suggestion struct {
	Key    string   `yaml:"key" json:"key"`
	Skills []string `yaml:"skills" json:"skills"`
}

// DefaultSuggestions drive the "suggested additional skills" export column
var DefaultSuggestions = []Suggestion{
	{Key: "python developer", Skills: []string{
		"FastAPI", "Celery", "Kubernetes", "GraphQL", "Microservices",
		"CI/CD", "Redis", "Machine Learning Basics", "Azure", "GCP",
	}},
	{Key: "data scientist", Skills: []string{
		"PyTorch", "Deep Learning", "NLP", "Apache Spark", "MLflow",
		"MLOps", "Data Visualization", "Statistical Analysis", "A/B Testing",
		"Business Intelligence", "Tableau", "Power BI",
	}},
	{Key: "web developer", Skills: []string{
		"TypeScript", "Vue.js", "Next.js", "GraphQL", "Microservices",
		"Kubernetes", "MongoDB", "Redis", "Tailwind CSS", "CI/CD",
	}},
	{Key: "mobile", Skills: []string{
		"Flutter", "Swift", "Kotlin", "Native Modules", "App Performance",
		"Biometric Authentication", "Payment Gateway Integration",
		"State Management", "Firebase", "App Store Optimization",
	}},
	{Key: "ai", Skills: []string{
		"MLOps", "Model Deployment", "LLMs", "Transformers", "Generative AI",
		"Computer Vision", "Reinforcement Learning", "Model Optimization",
		"Real-time ML Inference", "MLflow", "Kubernetes for ML",
	}},
}

// Suggest returns the sorted union of suggestions whose key occurs in
// title, minus anything already in have (compared case-insensitively).
func Suggest(table []Suggestion, title string, have []string) []string {
	lowerTitle := strings.ToLower(title)
	existing := make(map[string]struct{}, len(have))
	for _, h := range have {
		existing[strings.ToLower(h)] = struct{}{}
	}

	picked := make(map[string]struct{})
	for _, s := range table {
		if s.Key == "" || !strings.Contains(lowerTitle, strings.ToLower(s.Key)) {
			continue
		}
		for _, skill := range s.Skills {
			if _, ok := existing[strings.ToLower(skill)]; ok {
				continue
			}
			picked[skill] = struct{}{}
		}
	}

	out := make([]string, 0, len(picked))
	for k := range picked {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
