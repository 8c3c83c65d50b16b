package analysis

// Every result carries an Error annotation. A failed call returns the zero
// value of its result with Error set; callers never receive a Go error.

// SkillCount is one ranked skill
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SkillAnalysis is the output of an aggregator run
type SkillAnalysis struct {
	Skills     map[string]int            `json:"skills"`
	Ranked     []SkillCount              `json:"ranked"`
	TotalJobs  int                       `json:"total_jobs"`
	RoleSkills map[string]map[string]int `json:"role_skills"`
	RunID      string                    `json:"run_id,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

func (SkillAnalysis) withError(msg string) SkillAnalysis {
	return SkillAnalysis{
		Skills:     map[string]int{},
		Ranked:     []SkillCount{},
		RoleSkills: map[string]map[string]int{},
		Error:      msg,
	}
}

type SkillDemandEntry struct {
	Skill      string  `json:"skill"`
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"percentage"`
}

type SkillDemand struct {
	Role   string             `json:"role"`
	Skills []SkillDemandEntry `json:"skills"`
	Total  int                `json:"total"`
	Error  string             `json:"error,omitempty"`
}

func (SkillDemand) withError(msg string) SkillDemand {
	return SkillDemand{Skills: []SkillDemandEntry{}, Error: msg}
}

// VolumeTrend is a date-ordered series of posting counts
type VolumeTrend struct {
	Dates  []string `json:"dates"`
	Counts []int    `json:"counts"`
	Error  string   `json:"error,omitempty"`
}

func (VolumeTrend) withError(msg string) VolumeTrend {
	return VolumeTrend{Dates: []string{}, Counts: []int{}, Error: msg}
}

type SalaryStat struct {
	Role      string  `json:"role"`
	AvgSalary float64 `json:"avg_salary"`
	AvgMin    float64 `json:"avg_min"`
	AvgMax    float64 `json:"avg_max"`
	Count     int     `json:"count"`
}

type SalaryByRole struct {
	Rows  []SalaryStat `json:"rows"`
	Error string       `json:"error,omitempty"`
}

func (SalaryByRole) withError(msg string) SalaryByRole {
	return SalaryByRole{Rows: []SalaryStat{}, Error: msg}
}

// NamedCount is a (label, count) pair from a distribution
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Distribution struct {
	Items []NamedCount `json:"items"`
	Total int          `json:"total"`
	Error string       `json:"error,omitempty"`
}

func (Distribution) withError(msg string) Distribution {
	return Distribution{Items: []NamedCount{}, Error: msg}
}

type HistogramBin struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type SalaryHistogram struct {
	Bins  []HistogramBin `json:"bins"`
	Min   float64        `json:"min"`
	Max   float64        `json:"max"`
	Width float64        `json:"width"`
	Total int            `json:"total"`
	Error string         `json:"error,omitempty"`
}

func (SalaryHistogram) withError(msg string) SalaryHistogram {
	return SalaryHistogram{Bins: []HistogramBin{}, Error: msg}
}

type SkillPair struct {
	SkillA string `json:"skill_a"`
	SkillB string `json:"skill_b"`
	Count  int    `json:"count"`
}

type GraphNode struct {
	ID        string `json:"id"`
	Frequency int    `json:"frequency"`
}

type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

type SkillCorrelation struct {
	Mode  CorrelationMode `json:"mode"`
	Pairs []SkillPair     `json:"pairs,omitempty"`
	Nodes []GraphNode     `json:"nodes,omitempty"`
	Edges []GraphEdge     `json:"edges,omitempty"`
	Error string          `json:"error,omitempty"`
}

func (SkillCorrelation) withError(msg string) SkillCorrelation {
	return SkillCorrelation{Error: msg}
}

type MarketSummary struct {
	TotalPostings  int     `json:"total_postings"`
	Companies      int     `json:"companies"`
	Locations      int     `json:"locations"`
	UniqueTitles   int     `json:"unique_titles"`
	WithSalary     int     `json:"with_salary"`
	AvgSalaryMin   float64 `json:"avg_salary_min"`
	AvgSalaryMax   float64 `json:"avg_salary_max"`
	RecentPostings int     `json:"recent_postings"`
	RecentDays     int     `json:"recent_days"`
	Error          string  `json:"error,omitempty"`
}

func (MarketSummary) withError(msg string) MarketSummary {
	return MarketSummary{Error: msg}
}
