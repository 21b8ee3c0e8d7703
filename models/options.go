package models

// SkillOptions are the skills offered by the profile form
var SkillOptions = []string{
	"Frontend Development",
	"Backend Development",
	"Mobile Development",
	"UI/UX Design",
	"Data Science",
	"Machine Learning",
	"Marketing",
	"Sales",
	"Product Management",
	"Business Development",
	"Finance",
	"Operations",
	"Content Creation",
	"Social Media",
	"SEO/SEM",
	"Project Management",
	"DevOps",
	"Blockchain",
	"AI/ML",
	"Cybersecurity",
}

// InterestOptions are the interests offered by the profile form
var InterestOptions = []string{
	"FinTech",
	"HealthTech",
	"EdTech",
	"E-commerce",
	"SaaS",
	"Gaming",
	"Social Media",
	"Sustainability",
	"AI/ML",
	"Blockchain",
	"IoT",
	"AR/VR",
	"Robotics",
	"Food & Beverage",
	"Travel",
	"Real Estate",
	"Fashion",
	"Sports",
	"Entertainment",
	"Productivity",
}

// CapitalRanges are the budget buckets a profile can pick from
var CapitalRanges = []string{
	"$0 - $1K",
	"$1K - $5K",
	"$5K - $10K",
	"$10K - $25K",
	"$25K - $50K",
	"$50K - $100K",
	"$100K+",
}

// ViabilityTier buckets a viability score for display
type ViabilityTier string

const (
	TierExcellent ViabilityTier = "excellent"
	TierGood      ViabilityTier = "good"
	TierFair      ViabilityTier = "fair"
	TierPoor      ViabilityTier = "poor"
)

// ViabilityThresholds maps each tier to its minimum score
var ViabilityThresholds = map[ViabilityTier]int{
	TierExcellent: 80,
	TierGood:      60,
	TierFair:      40,
	TierPoor:      0,
}

// TierFor returns the tier a viability score falls in
func TierFor(score int) ViabilityTier {
	switch {
	case score >= ViabilityThresholds[TierExcellent]:
		return TierExcellent
	case score >= ViabilityThresholds[TierGood]:
		return TierGood
	case score >= ViabilityThresholds[TierFair]:
		return TierFair
	default:
		return TierPoor
	}
}
