package generator

// Catalogs of names and narrative text used when synthesizing opportunities.
// The pools are fixed so that a seeded run is fully reproducible.

// AccountNames is the pool of distinct account names available to a dataset.
// Requesting more records than this pool holds is a configuration error.
var AccountNames = []string{
	"TechCorp", "DataSystems Inc", "CloudVentures", "FinanceFirst", "HealthTech Solutions",
	"RetailGiant", "ManufactureCo", "EduPlatform", "LogisticsHub", "MediaGroup",
	"BioTech Labs", "AutoInnovate", "EnergyFlow", "TravelBooking Co", "FoodService Systems",
	"RealEstate Pro", "InsureTech", "LegalEase", "MarketingAI", "CyberSecure",
	"ArchitectureStudio", "Construction Plus", "Hospitality Suite", "AgriTech", "PharmaCorp",
	"Telecommunications Inc", "Gaming Studios", "Fashion Retail", "Sports Analytics", "Music Streaming",
	"Publishing House", "Chemical Industries", "Aerospace Systems", "Maritime Logistics", "Mining Corp",
	"Utilities Management", "Government Services", "Non-Profit Org", "Consulting Group", "Research Institute",
	"E-commerce Platform", "Social Network Inc", "AdTech Solutions", "Payment Processor", "Supply Chain Co",
	"HR Software", "CRM Vendor", "Analytics Platform", "Security Services", "Cloud Storage Inc",
}

// SalesReps is the pool of deal owners
var SalesReps = []string{
	"Sarah Chen", "Michael Rodriguez", "Emily Watson", "James Kim", "Lisa Anderson",
	"David Park", "Jennifer Martinez", "Robert Taylor", "Amanda Singh", "Christopher Lee",
}

// UseCases is the pool of evaluation use cases
var UseCases = []string{
	"Customer support automation",
	"Content generation and marketing",
	"Code review and development assistance",
	"Research and analysis",
	"Document processing and summarization",
	"Sales enablement and prospecting",
	"Legal document review",
	"Technical documentation",
	"Data analysis and insights",
	"Internal knowledge management",
}

// concreteNextSteps holds specific, dated actions a healthy deal shows
var concreteNextSteps = []string{
	"Schedule discovery call with security team",
	"Demo custom use case on Friday 11/8",
	"Share ROI analysis with finance stakeholder",
	"Technical deep-dive session scheduled for next week",
	"Review MSA terms with legal",
	"Present to executive committee on 11/12",
}

// vagueNextSteps holds the non-committal pool used by the vague_next_steps factor
var vagueNextSteps = []string{
	"Follow up with team",
	"Waiting on customer",
	"Check in next week",
}

// LossReasons is the pool a closed-lost deal samples from
var LossReasons = []string{
	"Chose Competitor - OpenAI",
	"Budget/Timing",
	"No Decision Made",
	"Chose Competitor - Google",
}

// Stakeholder placeholders used across the synthetic dataset
const (
	economicBuyerName     = "Jane Doe (VP Ops)"
	technicalChampionName = "John Smith (CTO)"
)

var (
	healthyCompetitors   = []string{"None identified", "OpenAI", "Google Vertex AI"}
	mediumCompetitors    = []string{"None identified", "OpenAI", "Azure OpenAI"}
	threatCompetitors    = []string{"OpenAI", "Google Vertex AI", "Azure OpenAI"}
	closedWonCompetitors = []string{"None identified", "OpenAI"}
	lostCompetitors      = []string{"Google Vertex AI", "Azure OpenAI"}
)

// opportunityIDCharset matches the CRM's 18-character identifier format
const opportunityIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
