package constants

// Intent is the category of user request inferred from keyword triggers.
type Intent string

// Stable values (these exact strings appear in logs and traces).
const (
	IntentCardQA     Intent = "CARD_QA"     // answer directly from extracted card fields
	IntentProviders  Intent = "PROVIDERS"   // Medicare/CMS provider directory search
	IntentDrugs      Intent = "DRUGS"       // drug suggestions for a symptom
	IntentPlans      Intent = "PLANS"       // insurance plan lookup by name
	IntentCardPrompt Intent = "CARD_PROMPT" // ask the user to upload a card
	IntentCoverage   Intent = "COVERAGE"    // plans covering a drug
	IntentRetrieval  Intent = "RETRIEVAL"   // document Q&A fallback
	IntentUnknown    Intent = "UNKNOWN"     // nothing matched
)
