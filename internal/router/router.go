// Package router inspects a free-text query plus optional context sources
// and dispatches it to exactly one lookup handler per call.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prescottcassy/insurance-assistant/constants"
	"github.com/prescottcassy/insurance-assistant/internal/dataset"
	"github.com/prescottcassy/insurance-assistant/internal/extract"
)

// ProviderSearcher is the provider directory collaborator.
type ProviderSearcher interface {
	Search(ctx context.Context, query string) ([]dataset.Row, error)
}

// DrugSuggester is the symptom -> brand-names collaborator. Failures are
// swallowed inside the implementation; an empty list is the only miss signal.
type DrugSuggester interface {
	SuggestForSymptom(ctx context.Context, symptom string) []string
}

// DocumentAnswerer is the opaque retrieval + generation collaborator.
type DocumentAnswerer interface {
	Answer(ctx context.Context, query string, docs []string) (string, error)
}

const fallbackAnswer = "Sorry, I couldn't understand your request. Please ask about drugs, insurance, upload a card, or ask about Medicare providers."

// rule is one (predicate, handler) pair of the dispatch cascade. Rules are
// evaluated in fixed priority order; the first match wins and no second
// handler runs.
type rule struct {
	intent constants.Intent
	match  func(q string, qc Context) bool
	handle func(ctx context.Context, q string, qc Context) Response
}

type Router struct {
	logger    *slog.Logger
	providers ProviderSearcher
	drugs     DrugSuggester
	answerer  DocumentAnswerer
	rules     []rule
}

func New(providers ProviderSearcher, drugs DrugSuggester, answerer DocumentAnswerer, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		logger:    logger,
		providers: providers,
		drugs:     drugs,
		answerer:  answerer,
	}
	r.rules = []rule{
		{constants.IntentCardQA, r.matchCardQA, r.handleCardQA},
		{constants.IntentProviders, r.matchProviders, r.handleProviders},
		{constants.IntentDrugs, matchAny("drug", "medicine", "symptom"), r.handleDrugs},
		{constants.IntentPlans, matchAny("insurance", "plan"), r.handlePlans},
		{constants.IntentCardPrompt, matchAny("card", "extract"), r.handleCardPrompt},
		{constants.IntentCoverage, matchAny("cover", "coverage"), r.handleCoverage},
		{constants.IntentRetrieval, r.matchRetrieval, r.handleRetrieval},
		{constants.IntentUnknown, func(string, Context) bool { return true }, r.handleUnknown},
	}
	return r
}

// Route dispatches the query to the first matching rule. Single pass,
// stateless; safe for concurrent callers.
func (r *Router) Route(ctx context.Context, query string, qc Context) Response {
	q := strings.ToLower(query)
	for _, rl := range r.rules {
		if !rl.match(q, qc) {
			continue
		}
		resp := rl.handle(ctx, q, qc)
		r.logger.Info("router.dispatch",
			"intent", string(rl.intent),
			"confidence", resp.Confidence,
		)
		return resp
	}
	// unreachable: the last rule always matches
	return r.handleUnknown(ctx, q, qc)
}

func matchAny(triggers ...string) func(string, Context) bool {
	return func(q string, _ Context) bool {
		for _, t := range triggers {
			if strings.Contains(q, t) {
				return true
			}
		}
		return false
	}
}

// firstTokenAfter returns the first whitespace-delimited token following the
// first occurrence of the connector substring. Multi-word entities truncate
// to their first word; callers depend on this, so it stays a known limit.
func firstTokenAfter(q, connector string) (string, bool) {
	idx := strings.Index(q, connector)
	if idx < 0 {
		return "", false
	}
	rest := strings.Fields(q[idx+len(connector):])
	if len(rest) == 0 {
		return "", false
	}
	return rest[0], true
}

// extractEntity probes the connector words in order and returns the first
// token found after any of them.
func extractEntity(q string, connectors []string) (string, bool) {
	for _, c := range connectors {
		if tok, ok := firstTokenAfter(q, c); ok {
			return tok, true
		}
	}
	return "", false
}

// --- rule 1: card field Q&A ---

func (r *Router) matchCardQA(q string, qc Context) bool {
	if len(qc.CardFields) == 0 {
		return false
	}
	_, ok := cardAnswer(q, qc.CardFields)
	return ok
}

func (r *Router) handleCardQA(_ context.Context, q string, qc Context) Response {
	resp := newResponse(constants.IntentCardQA)
	answer, _ := cardAnswer(q, qc.CardFields)
	resp.Answer = answer
	return resp
}

// cardAnswer resolves a question directly against extracted card fields.
// The priority fields get the conversational phrasing; any other field key
// appearing literally in the query (underscore or space form) gets the
// "<Key Title>: <value>" form.
func cardAnswer(q string, fields extract.FieldMap) (string, bool) {
	for _, field := range constants.PriorityFields {
		if !strings.Contains(q, field) {
			continue
		}
		if v, ok := fields[field]; ok {
			return fmt.Sprintf("Your %s is %s", strings.ReplaceAll(field, "_", " "), v), true
		}
	}
	for _, key := range fields.SortedKeys() {
		spaced := strings.ReplaceAll(key, "_", " ")
		if strings.Contains(q, key) || strings.Contains(q, spaced) {
			return titleKey(key) + ": " + fields[key], true
		}
	}
	return "", false
}

func titleKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// --- rule 2: Medicare/CMS provider lookup ---

func (r *Router) matchProviders(q string, _ Context) bool {
	if r.providers == nil {
		return false
	}
	return strings.Contains(q, "medicare") || strings.Contains(q, "cms") || strings.Contains(q, "provider")
}

func (r *Router) handleProviders(ctx context.Context, q string, _ Context) Response {
	resp := newResponse(constants.IntentProviders)
	rows, err := r.providers.Search(ctx, q)
	if err != nil {
		// collaborator unavailable reads the same as no matches
		r.logger.Warn("router.providers.search_failed", "error", err)
		rows = nil
	}
	if len(rows) > 0 {
		resp.Answer = fmt.Sprintf("Found %d Medicare providers for your query.", len(rows))
		resp.Coverage = rows
	} else {
		resp.Answer = "No Medicare providers found for your query."
	}
	return resp
}

// --- rule 3: drug suggestions for a symptom ---

func (r *Router) handleDrugs(ctx context.Context, q string, _ Context) Response {
	resp := newResponse(constants.IntentDrugs)
	symptom, ok := extractEntity(q, []string{"for ", "with ", "about ", "symptom "})
	if !ok {
		resp.Answer = "Please specify a symptom to get drug suggestions."
		return resp
	}

	var suggestions []string
	if r.drugs != nil {
		suggestions = r.drugs.SuggestForSymptom(ctx, symptom)
	}
	resp.Entities["symptom"] = symptom
	resp.Recommendations = append(resp.Recommendations, suggestions...)
	if len(suggestions) > 0 {
		resp.Answer = fmt.Sprintf("Suggested drugs for '%s': %s", symptom, strings.Join(suggestions, ", "))
	} else {
		resp.Answer = fmt.Sprintf("No drug suggestions found for '%s'.", symptom)
	}
	return resp
}

// --- rule 4: insurance plan lookup ---

func (r *Router) handlePlans(_ context.Context, q string, qc Context) Response {
	resp := newResponse(constants.IntentPlans)
	if qc.Dataset != nil {
		if name, ok := extractEntity(q, []string{"for ", "named ", "plan "}); ok {
			matches := qc.Dataset.LookupPlans(name)
			resp.Entities["plan_name"] = name
			if len(matches) > 0 {
				resp.Coverage = matches
				resp.Answer = fmt.Sprintf("Insurance plans matching '%s':", name)
			} else {
				resp.Answer = fmt.Sprintf("No insurance plans found for '%s'.", name)
			}
			return resp
		}
	}
	resp.Answer = "Please specify an insurance company or plan name."
	return resp
}

// --- rule 5: card extraction prompt ---

func (r *Router) handleCardPrompt(_ context.Context, _ string, _ Context) Response {
	resp := newResponse(constants.IntentCardPrompt)
	resp.Answer = "Please upload your insurance card image or PDF for extraction."
	return resp
}

// --- rule 6: plan coverage by drug ---

func (r *Router) handleCoverage(_ context.Context, q string, qc Context) Response {
	resp := newResponse(constants.IntentCoverage)
	if qc.Dataset != nil {
		if drug, ok := extractEntity(q, []string{"for ", "of ", "drug "}); ok {
			matches := qc.Dataset.MatchPlansByDrugs([]string{drug})
			resp.Entities["drug"] = drug
			if len(matches) > 0 {
				resp.Coverage = matches
				resp.Answer = fmt.Sprintf("Plans covering '%s':", drug)
			} else {
				resp.Answer = fmt.Sprintf("No plans found covering '%s'.", drug)
			}
			return resp
		}
	}
	resp.Answer = "Please specify a drug name to check coverage."
	return resp
}

// --- rule 7: retrieval fallback over supplied documents ---

func (r *Router) matchRetrieval(_ string, qc Context) bool {
	return r.answerer != nil && len(qc.Documents) > 0
}

func (r *Router) handleRetrieval(ctx context.Context, q string, qc Context) Response {
	resp := newResponse(constants.IntentRetrieval)
	answer, err := r.answerer.Answer(ctx, q, qc.Documents)
	if err != nil {
		r.logger.Warn("router.retrieval.failed", "error", err)
		return r.handleUnknown(ctx, q, qc)
	}
	resp.Answer = answer
	return resp
}

// --- rule 8: unrecognized ---

func (r *Router) handleUnknown(_ context.Context, _ string, _ Context) Response {
	resp := newResponse(constants.IntentUnknown)
	resp.Answer = fallbackAnswer
	resp.Confidence = 0.5
	return resp
}
