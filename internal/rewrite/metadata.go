package rewrite

import (
	"regexp"
	"strings"
)

// Phrase length bounds. Empirically chosen in the original rule set;
// worth recalibrating against a real prompt corpus at some point.
const (
	phraseMinLen        = 5
	requirementMaxLen   = 100
	constraintMaxLen    = 80
	techStackMaxEntries = 12
)

// techTerm is one entry of the fixed tech vocabulary. Detection is by
// word-bounded regex; Name is the canonical display form.
type techTerm struct {
	Name  string
	Regex *regexp.Regexp
}

func term(name, pattern string) techTerm {
	return techTerm{Name: name, Regex: regexp.MustCompile(`(?i)\b(?:` + pattern + `)\b`)}
}

// techVocabulary lists the language/framework/db/cloud names the stack
// extractor recognizes. Scanned in order against the original text.
var techVocabulary = []techTerm{
	term("React", `react(?:\.js)?`),
	term("Next.js", `next\.?js`),
	term("Vue", `vue(?:\.js)?`),
	term("Angular", `angular`),
	term("Svelte", `svelte(?:kit)?`),
	term("Node.js", `node(?:\.?js)?`),
	term("Express", `express(?:\.js)?`),
	term("FastAPI", `fastapi`),
	term("Django", `django`),
	term("Flask", `flask`),
	term("Spring Boot", `spring[- ]?boot`),
	term("Rails", `(?:ruby on )?rails`),
	term("Laravel", `laravel`),
	term("TypeScript", `typescript|\bts\b`),
	term("JavaScript", `javascript`),
	term("Python", `python`),
	term("Go", `golang|\bgo\b`),
	term("Rust", `rust`),
	term("Java", `java`),
	term("Kotlin", `kotlin`),
	term("Swift", `swift`),
	term("C#", `c#|csharp`),
	term("PostgreSQL", `postgres(?:ql)?`),
	term("MySQL", `mysql`),
	term("SQLite", `sqlite`),
	term("MongoDB", `mongo(?:db)?`),
	term("Redis", `redis`),
	term("Kafka", `kafka`),
	term("RabbitMQ", `rabbitmq`),
	term("GraphQL", `graphql`),
	term("gRPC", `grpc`),
	term("Docker", `docker`),
	term("Kubernetes", `kubernetes|k8s`),
	term("AWS", `aws|amazon web services`),
	term("GCP", `gcp|google cloud`),
	term("Azure", `azure`),
	term("Terraform", `terraform`),
	term("Prisma", `prisma`),
	term("SQLAlchemy", `sqlalchemy`),
	term("Tailwind", `tailwind(?:css)?`),
	term("Vite", `vite`),
	term("Webpack", `webpack`),
}

var (
	requirementRe = regexp.MustCompile(`(?i)\b(?:it |the (?:app|api|system|service) )?(?:must|should|needs? to|requires?)\s+(` + phrasePat + `)`)
	constraintRe  = regexp.MustCompile(`(?i)\b(?:without using|without|can'?t use|cannot use|don'?t (?:want to )?use|avoid(?:ing)?|no)\s+((?:[^\n.!?,]|\.\w)+)`)
)

// Metadata holds the structured facts extracted from the original prompt.
type Metadata struct {
	Stack        []string
	Requirements []string
	Constraints  []string
}

// extractMetadata scans the original (not the cleaned) text so that fluff
// removal can never eat a requirement. Each list is deduplicated and keeps
// first-seen order; over- and under-length phrases are silently dropped.
func extractMetadata(text string) Metadata {
	var md Metadata

	for _, tt := range techVocabulary {
		if len(md.Stack) >= techStackMaxEntries {
			break
		}
		if tt.Regex.MatchString(text) {
			md.Stack = append(md.Stack, tt.Name)
		}
	}

	md.Requirements = collectPhrases(requirementRe, text, requirementMaxLen)
	md.Constraints = collectPhrases(constraintRe, text, constraintMaxLen)

	return md
}

func collectPhrases(re *regexp.Regexp, text string, maxLen int) []string {
	var phrases []string
	seen := make(map[string]struct{})

	for _, m := range re.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if len(phrase) < phraseMinLen || len(phrase) > maxLen {
			continue
		}
		key := strings.ToLower(phrase)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		phrases = append(phrases, phrase)
	}

	return phrases
}
