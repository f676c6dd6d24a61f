package symptom

import "strings"

// queryPair maps a symptom phrase to its product search query. The table is
// ordered and matched first-hit-wins, so earlier entries shadow later ones.
type queryPair struct {
	symptom string
	query   string
}

var symptomQueries = []queryPair{
	// Pain
	{"headache", "headache relief medicine"},
	{"migraine", "migraine relief medicine"},
	{"back pain", "back pain relief"},
	{"joint pain", "joint pain relief"},
	{"muscle pain", "muscle pain relief"},
	{"toothache", "toothache relief"},

	// Cold and flu
	{"fever", "fever reducer medicine"},
	{"cough", "cough medicine"},
	{"sore throat", "sore throat relief"},
	{"congestion", "nasal congestion relief"},
	{"runny nose", "runny nose relief"},

	// Digestive
	{"nausea", "nausea relief"},
	{"upset stomach", "upset stomach relief"},
	{"indigestion", "indigestion relief"},
	{"heartburn", "heartburn relief"},

	// Skin
	{"rash", "rash treatment"},
	{"itching", "itching relief"},
	{"dry skin", "dry skin treatment"},
	{"acne", "acne treatment"},

	// Sleep
	{"insomnia", "sleep aid"},
	{"trouble sleeping", "sleep aid"},

	// Allergies
	{"allergies", "allergy medicine"},
	{"seasonal allergies", "seasonal allergy medicine"},

	// General wellness
	{"stress", "stress relief"},
	{"anxiety", "anxiety relief"},
	{"vitamins", "vitamins"},
	{"supplements", "health supplements"},
}

var stopWords = map[string]struct{}{
	"i": {}, "have": {}, "am": {}, "feeling": {}, "experiencing": {},
	"suffering": {}, "from": {}, "with": {}, "the": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "by": {},
}

// BuildSearchQuery turns free-text symptoms into a product search query.
// Known symptom phrases map to a curated query; otherwise the first three
// meaningful tokens are combined with a generic relief suffix.
func BuildSearchQuery(text string) string {
	lower := strings.ToLower(text)
	for _, p := range symptomQueries {
		if strings.Contains(lower, p.symptom) {
			return p.query
		}
	}

	var kept []string
	for _, word := range strings.Fields(lower) {
		if _, stop := stopWords[word]; stop || len(word) <= 2 {
			continue
		}
		kept = append(kept, word)
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return "health wellness products"
	}
	return strings.Join(kept, " ") + " relief medicine"
}

// keywordEntry lists the phrase variants that identify one symptom.
type keywordEntry struct {
	symptom  string
	variants []string
}

var symptomKeywords = []keywordEntry{
	{"headache", []string{"headache", "head pain", "migraine"}},
	{"fever", []string{"fever", "temperature", "hot"}},
	{"sore throat", []string{"sore throat", "throat pain", "throat sore"}},
	{"cough", []string{"cough", "coughing", "dry cough"}},
	{"fatigue", []string{"fatigue", "tired", "exhausted", "weak"}},
	{"body aches", []string{"body aches", "muscle pain", "joint pain", "achy"}},
	{"nausea", []string{"nausea", "sick", "queasy"}},
	{"congestion", []string{"congestion", "stuffy nose", "blocked nose"}},
	{"runny nose", []string{"runny nose", "dripping nose"}},
	{"sneezing", []string{"sneezing", "sneeze"}},
	{"itchy eyes", []string{"itchy eyes", "eye irritation"}},
	{"back pain", []string{"back pain", "backache"}},
	{"stomach pain", []string{"stomach pain", "abdominal pain", "belly ache"}},
	{"insomnia", []string{"insomnia", "trouble sleeping", "can't sleep"}},
	{"anxiety", []string{"anxiety", "anxious", "worried"}},
	{"stress", []string{"stress", "stressed"}},
	{"allergies", []string{"allergies", "allergic"}},
}

// ScanSymptoms extracts known symptoms from a conversation by case-insensitive
// keyword match. Used when the model output cannot be trusted.
func ScanSymptoms(conversation string) []string {
	lower := strings.ToLower(conversation)
	var found []string
	for _, entry := range symptomKeywords {
		for _, variant := range entry.variants {
			if strings.Contains(lower, variant) {
				found = append(found, entry.symptom)
				break
			}
		}
	}
	return found
}

var symptomMedicines = map[string][]string{
	"headache":     {"acetaminophen", "ibuprofen", "aspirin"},
	"fever":        {"acetaminophen", "ibuprofen"},
	"sore throat":  {"throat lozenges", "acetaminophen", "ibuprofen"},
	"cough":        {"dextromethorphan", "guaifenesin", "cough syrup"},
	"fatigue":      {"caffeine", "vitamin b12"},
	"body aches":   {"ibuprofen", "acetaminophen"},
	"nausea":       {"pepto-bismol", "ginger"},
	"congestion":   {"pseudoephedrine", "saline nasal spray"},
	"runny nose":   {"antihistamines", "saline nasal spray"},
	"sneezing":     {"antihistamines", "cetirizine"},
	"itchy eyes":   {"antihistamine eye drops", "cetirizine"},
	"back pain":    {"ibuprofen", "acetaminophen", "topical analgesics"},
	"stomach pain": {"pepto-bismol", "antacids"},
	"insomnia":     {"diphenhydramine", "melatonin"},
	"anxiety":      {"valerian root", "chamomile"},
	"stress":       {"b vitamins", "magnesium"},
	"allergies":    {"cetirizine", "loratadine", "diphenhydramine"},
}

// MapMedicines resolves symptoms to over-the-counter medicine names using the
// static table, in symptom order, deduplicated keeping the first occurrence.
func MapMedicines(symptoms []string) []string {
	var medicines []string
	for _, s := range symptoms {
		medicines = append(medicines, symptomMedicines[s]...)
	}
	return dedupeMedicines(medicines)
}

func dedupeMedicines(medicines []string) []string {
	seen := make(map[string]struct{}, len(medicines))
	var unique []string
	for _, m := range medicines {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		unique = append(unique, m)
	}
	return unique
}
