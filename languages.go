package lingo

import "strings"

// LanguageNames maps short ISO-639-1 codes to human-readable names for
// provider prompts and diagnostics.
var LanguageNames = map[string]string{
	"en": "English",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"pt": "Portuguese",
	"zh": "Chinese",
	"ko": "Korean",
	"ru": "Russian",
	"ar": "Arabic",
	"he": "Hebrew",
	"hi": "Hindi",
	"nl": "Dutch",
	"pl": "Polish",
	"tr": "Turkish",
	"vi": "Vietnamese",
	"sv": "Swedish",
	"da": "Danish",
	"fi": "Finnish",
	"el": "Greek",
	"cs": "Czech",
	"ro": "Romanian",
	"hu": "Hungarian",
	"uk": "Ukrainian",
	"id": "Indonesian",
	"th": "Thai",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[BaseLang(langCode)]; ok {
		return name
	}
	return langCode
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	if RTLLanguages[BaseLang(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// BaseLang extracts the lowercased base language code (e.g. "en" from
// "en_US" or "en-GB").
func BaseLang(langCode string) string {
	code := strings.ReplaceAll(langCode, "-", "_")
	if i := strings.Index(code, "_"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// ToHTMLLang converts a locale code to HTML lang attribute format
// (e.g. "es_ES" → "es-ES").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}

// stopwords holds high-frequency function words used by the local language
// detection heuristic when the active provider has no detect capability.
var stopwords = map[string][]string{
	"en": {"the", "and", "of", "to", "in", "is", "that", "it", "you", "for", "with", "are", "this"},
	"es": {"el", "la", "de", "que", "y", "en", "los", "las", "por", "con", "una", "para", "es"},
	"fr": {"le", "la", "les", "de", "des", "et", "est", "que", "une", "dans", "pour", "vous", "pas"},
	"de": {"der", "die", "das", "und", "ist", "nicht", "von", "mit", "den", "sie", "ein", "eine", "auf"},
	"it": {"il", "la", "di", "che", "e", "per", "una", "sono", "con", "del", "non", "gli", "questo"},
	"pt": {"o", "a", "de", "que", "e", "do", "da", "em", "um", "uma", "para", "com", "os"},
}

// DetectLanguage scores the content against small per-language stopword
// sets and returns the highest-scoring language, or fallback if every
// score is zero. This is a cheap heuristic, not a replacement for a
// provider-side detector.
func DetectLanguage(content, fallback string) string {
	words := strings.Fields(strings.ToLower(content))
	if len(words) == 0 {
		return fallback
	}

	seen := make(map[string]int, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if w != "" {
			seen[w]++
		}
	}

	bestLang := fallback
	bestScore := 0
	// Iterate a fixed order so ties break deterministically.
	for _, lang := range []string{"en", "es", "fr", "de", "it", "pt"} {
		score := 0
		for _, sw := range stopwords[lang] {
			score += seen[sw]
		}
		if score > bestScore {
			bestScore = score
			bestLang = lang
		}
	}

	return bestLang
}
