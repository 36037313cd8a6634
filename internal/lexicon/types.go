package lexicon

// #region lexicon
// Lexicon bundles every keyword list, regex pattern list, phrase boost and
// response pool used by the answer pipeline. Built once at startup and shared
// read-only by all components.
type Lexicon struct {
	Classifier  ClassifierTables  `yaml:"classifier"`
	Guard       GuardTables       `yaml:"guard"`
	Matcher     MatcherTables     `yaml:"matcher"`
	Fallback    FallbackTables    `yaml:"fallback"`
	Irrelevance IrrelevanceTables `yaml:"irrelevance"`
}

// #endregion

// #region classifier-tables
// TypeRule is one entry in the ordered query-type scan.
type TypeRule struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
	Required []string `yaml:"required"`
	Weight   float64  `yaml:"weight"`
	Followup string   `yaml:"followup"`
}

// SlotList maps a slot name to its candidate values; first match wins.
// When Label is set the slot receives Label instead of the matched value.
type SlotList struct {
	Slot   string   `yaml:"slot"`
	Values []string `yaml:"values"`
	Label  string   `yaml:"label,omitempty"`
}

// ClassifierTables drives intent classification and slot extraction.
type ClassifierTables struct {
	IdentityKeywords []string `yaml:"identity_keywords"`
	GreetingKeywords []string `yaml:"greeting_keywords"`
	// Rules are scanned in order; first rule with a contained keyword wins.
	Rules           []TypeRule            `yaml:"rules"`
	Slots           map[string][]SlotList `yaml:"slots"` // query type -> slot lists
	DefaultFollowup string                `yaml:"default_followup"`
	DefaultWeight   float64               `yaml:"default_weight"`
}

// #endregion

// #region guard-tables
// GuardTables holds the pre-retrieval personal-query patterns and replies.
type GuardTables struct {
	IdentityPatterns  []string `yaml:"identity_patterns"`
	GreetingPatterns  []string `yaml:"greeting_patterns"`
	BlockedResponses  []string `yaml:"blocked_responses"`
	GreetingResponses []string `yaml:"greeting_responses"`
	Suggestions       []string `yaml:"suggestions"`
}

// #endregion

// #region matcher-tables
// Boost pairs a phrase or keyword with a score increment.
type Boost struct {
	Term  string  `yaml:"term"`
	Boost float64 `yaml:"boost"`
}

// DomainGroup is a named group of domain terms used for keyword extraction.
type DomainGroup struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// MatcherTables drives passage scoring and answer validation.
type MatcherTables struct {
	StopWords        []string      `yaml:"stop_words"`
	Domain           []DomainGroup `yaml:"domain"`
	QuestionPatterns []string      `yaml:"question_patterns"`

	HRTopics    []string `yaml:"hr_topics"`
	Departments []string `yaml:"departments"`
	Locations   []string `yaml:"locations"`
	Roles       []string `yaml:"roles"`

	PhraseBoosts  []Boost `yaml:"phrase_boosts"`
	GeneralBoosts []Boost `yaml:"general_boosts"`
	MaxGeneral    int     `yaml:"max_general_boosts"`

	GenericPhrases    []string `yaml:"generic_phrases"`
	ContentIndicators []string `yaml:"content_indicators"`
}

// #endregion

// #region fallback-tables
// SuggestionGroup maps trigger words to the topic suggestions they unlock.
type SuggestionGroup struct {
	Words       []string `yaml:"words"`
	Suggestions []string `yaml:"suggestions"`
}

// FallbackTables holds the response pools and suggestion data.
type FallbackTables struct {
	Pools            map[string][]string `yaml:"pools"`
	SuggestionGroups []SuggestionGroup   `yaml:"suggestion_groups"`
	GeneralTopics    []string            `yaml:"general_topics"`
	ContactLines     []string            `yaml:"contact_lines"`
	Encouragements   []string            `yaml:"encouragements"`
	IdentityKeywords []string            `yaml:"identity_keywords"`
	GreetingKeywords []string            `yaml:"greeting_keywords"`
	HRContactWords   []string            `yaml:"hr_contact_keywords"`
}

// #endregion

// #region irrelevance-tables
// IrrelevanceTables lists the domain keywords that make a query relevant.
type IrrelevanceTables struct {
	DomainKeywords []string `yaml:"domain_keywords"`
}

// #endregion
