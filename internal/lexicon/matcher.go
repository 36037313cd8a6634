package lexicon

// #region stop-words
var stopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
	"to", "was", "will", "with", "i", "you", "we", "they", "this",
	"these", "those", "have", "had", "do", "does", "did", "can",
	"could", "would", "should", "may", "might", "must", "shall",
	"what", "when", "where", "why", "how", "who", "which",
}

// #endregion

// #region domain-groups
func defaultDomain() []DomainGroup {
	return []DomainGroup{
		{"chicken", []string{"chicken", "poultry", "bird", "hen", "rooster", "broiler", "layer", "egg", "eggs"}},
		{"price", []string{"price", "cost", "rate", "pricing", "fee", "charge", "amount", "revision", "refixation"}},
		{"delivery", []string{"delivery", "shipping", "transport", "dispatch", "send", "pick", "drop"}},
		{"order", []string{"order", "purchase", "buy", "booking", "reservation"}},
		{"product", []string{"product", "item", "goods", "commodity", "merchandise"}},
		{"farm", []string{"farm", "farmland", "agriculture", "farming", "cultivation", "farms"}},
		{"discount", []string{"discount", "offer", "deal", "promotion", "sale", "reduction"}},
		{"bulk", []string{"bulk", "wholesale", "large quantity", "mass", "volume"}},
		{"quality", []string{"quality", "grade", "standard", "premium", "fresh", "organic"}},
		{"departments", []string{"hatchery", "farm", "feed mill", "sales", "marketing", "hr", "finance", "production", "quality", "maintenance", "transport", "commercial", "franchise", "customer service"}},
		{"locations", []string{"panchagarh", "thakurgaon", "gojaria", "sagarica", "kfg", "kml", "kfil", "head office", "tray factory", "slaughtering plant", "egg sales centre"}},
		{"companies", []string{"kazi farms", "kazi feed", "kazi media", "sysnova", "kazi farms limited", "kazi media limited"}},
		{"employee", []string{"employee", "staff", "worker", "personnel", "labor", "labour", "workers", "permanent worker", "temporary worker"}},
		{"management", []string{"management", "manager", "supervisor", "officer", "executive", "admin", "in-charge", "assistant manager", "deputy manager", "general manager", "agm"}},
		{"job_groups", []string{"job group 1", "job group 2", "job group 3", "job group 4", "job group 5", "management level", "non management"}},
		{"specific_roles", clone(roles)},
		{"salary", []string{"salary", "wage", "pay", "compensation", "remuneration", "income", "earnings", "minimum salary", "salary structure", "pay scale", "wage structure"}},
		{"increment", []string{"increment", "raise", "increase", "promotion", "advancement", "upgrade", "yearly increment", "salary increment", "pay increase"}},
		{"structure", []string{"structure", "scale", "grade", "level", "tier", "bracket", "range", "salary structure", "pay structure"}},
		{"allowance", []string{"allowance", "benefit", "perk", "bonus", "incentive", "subsidy"}},
		{"specific_allowances", []string{"house allowance", "location allowance", "transport allowance", "medical allowance", "food allowance", "hair cutting allowance", "time keeping allowance", "overtime allowance", "night allowance", "ta da allowance", "fuel allowance", "uniform allowance", "guard allowance", "furniture allowance", "mobile allowance", "pick drop allowance", "reliever allowance", "day off allowance", "off day allowance", "transfer allowance"}},
		{"bonuses", []string{"production bonus", "performance bonus", "eid bonus", "eidulfitur bonus", "incentive", "sysnova incentive"}},
		{"hr", []string{"hr", "human resource", "hrd", "personnel", "recruitment", "hiring", "hrd head office"}},
		{"policy", []string{"policy", "rule", "regulation", "guideline", "procedure", "standard", "circular", "order", "notice", "memo"}},
		{"specific_policies", []string{"leave policy", "retirement policy", "recruitment policy", "transfer policy", "performance policy", "overtime policy", "bonus policy", "allowance policy", "travel policy", "uniform policy", "mobile policy", "car policy", "office time policy", "deduction policy", "notice pay policy", "off day policy", "ta da policy"}},
		{"leave", []string{"leave", "vacation", "holiday", "off", "absence", "break", "off day", "replacement leave"}},
		{"leave_types", []string{"sick leave", "annual leave", "casual leave", "maternity leave", "paternity leave", "emergency leave", "replacement leave", "off day", "holiday", "vacation"}},
		{"overtime", []string{"overtime", "extra", "additional", "extended", "beyond", "outstation work"}},
		{"time", []string{"time", "schedule", "office time", "floor wise", "time keeping", "time table"}},
		{"work", []string{"work", "working", "duty", "shift", "tour", "official tour"}},
		{"transport", []string{"transport", "travel", "commute", "vehicle", "car", "bus", "pick drop", "car allowance", "office car", "personal car"}},
		{"vehicles", []string{"car", "bus", "vehicle", "driver", "helper", "mechanic", "light driver", "medium driver"}},
		{"medical", []string{"medical", "health", "treatment", "hospital", "clinic", "doctor", "medical bill", "h&s team"}},
		{"financial", []string{"financial", "payment", "cash", "bill", "claim", "budget", "ceiling", "aid"}},
		{"payments", []string{"payment", "pay", "cash", "bill", "claim", "fuel bill", "ta da bill"}},
		{"retirement", []string{"retirement", "pension", "resignation", "exit", "departure", "termination"}},
		{"identity", []string{"identity card", "passport", "document", "handover"}},
		{"misc", []string{"picnic", "budget ceiling", "sample collection", "tray factory", "slaughtering plant", "egg sales", "commercial eggs", "franchise department", "hardware sales", "software sales", "kazi media"}},
	}
}

var roles = []string{
	"management trainee", "farm manager", "hatchery supervisor", "feed mill manager",
	"production manager", "commercial manager", "hr manager", "finance manager",
	"quality manager", "maintenance manager", "farm in-charge", "sales person",
	"accountant", "driver", "helper", "mechanic", "security guard", "cleaner",
	"operator", "technician", "reliever accountant",
}

// #endregion

// #region question-patterns
var questionPatterns = []string{
	`salary.*structure`, `employee.*salary`, `pay.*scale`, `wage.*structure`,
	`compensation.*structure`, `management.*salary`, `worker.*salary`, `minimum.*salary`,
	`salary.*increment`, `yearly.*increment`, `pay.*increase`, `salary.*revision`,
	`salary.*refixation`, `management.*trainee.*salary`, `sales.*person.*salary`,
	`farm.*manager.*salary`, `hatchery.*supervisor.*salary`, `driver.*salary`,
	`permanent.*worker.*salary`, `job.*group.*salary`, `management.*level.*salary`,
	`non.*management.*salary`,

	`house.*allowance`, `location.*allowance`, `transport.*allowance`, `medical.*allowance`,
	`food.*allowance`, `hair.*cutting.*allowance`, `time.*keeping.*allowance`,
	`overtime.*allowance`, `night.*allowance`, `ta.*da.*allowance`, `fuel.*allowance`,
	`uniform.*allowance`, `guard.*allowance`, `furniture.*allowance`, `mobile.*allowance`,
	`pick.*drop.*allowance`, `reliever.*allowance`, `day.*off.*allowance`,
	`off.*day.*allowance`, `transfer.*allowance`, `car.*allowance`,

	`production.*bonus`, `performance.*bonus`, `eid.*bonus`, `eidulfitur.*bonus`,
	`sysnova.*incentive`, `farm.*bonus`, `hatchery.*bonus`,

	`leave.*policy`, `retirement.*policy`, `recruitment.*policy`, `transfer.*policy`,
	`performance.*policy`, `overtime.*policy`, `bonus.*policy`, `allowance.*policy`,
	`travel.*policy`, `uniform.*policy`, `mobile.*policy`, `car.*policy`,
	`office.*time.*policy`, `deduction.*policy`, `notice.*pay.*policy`,
	`off.*day.*policy`, `ta.*da.*policy`,

	`hatchery.*allowance`, `farm.*allowance`, `feed.*mill.*allowance`,
	`panchagarh.*allowance`, `thakurgaon.*allowance`, `gojaria.*allowance`,
	`sagarica.*allowance`, `kfg.*allowance`, `kml.*allowance`, `kfil.*allowance`,
	`head.*office.*allowance`, `tray.*factory.*allowance`, `slaughtering.*plant.*allowance`,
	`egg.*sales.*allowance`, `commercial.*eggs.*allowance`, `franchise.*department.*allowance`,
	`hardware.*sales.*allowance`, `software.*sales.*allowance`, `kazi.*media.*allowance`,

	`management.*trainee.*allowance`, `farm.*manager.*allowance`,
	`hatchery.*supervisor.*allowance`, `feed.*mill.*manager.*allowance`,
	`production.*manager.*allowance`, `commercial.*manager.*allowance`,
	`hr.*manager.*allowance`, `finance.*manager.*allowance`, `quality.*manager.*allowance`,
	`maintenance.*manager.*allowance`, `farm.*in.*charge.*allowance`,
	`sales.*person.*allowance`, `accountant.*allowance`, `driver.*allowance`,
	`helper.*allowance`, `mechanic.*allowance`, `security.*guard.*allowance`,
	`cleaner.*allowance`, `operator.*allowance`, `technician.*allowance`,
	`reliever.*accountant.*allowance`,

	`sick.*leave`, `annual.*leave`, `casual.*leave`, `maternity.*leave`,
	`paternity.*leave`, `emergency.*leave`, `replacement.*leave`, `off.*day`,
	`holiday.*policy`, `vacation.*policy`, `office.*time`, `floor.*wise.*office.*time`,
	`time.*keeping`, `time.*table`, `outstation.*work`, `official.*tour`,

	`transport.*support`, `office.*car`, `personal.*car`, `light.*driver`,
	`medium.*driver`, `driver.*helper`, `driver.*mechanic`, `vehicle.*allowance`,
	`pick.*drop.*service`,

	`medical.*bill`, `h.*s.*team`, `health.*safety`, `medical.*treatment`,
	`hospital.*allowance`, `clinic.*allowance`,

	`financial.*aid`, `payment.*cash`, `bill.*claim`, `fuel.*bill`, `ta.*da.*bill`,
	`budget.*ceiling`, `picnic.*budget`,

	`identity.*card`, `passport.*handover`, `document.*handover`, `hrd.*head.*office`,

	`sample.*collection`, `tray.*factory`, `slaughtering.*plant`, `egg.*sales.*centre`,
	`commercial.*eggs.*sales`, `franchise.*department`, `hardware.*software.*sales`,
	`kazi.*media`, `sysnova.*h.*s.*team`,
}

// #endregion

// #region boosts
func defaultPhraseBoosts() []Boost {
	b := []Boost{
		{"salary structure", 0.4},
		{"management trainee", 0.5},
		{"farm manager", 0.5},
		{"hatchery supervisor", 0.5},
		{"production bonus", 0.4},
		{"performance bonus", 0.4},
	}
	for _, p := range []string{
		"house allowance", "location allowance", "transport allowance", "medical allowance",
		"hair cutting allowance", "time keeping allowance", "overtime allowance",
		"night allowance", "ta da allowance", "fuel allowance", "uniform allowance",
		"guard allowance", "furniture allowance", "mobile allowance", "pick drop allowance",
		"reliever allowance", "day off allowance", "off day allowance", "transfer allowance",
		"car allowance", "eid bonus", "eidulfitur bonus", "sysnova incentive",
	} {
		b = append(b, Boost{p, 0.4})
	}
	for _, p := range []string{
		"job group", "management level", "non management", "yearly increment",
		"salary increment", "pay increase", "salary revision", "salary refixation",
		"minimum salary", "permanent worker", "temporary worker", "light driver",
		"medium driver", "driver helper", "driver mechanic", "farm in-charge",
		"feed mill manager", "commercial manager", "hr manager", "finance manager",
		"quality manager", "maintenance manager", "sales person", "reliever accountant",
		"security guard", "office time", "floor wise", "time keeping", "time table",
		"outstation work", "official tour", "pick drop service", "office car",
		"personal car", "medical bill", "h&s team", "health safety", "financial aid",
		"payment cash", "bill claim", "fuel bill", "ta da bill", "budget ceiling",
		"picnic budget", "identity card", "passport handover", "document handover",
		"hrd head office", "sample collection", "tray factory", "slaughtering plant",
		"egg sales centre", "commercial eggs sales", "franchise department",
		"hardware software sales", "kazi media", "sysnova h&s team",
	} {
		b = append(b, Boost{p, 0.3})
	}
	return b
}

var generalBoostTerms = []string{
	"employee", "allowance", "policy", "bonus", "increment", "salary", "management",
	"worker", "leave", "overtime", "transport", "medical", "house", "location",
	"production", "performance", "hatchery", "farm", "feed mill", "sales", "commercial",
	"hr", "finance", "quality", "maintenance", "driver", "helper", "mechanic",
	"accountant", "supervisor", "manager", "officer", "executive", "technician",
	"operator", "cleaner", "guard", "trainee", "in-charge", "person", "level", "group",
	"structure", "scale", "grade", "tier", "bracket", "range", "wage", "pay",
	"compensation", "remuneration", "income", "earnings", "benefit", "perk", "incentive",
	"subsidy", "rule", "regulation", "guideline", "procedure", "standard", "circular",
	"order", "notice", "memo", "vacation", "holiday", "off", "absence", "break", "extra",
	"additional", "extended", "beyond", "travel", "commute", "vehicle", "car", "bus",
	"health", "treatment", "hospital", "clinic", "doctor", "financial", "payment", "cash",
	"bill", "claim", "budget", "ceiling", "aid", "retirement", "pension", "resignation",
	"exit", "departure", "termination", "identity", "card", "passport", "document",
	"handover", "picnic", "sample", "collection", "tray", "factory", "slaughtering",
	"plant", "egg", "eggs", "franchise", "department", "hardware", "software", "kazi",
	"media", "sysnova",
}

func defaultGeneralBoosts() []Boost {
	b := make([]Boost, len(generalBoostTerms))
	for i, t := range generalBoostTerms {
		b[i] = Boost{t, 0.2}
	}
	return b
}

// #endregion

func defaultMatcher() MatcherTables {
	return MatcherTables{
		StopWords:        clone(stopWords),
		Domain:           defaultDomain(),
		QuestionPatterns: clone(questionPatterns),
		HRTopics: []string{
			"employee", "salary", "structure", "allowance", "hr", "policy", "management",
			"job", "increment", "bonus", "leave", "overtime", "transport", "medical",
			"house", "location", "production", "performance", "eid", "sysnova",
		},
		Departments: []string{
			"hatchery", "farm", "feed mill", "sales", "marketing", "finance", "production",
			"quality", "maintenance", "transport", "commercial", "franchise", "customer service",
		},
		Locations: []string{
			"panchagarh", "thakurgaon", "gojaria", "sagarica", "kfg", "kml", "kfil",
			"head office", "tray factory", "slaughtering plant", "egg sales centre",
		},
		Roles:         clone(roles),
		PhraseBoosts:  defaultPhraseBoosts(),
		GeneralBoosts: defaultGeneralBoosts(),
		MaxGeneral:    5,
		GenericPhrases: []string{
			"i don't know",
			"not available",
			"no information",
			"cannot provide",
			"not found",
			"i don't have specific information about this in our database",
		},
		ContentIndicators: []string{
			"based on our database",
			"according to the documents",
			"from the information provided",
			"the database shows",
			"our records indicate",
			"the documents show",
			"based on the context",
			"according to the data",
		},
	}
}
