package lexicon

// #region identity-greeting
var identityKeywords = []string{
	"who am i", "who are you", "identify me", "my identity", "personal information",
	"my name", "my email", "my details", "about me", "tell me about myself",
}

var greetingKeywords = []string{
	"how are you", "how do you do", "how's it going", "how are things",
	"what's up", "how's your day", "are you okay", "are you fine",
	"how are you doing", "how's everything", "how's life",
}

// #endregion

// #region type-rules
// Rules are scanned in this order. Every hr_contact phrase contains "hr",
// so hr_inquiry claims those queries first; the fallback policy detects
// contact requests on its own. Only salary carries a weight of its own, the
// rest take DefaultWeight.
func defaultRules() []TypeRule {
	return []TypeRule{
		{
			Type:     "salary_inquiry",
			Keywords: []string{"salary", "pay", "wage", "compensation", "income", "earnings", "increment", "revision"},
			Required: []string{"designation"},
			Weight:   0.3,
			Followup: "Please specify the job designation (e.g., 'Management Trainee', 'Farm Manager', 'Hatchery Supervisor', 'Sales Person') or job group (Job Group 1-5).",
		},
		{
			Type:     "allowance_inquiry",
			Keywords: []string{"allowance", "benefit", "perk", "bonus", "incentive", "subsidy"},
			Required: []string{"allowance_type"},
			Followup: "Please specify the type of allowance (e.g., 'House Allowance', 'Location Allowance', 'Transport Allowance', 'Medical Allowance', 'Production Bonus').",
		},
		{
			Type:     "policy_inquiry",
			Keywords: []string{"policy", "rule", "regulation", "procedure", "guideline", "standard"},
			Required: []string{"policy_area"},
			Followup: "Please specify which policy area you're interested in (e.g., 'Leave Policy', 'Retirement Policy', 'Recruitment Policy', 'Performance Policy').",
		},
		{
			Type:     "leave_inquiry",
			Keywords: []string{"leave", "vacation", "holiday", "off", "absence", "break"},
			Required: []string{"leave_type"},
			Followup: "Please specify the type of leave (e.g., 'Sick Leave', 'Annual Leave', 'Casual Leave', 'Maternity Leave', 'Off Day').",
		},
		{
			Type:     "hr_inquiry",
			Keywords: []string{"hr", "human resource", "recruitment", "hiring", "employee", "staff"},
			Required: []string{"hr_area"},
			Followup: "Please specify the HR area (e.g., 'Recruitment', 'Performance Management', 'Training', 'Compensation', 'Benefits').",
		},
		{
			Type: "hr_contact",
			Keywords: []string{
				"hr email", "hr contact", "hr department", "hr phone", "hr number",
				"contact hr", "hr address", "hr office", "hr manager", "hr director",
			},
			Followup: "I can help with HR policies and procedures from our knowledge base.",
		},
		{
			Type:     "general_inquiry",
			Keywords: []string{"what", "how", "when", "where", "why", "tell me", "explain"},
		},
	}
}

// #endregion

// #region slots
func defaultSlots() map[string][]SlotList {
	return map[string][]SlotList{
		"salary_inquiry": {
			{Slot: "designation", Values: []string{
				"management trainee", "sales person", "farm manager", "hatchery supervisor",
				"feed mill manager", "production manager", "accountant", "driver", "helper",
				"mechanic", "farm in-charge", "commercial manager", "hr manager", "admin officer",
				"finance manager", "quality manager", "maintenance manager", "security guard",
				"cleaner", "operator", "technician", "supervisor", "officer", "executive",
				"manager", "assistant manager", "deputy manager", "general manager",
			}},
			{Slot: "job_group", Values: []string{
				"job group 1", "job group 2", "job group 3", "job group 4", "job group 5",
			}},
			{Slot: "department", Values: []string{
				"hatchery", "farm", "feed mill", "sales", "marketing", "hr", "finance",
				"production", "quality", "maintenance", "transport", "commercial",
				"panchagarh", "thakurgaon", "gojaria", "sagarica", "kfg", "kml", "kfil",
			}},
			{Slot: "employee_category", Values: []string{"management"}, Label: "Management"},
			{Slot: "employee_category", Values: []string{"non-management", "worker"}, Label: "Non-Management"},
		},
		"allowance_inquiry": {
			{Slot: "allowance_type", Values: []string{
				"house allowance", "location allowance", "transport allowance", "medical allowance",
				"food allowance", "hair cutting allowance", "time keeping allowance", "overtime allowance",
				"night allowance", "ta da allowance", "fuel allowance", "uniform allowance",
				"guard allowance", "furniture allowance", "mobile allowance", "pick drop allowance",
				"production bonus", "performance bonus", "eid bonus", "incentive", "reliever allowance",
			}},
		},
		"policy_inquiry": {
			{Slot: "policy_area", Values: []string{
				"leave policy", "retirement policy", "recruitment policy", "transfer policy",
				"performance policy", "overtime policy", "bonus policy", "allowance policy",
				"travel policy", "uniform policy", "mobile policy", "car policy",
				"office time policy", "deduction policy", "notice pay policy",
			}},
		},
		"leave_inquiry": {
			{Slot: "leave_type", Values: []string{
				"sick leave", "annual leave", "casual leave", "maternity leave", "paternity leave",
				"emergency leave", "replacement leave", "off day", "holiday", "vacation",
			}},
		},
		"hr_inquiry": {
			{Slot: "hr_area", Values: []string{
				"recruitment", "hiring", "training", "performance management", "appraisal",
				"promotion", "transfer", "resignation", "termination", "employee relations",
				"compensation", "benefits", "payroll", "attendance", "discipline",
			}},
		},
	}
}

// #endregion

func defaultClassifier() ClassifierTables {
	return ClassifierTables{
		IdentityKeywords: clone(identityKeywords),
		GreetingKeywords: clone(greetingKeywords),
		Rules:            defaultRules(),
		Slots:            defaultSlots(),
		DefaultFollowup:  "Please provide more specific information about your query.",
		DefaultWeight:    0.1,
	}
}
