package lexicon

// Fallback pool names.
const (
	PoolNoContext        = "no_context"
	PoolLowConfidence    = "low_confidence"
	PoolGeneralHelp      = "general_help"
	PoolPersonalIdentity = "personal_identity"
	PoolPersonalGreeting = "personal_greeting"
	PoolHRContact        = "hr_contact"
	PoolIrrelevant       = "irrelevant_question"
)

// #region pools
func defaultPools() map[string][]string {
	return map[string][]string{
		PoolNoContext: {
			"That's a question even our smartest rooster hasn't heard before! I don't have that info in my database, but I'm sure our HR team would love to help you out!",
			"Oops! That's not something I've learned from our Kazifarm documents. Even chickens know their limits! But hey, our customer service team is always ready to assist!",
			"That's beyond my chicken brain's knowledge! I don't have that information, but our friendly staff at Kazi Farms would be happy to help!",
			"I'm stumped! That's not in my Kazifarm knowledge base. Even our wisest hen would be confused! Try reaching out to our support team!",
			"That's a question that would make any chicken scratch their head! I don't have that info in my database, but our team is here to help!",
			"My database is clucking empty on that topic! That's not something I've learned from our Kazifarm documents. Contact us for more details!",
		},
		PoolLowConfidence: {
			"I found some related info, but I'm not confident enough to give you a proper answer. Even chickens need to be sure before they cluck!",
			"I'm like a chicken with a half-hatched egg - I have some info but it's not complete! Let me connect you with someone who knows better!",
			"I'm not 100% sure about this one. Even our most confident rooster would want to double-check!",
			"I have some information, but I'd rather not give you half-baked answers. Our team can provide you with accurate details!",
			"I'm as uncertain as a chicken in a new coop! I have some info but I'm not confident it's complete. Let our experts help you!",
			"My confidence is lower than a chicken's flight altitude! I found some related content but I'd recommend checking with our team!",
		},
		PoolGeneralHelp: {
			"I'm here to help with Kazi Farms information! Try asking me about salaries, allowances, policies, or leave information!",
			"I'm as helpful as a mother hen with her chicks! I can assist with HR policies, employee benefits, and company information!",
			"I'm ready to help! Ask me about our policies, procedures, or any Kazi Farms related questions!",
			"I'm your friendly Kazi Farms assistant! I can help with employee information, policies, and company details!",
			"I'm here to help you navigate through Kazi Farms information! Try asking about specific policies or procedures!",
			"I'm as knowledgeable as a rooster about morning calls! I can help with HR queries, policies, and company information!",
		},
		PoolPersonalIdentity: {
			"I can't provide personal information about users. I'm here to help with Kazi Farms HR policies, salary information, and company procedures.",
			"I don't have access to personal user information. I can assist you with company policies, employee benefits, and HR-related questions.",
			"I'm designed to help with Kazi Farms information, not personal identity questions. Please ask about our policies, procedures, or employee benefits.",
			"I can't identify users or provide personal information. I'm here to help with Kazi Farms HR and company information.",
		},
		PoolPersonalGreeting: clone(greetingReplies),
		PoolHRContact: {
			"For HR-related inquiries, please contact our HR Department directly. I can help you with HR policies, salary information, and company procedures from our knowledge base.",
			"I can assist with HR policies and procedures from our documents. For specific HR contact information, please reach out to our HR Department.",
			"I'm here to help with HR policies and information from our knowledge base. For direct HR contact, please contact our HR Department.",
			"I can provide information about HR policies and procedures. For HR contact details, please contact our HR Department directly.",
		},
		PoolIrrelevant: {
			"I'm a Kazi Farms chatbot, not a sports commentator! I can tell you about supervisor salaries, but not football captains!",
			"That's not in my Kazi Farms database! I'm more of a 'salary structures and leave policies' kind of chatbot!",
			"I'm clucking with confusion! I know everything about Kazi Farms policies, but nothing about sports teams!",
			"I'm as lost as a chicken in a library! I can help with employee benefits, but not with general knowledge questions!",
			"I'm specialized in Kazi Farms information, not sports trivia! I can tell you about allowances, but not about team captains!",
			"I'm a Kazi Farms chatbot, not a general knowledge quiz master! I can help with company procedures though!",
			"I'm as confused as a rooster at a cat convention! I know Kazi Farms inside out, but not sports or general topics!",
			"I'm a Kazi Farms chatbot, not a sports encyclopedia! I can help with salary information, but not team rosters!",
			"I'm clueless about that topic, but I'm an expert on Kazi Farms policies and procedures!",
			"I'm as helpful as a mother hen with Kazi Farms info, but completely useless with sports questions!",
		},
	}
}

// #endregion

// #region suggestions
func defaultSuggestionGroups() []SuggestionGroup {
	return []SuggestionGroup{
		{
			Words: []string{"salary", "pay", "wage", "money"},
			Suggestions: []string{
				"Salary structures for Management Trainees",
				"Salary scales for different job groups",
				"Yearly increment policies",
				"Performance-based salary reviews",
			},
		},
		{
			Words: []string{"allowance", "benefit", "perk"},
			Suggestions: []string{
				"House allowance for different locations",
				"Transport allowance policies",
				"Medical allowance benefits",
				"Production and performance bonuses",
			},
		},
		{
			Words: []string{"leave", "vacation", "holiday", "off"},
			Suggestions: []string{
				"Sick leave policies and procedures",
				"Annual leave entitlements",
				"Casual leave guidelines",
				"Maternity and paternity leave",
			},
		},
		{
			Words: []string{"policy", "rule", "regulation"},
			Suggestions: []string{
				"HR policies and procedures",
				"Employee conduct policies",
				"Safety and security policies",
				"Company regulations and guidelines",
			},
		},
	}
}

// #endregion

func defaultFallback() FallbackTables {
	return FallbackTables{
		Pools:            defaultPools(),
		SuggestionGroups: defaultSuggestionGroups(),
		GeneralTopics:    clone(helpTopics),
		ContactLines: []string{
			"HR Department: +880-XXX-XXXXXXX",
			"Customer Service: +880-XXX-XXXXXXX",
			"Email: info@kazifarms.com",
			"Website: www.kazifarms.com",
			"Office Hours: 9:00 AM - 5:00 PM (Sunday-Thursday)",
		},
		Encouragements: []string{
			"Don't worry! Even the best chickens need help sometimes!",
			"Every question is a good question - that's how we learn!",
			"Keep asking! Curiosity is the first step to knowledge!",
			"Your question helps us improve our services!",
			"We're here to help you succeed at Kazi Farms!",
			"Every employee question matters to us!",
		},
		IdentityKeywords: clone(identityKeywords),
		GreetingKeywords: clone(greetingKeywords),
		HRContactWords: []string{
			"hr email", "hr contact", "hr department", "hr phone", "hr number", "contact hr",
			"hr address", "hr office", "hr manager", "hr director", "give me email of hr",
		},
	}
}

func defaultIrrelevance() IrrelevanceTables {
	return IrrelevanceTables{DomainKeywords: []string{
		"salary", "pay", "wage", "compensation", "income", "earnings", "payment",
		"allowance", "benefit", "bonus", "incentive", "house allowance", "transport allowance",
		"medical allowance", "food allowance",
		"leave", "vacation", "sick leave", "annual leave", "casual leave", "maternity leave",
		"paternity leave", "holiday",
		"hr", "human resources", "employee", "staff", "personnel", "recruitment", "hiring",
		"policy", "procedure",
		"job", "position", "role", "designation", "management", "supervisor", "manager",
		"director", "trainee",
		"kazi farms", "kazi", "farms", "company", "department", "office", "work", "employment",
	}}
}
