package lexicon

// #region topics
var helpTopics = []string{
	"Salary structures for different positions",
	"Allowance policies (house, transport, medical, etc.)",
	"Leave policies (sick, annual, casual, etc.)",
	"Employee benefits and bonuses",
	"HR policies and procedures",
	"Company locations and departments",
	"Job roles and responsibilities",
	"Performance evaluation processes",
}

var greetingReplies = []string{
	"I'm doing great! I'm a chatbot designed to help with Kazi Farms information. How can I assist you with our HR policies, salary information, or company procedures?",
	"I'm functioning perfectly! I'm here to help you with Kazi Farms policies and procedures. What would you like to know about our company?",
	"I'm running smoothly! I'm a Kazi Farms assistant ready to help with employee information, policies, and company details. What can I help you with?",
	"I'm doing well! I'm designed to assist with Kazi Farms HR and company information. How can I help you today?",
	"I'm great! I'm a chatbot specialized in Kazi Farms information. I can help with salary structures, allowances, leave policies, and more. What do you need to know?",
	"I'm excellent! I'm here to help with Kazi Farms policies and procedures. What information can I provide for you today?",
}

// #endregion

func defaultGuard() GuardTables {
	return GuardTables{
		IdentityPatterns: []string{
			`who am i`, `who are you`, `tell me about myself`, `about me`,
			`my information`, `my details`, `my profile`, `my identity`,
			`personal information`, `my name`, `my email`, `my position`,
			`my role`, `identify me`, `my records`, `information about me`,
			`my data`, `my account`, `my profile information`,
		},
		GreetingPatterns: []string{
			`how are you`, `how do you do`, `how's it going`, `how are things`,
			`what's up`, `how's your day`, `are you okay`, `are you fine`,
			`how are you doing`, `how's everything`, `how's life`,
		},
		BlockedResponses: []string{
			"I can't provide personal information about users. I'm here to help with Kazi Farms HR policies, salary information, and company procedures.",
			"I don't have access to personal user information. I can assist you with company policies, employee benefits, and HR-related questions.",
			"I'm designed to help with Kazi Farms information, not personal identity questions. Please ask about our policies, procedures, or employee benefits.",
			"I can't identify users or provide personal information. I'm here to help with Kazi Farms HR and company information.",
			"For privacy and security reasons, I cannot provide personal information. I can help you with company policies, salary structures, and HR procedures.",
			"I'm not authorized to share personal information. I can assist with Kazi Farms policies, employee benefits, and company procedures.",
		},
		GreetingResponses: clone(greetingReplies),
		Suggestions:       clone(helpTopics),
	}
}
