package config

// FormatRuleID formats a diagnostic identifier based on the given format.
// Falls back to the code if the rule ID is empty.
func FormatRuleID(format RuleFormat, code, ruleID string) string {
	if ruleID == "" {
		return code
	}

	switch format {
	case RuleFormatRule:
		return ruleID
	case RuleFormatCombined:
		return code + "/" + ruleID
	case RuleFormatCode:
		return code
	default:
		return code
	}
}
