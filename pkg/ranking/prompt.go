package ranking

// Decision prompts shown above a matchup.
const (
	PromptUIUX        = "Which change would make the product noticeably easier or more pleasant to use?"
	PromptDataQuality = "Which fix would do more to make the data trustworthy?"
	PromptWorkflow    = "Which change would save more time in day-to-day work?"
	PromptBugFix      = "Which bug causes more pain for the people who hit it?"
	PromptFeature     = "Which feature would users miss more if it never shipped?"
	PromptCategory    = "Both are in the same area. Which would deliver more value?"

	PromptQuickWin   = "Both are quick wins. Which one pays off more for the effort?"
	PromptSameEffort = "Both take about the same effort. Which would have the bigger impact?"

	PromptEvidence = "Both have supporting evidence. Which case is more compelling?"
	PromptFallback = "Which of these matters more right now?"
)

// GenerateDecisionPrompt returns the question to ask when a and b are
// compared. A shared category wins over a shared estimated effort, which
// wins over both items carrying evidence. Every input combination yields a
// prompt.
func GenerateDecisionPrompt(a, b Item) string {
	if a.Category == b.Category {
		return categoryPrompt(a.Category)
	}

	if a.Effort == b.Effort && a.Effort.Known() {
		if a.Effort == EffortSmall {
			return PromptQuickWin
		}
		return PromptSameEffort
	}

	if a.EvidenceCount > 0 && b.EvidenceCount > 0 {
		return PromptEvidence
	}

	return PromptFallback
}

func categoryPrompt(c Category) string {
	switch c {
	case CategoryUIUX:
		return PromptUIUX
	case CategoryDataQuality:
		return PromptDataQuality
	case CategoryWorkflow:
		return PromptWorkflow
	case CategoryBugFix:
		return PromptBugFix
	case CategoryFeature:
		return PromptFeature
	default:
		return PromptCategory
	}
}
