package generator

import "github.com/ReeceHarding/landing-page/internal/llm"

// generationSystemPrompt instructs the model to answer with the landing-page
// JSON document. The normalizer repairs whatever shape actually comes back.
const generationSystemPrompt = `You are a marketing copywriter. Respond with a single JSON object describing a landing page, with these keys:
- "heroTitles": exactly 3 short punchy phrases (problem, solution, outcome)
- "heroDescription": one descriptive sentence
- "features": 6 objects with "title", "content", "icon"
- "pricingTiers": 2 objects with "name", "price", "description", "benefits" (list of strings)
- "testimonials": 3 objects with "name", "role", "content"
- "faqs": 4 objects with "question", "answer"
- "ctaTitle" and "ctaDescription"
Respond with JSON only, no markdown fences or commentary.`

// suggestionPrompt produces one concrete business idea for the suggestion
// endpoint.
const suggestionPrompt = `Suggest one concrete, slightly unusual online business idea in a single sentence. Respond with the sentence only.`

func generationMessages(idea string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: generationSystemPrompt},
		{Role: llm.RoleUser, Content: "Create landing page content for this business idea: " + idea},
	}
}

func suggestionMessages() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleUser, Content: suggestionPrompt},
	}
}
