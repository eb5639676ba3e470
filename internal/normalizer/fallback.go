package normalizer

import "github.com/ReeceHarding/landing-page/internal/models"

// Cardinality targets for normalized lists.
const (
	heroTitleCount  = 3
	minFeatures     = 6
	minPricingTiers = 2
	minTestimonials = 3
	minFAQs         = 4
)

// defaultHeroTitles pads or replaces the hero title triple.
var defaultHeroTitles = []string{"Build", "Launch", "Scale"}

// iconSet is assigned round-robin to features that arrive without one.
var iconSet = []string{"zap", "shield", "chart", "globe", "rocket", "wrench"}

// placeholderFeatureTitles seed synthesized feature entries when the upstream
// list is short.
var placeholderFeatureTitles = []string{
	"Fast Setup",
	"Secure by Default",
	"Built-in Analytics",
	"Global Reach",
	"Instant Deploys",
	"Developer Tools",
}

// placeholderTestimonials pad short testimonial lists.
var placeholderTestimonials = []models.Testimonial{
	{Name: "Alex Kim", Role: "Founder", Content: "This saved us weeks of work getting our page live."},
	{Name: "Maria Santos", Role: "Product Manager", Content: "Exactly what we needed to validate our idea quickly."},
	{Name: "Jordan Lee", Role: "Engineer", Content: "Clean, fast, and it just works."},
}

// placeholderFAQs pad short FAQ lists.
var placeholderFAQs = []models.FAQ{
	{Question: "How do I get started?", Answer: "Sign up and describe your idea; a page is generated in seconds."},
	{Question: "Can I customize the content?", Answer: "Every section can be regenerated or edited after creation."},
	{Question: "Is there a free plan?", Answer: "Yes, the starter tier is free and includes everything you need to launch."},
	{Question: "How long is my page available?", Answer: "Generated pages stay live for 30 days."},
}

// placeholderPricingTiers pad short pricing lists.
var placeholderPricingTiers = []models.PricingTier{
	{
		Name:        "Starter",
		Price:       "Free",
		Description: "Everything you need to launch your first page.",
		Benefits:    []string{"1 landing page", "Shareable link", "Basic analytics"},
	},
	{
		Name:        "Pro",
		Price:       "$19/mo",
		Description: "For teams iterating on multiple ideas.",
		Benefits:    []string{"Unlimited pages", "Custom domain", "Priority support"},
	},
}

// fallbackPage is returned whenever the accumulated upstream text cannot be
// parsed, so the pipeline always yields a renderable record.
func fallbackPage() models.LandingPage {
	page := models.LandingPage{
		Hero: models.Hero{
			Titles:      append([]string(nil), defaultHeroTitles...),
			Description: "Turn your idea into a polished landing page in seconds.",
		},
		CTA: models.CTA{
			Title:       "Ready to get started?",
			Description: "Launch your page today and start collecting signups.",
		},
	}

	for i, title := range placeholderFeatureTitles {
		page.Features = append(page.Features, models.Feature{
			Title:   title,
			Content: featureSentence(title),
			Icon:    iconSet[i%len(iconSet)],
		})
	}
	page.PricingTiers = clonePricingTiers(placeholderPricingTiers)
	page.Testimonials = append([]models.Testimonial(nil), placeholderTestimonials...)
	page.FAQs = append([]models.FAQ(nil), placeholderFAQs...)

	return page
}

// featureSentence templates body copy for a feature that arrived as a bare
// title string.
func featureSentence(title string) string {
	return title + " is built in, so you can focus on growing your business."
}

func clonePricingTiers(tiers []models.PricingTier) []models.PricingTier {
	out := make([]models.PricingTier, len(tiers))
	copy(out, tiers)
	for i := range out {
		out[i].Benefits = append([]string(nil), tiers[i].Benefits...)
	}
	return out
}
