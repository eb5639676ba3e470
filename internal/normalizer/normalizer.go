// Package normalizer reconstructs the streamed completion output and reshapes
// it into the fixed landing-page schema. The upstream model's structured
// output is unreliable (nesting and cardinality vary call to call), so the
// job here is schema repair, not validation: every input, including garbage,
// yields a renderable record.
package normalizer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ReeceHarding/landing-page/internal/llm"
	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/models"
)

// Normalizer turns accumulated completion text into content records.
type Normalizer struct {
	log logger.Logger
}

// New creates a Normalizer.
func New(log logger.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// Accumulate drains the fragment sequence, concatenating non-idle text in
// arrival order. Idle keep-alive markers are not part of the content payload;
// they are reported through onIdle (may be nil) so the caller can keep its own
// downstream connection alive. Accumulate reports whether the upstream
// completion sentinel was seen; an early end without it is treated as an
// empty result by Normalize.
func (n *Normalizer) Accumulate(fragments <-chan llm.Fragment, onIdle func()) (text string, sawDone bool) {
	var buf strings.Builder
	for f := range fragments {
		if f.Idle {
			if onIdle != nil {
				onIdle()
			}
			continue
		}
		if f.Done {
			sawDone = true
			continue
		}
		buf.WriteString(f.Text)
	}
	return buf.String(), sawDone
}

// Normalize parses the accumulated text and builds a record matching the
// fixed schema. A parse failure substitutes the fallback record instead of
// propagating an error.
func (n *Normalizer) Normalize(raw string) models.LandingPage {
	raw = strings.TrimSpace(raw)
	raw = stripCodeFence(raw)

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		n.log.Warn("Generated content is not valid JSON, using fallback",
			logger.Error(err),
			logger.Int("text_length", len(raw)),
		)
		page := fallbackPage()
		page.CreatedAt = time.Now().UTC()
		return page
	}

	page := models.LandingPage{
		Hero: models.Hero{
			Titles:      n.normalizeHeroTitles(doc),
			Description: n.stringField(doc, "heroDescription", "Turn your idea into a polished landing page in seconds."),
		},
		Features:     n.normalizeFeatures(doc),
		PricingTiers: n.normalizePricingTiers(doc),
		Testimonials: n.normalizeTestimonials(doc),
		FAQs:         n.normalizeFAQs(doc),
		CTA: models.CTA{
			Title:       n.stringField(doc, "ctaTitle", "Ready to get started?"),
			Description: n.stringField(doc, "ctaDescription", "Launch your page today and start collecting signups."),
		},
		CreatedAt: time.Now().UTC(),
	}

	return page
}

// stripCodeFence removes a markdown ```json fence the model sometimes wraps
// its output in.
func stripCodeFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

func (n *Normalizer) stringField(doc map[string]any, field, fallback string) string {
	if v, ok := extract(doc, field); ok {
		if s := coerceString(v); s != "" {
			return s
		}
	}
	return fallback
}

// normalizeHeroTitles yields exactly three short title strings. A single
// entry containing period-separated clauses is split apart first; the result
// is then truncated to three or padded from the default triple.
func (n *Normalizer) normalizeHeroTitles(doc map[string]any) []string {
	var titles []string
	if v, ok := extract(doc, "heroTitles"); ok {
		titles = toStringSlice(v)
	}

	if len(titles) == 1 && strings.Contains(titles[0], ".") {
		titles = splitClauses(titles[0])
	}

	if len(titles) > heroTitleCount {
		titles = titles[:heroTitleCount]
	}
	for len(titles) < heroTitleCount {
		titles = append(titles, defaultHeroTitles[len(titles)])
	}
	return titles
}

// splitClauses splits period-delimited copy into clauses, dropping empties.
func splitClauses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ".") {
		if clause := strings.TrimSpace(part); clause != "" {
			out = append(out, clause)
		}
	}
	return out
}

// normalizeFeatures accepts feature objects or bare strings, coerces every
// sub-field, and pads to the minimum count with synthesized entries. Icons
// are cycled from the fixed set.
func (n *Normalizer) normalizeFeatures(doc map[string]any) []models.Feature {
	var features []models.Feature

	raw, _ := extract(doc, "features")
	for _, item := range toSlice(raw) {
		var f models.Feature
		if obj := toObject(item); obj != nil {
			f.Title = objectString(obj, "title", "name", "Title")
			f.Content = objectString(obj, "content", "description", "body", "Content")
			f.Icon = objectString(obj, "icon", "Icon")
		} else if s := coerceString(item); s != "" {
			// Bare string: the string is the title, body is templated from it
			f.Title = s
		}
		if f.Title == "" {
			continue
		}
		if f.Content == "" {
			f.Content = featureSentence(f.Title)
		}
		if f.Icon == "" {
			f.Icon = iconSet[len(features)%len(iconSet)]
		}
		features = append(features, f)
	}

	for len(features) < minFeatures {
		title := placeholderFeatureTitles[len(features)%len(placeholderFeatureTitles)]
		features = append(features, models.Feature{
			Title:   title,
			Content: featureSentence(title),
			Icon:    iconSet[len(features)%len(iconSet)],
		})
	}
	return features
}

func (n *Normalizer) normalizePricingTiers(doc map[string]any) []models.PricingTier {
	var tiers []models.PricingTier

	raw, _ := extract(doc, "pricingTiers")
	for _, item := range toSlice(raw) {
		obj := toObject(item)
		if obj == nil {
			continue
		}
		tier := models.PricingTier{
			Name:        objectString(obj, "name", "title", "Name"),
			Price:       objectString(obj, "price", "priceLabel", "Price"),
			Description: objectString(obj, "description", "Description"),
			Benefits:    toStringSlice(obj["benefits"]),
		}
		if tier.Benefits == nil {
			tier.Benefits = toStringSlice(obj["features"])
		}
		if tier.Name == "" {
			continue
		}
		tiers = append(tiers, tier)
	}

	for len(tiers) < minPricingTiers {
		tiers = append(tiers, clonePricingTiers(placeholderPricingTiers)[len(tiers)%len(placeholderPricingTiers)])
	}
	return tiers
}

func (n *Normalizer) normalizeTestimonials(doc map[string]any) []models.Testimonial {
	var testimonials []models.Testimonial

	raw, _ := extract(doc, "testimonials")
	for _, item := range toSlice(raw) {
		obj := toObject(item)
		if obj == nil {
			continue
		}
		t := models.Testimonial{
			Name:    objectString(obj, "name", "author", "Name"),
			Role:    objectString(obj, "role", "title", "Role"),
			Content: objectString(obj, "content", "quote", "body", "Content"),
			Avatar:  objectString(obj, "avatar", "Avatar"),
		}
		if t.Name == "" && t.Content == "" {
			continue
		}
		testimonials = append(testimonials, t)
	}

	for len(testimonials) < minTestimonials {
		testimonials = append(testimonials, placeholderTestimonials[len(testimonials)%len(placeholderTestimonials)])
	}
	return testimonials
}

func (n *Normalizer) normalizeFAQs(doc map[string]any) []models.FAQ {
	var faqs []models.FAQ

	raw, _ := extract(doc, "faqs")
	for _, item := range toSlice(raw) {
		obj := toObject(item)
		if obj == nil {
			continue
		}
		f := models.FAQ{
			Question: objectString(obj, "question", "q", "Question"),
			Answer:   objectString(obj, "answer", "a", "Answer"),
		}
		if f.Question == "" {
			continue
		}
		faqs = append(faqs, f)
	}

	for len(faqs) < minFAQs {
		faqs = append(faqs, placeholderFAQs[len(faqs)%len(placeholderFAQs)])
	}
	return faqs
}
