package normalizer

import (
	"strconv"
	"strings"
)

// Model output nests sections inconsistently from call to call: a field may
// sit at the top level, under a lowercase section key, or under a capitalized
// one. Each field therefore has an ordered list of candidate paths tried in
// sequence; the first hit wins and a schema-appropriate default covers a miss.
type strategy struct {
	field string
	paths []string
}

var extractionStrategies = map[string]strategy{
	"heroTitles": {
		field: "heroTitles",
		paths: []string{"heroTitles", "heroTitle", "hero.titles", "hero.title", "Hero.Titles", "Hero.Title"},
	},
	"heroDescription": {
		field: "heroDescription",
		paths: []string{"heroDescription", "hero.description", "Hero.Description"},
	},
	"features": {
		field: "features",
		paths: []string{"features", "content.features", "Features"},
	},
	"pricingTiers": {
		field: "pricingTiers",
		paths: []string{"pricingTiers", "pricing.tiers", "pricing", "Pricing", "PricingTiers"},
	},
	"testimonials": {
		field: "testimonials",
		paths: []string{"testimonials", "Testimonials"},
	},
	"faqs": {
		field: "faqs",
		paths: []string{"faqs", "faq", "FAQs", "FAQ"},
	},
	"ctaTitle": {
		field: "ctaTitle",
		paths: []string{"ctaTitle", "cta.title", "CTA.Title"},
	},
	"ctaDescription": {
		field: "ctaDescription",
		paths: []string{"ctaDescription", "cta.description", "CTA.Description"},
	},
}

// extract probes the parsed document for a field's candidate paths in order.
func extract(doc map[string]any, field string) (any, bool) {
	s, ok := extractionStrategies[field]
	if !ok {
		return nil, false
	}
	for _, path := range s.paths {
		if v, found := lookup(doc, path); found {
			return v, true
		}
	}
	return nil, false
}

// lookup walks a dot-separated path through nested objects.
func lookup(doc map[string]any, path string) (any, bool) {
	var current any = doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// coerceString turns any scalar leaf into a string. Objects and arrays in
// leaf positions collapse to empty so a default takes over.
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// toSlice returns the value as a generic slice, wrapping a lone object or
// string into a one-element slice.
func toSlice(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case nil:
		return nil
	default:
		return []any{val}
	}
}

// toStringSlice coerces every element, dropping ones that collapse to empty.
func toStringSlice(v any) []string {
	var out []string
	for _, item := range toSlice(v) {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// toObject returns the value as an object, or nil.
func toObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return nil
}

// objectString probes an object for the first non-empty string among keys.
func objectString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if s := coerceString(v); s != "" {
				return s
			}
		}
	}
	return ""
}
