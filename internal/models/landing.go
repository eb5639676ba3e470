// Package models defines the landing-page content record shared by the
// normalizer, the content store and the HTTP API.
package models

import "time"

// LandingPage is the normalized content record for one generated landing
// page. Records are written once at generation time and never updated.
type LandingPage struct {
	ID string `json:"id,omitempty"`

	Hero         Hero          `json:"hero"`
	Features     []Feature     `json:"features"`
	PricingTiers []PricingTier `json:"pricingTiers"`
	Testimonials []Testimonial `json:"testimonials"`
	FAQs         []FAQ         `json:"faqs"`
	CTA          CTA           `json:"cta"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Hero is the top section: exactly three short titles after normalization
// plus one descriptive sentence.
type Hero struct {
	Titles      []string `json:"titles"`
	Description string   `json:"description"`
}

// Feature is one product feature card.
type Feature struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon"`
}

// PricingTier is one pricing option.
type PricingTier struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// Testimonial is one customer quote. Avatar may be empty.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar,omitempty"`
}

// FAQ is one question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CTA is the closing call-to-action block.
type CTA struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MissingFields reports which required sections are absent. A stored record
// naming any field here was written by an incompatible older writer.
func (p *LandingPage) MissingFields() []string {
	var missing []string
	if len(p.Hero.Titles) == 0 {
		missing = append(missing, "hero.titles")
	}
	if len(p.Features) == 0 {
		missing = append(missing, "features")
	}
	if len(p.PricingTiers) == 0 {
		missing = append(missing, "pricingTiers")
	}
	if len(p.Testimonials) == 0 {
		missing = append(missing, "testimonials")
	}
	if len(p.FAQs) == 0 {
		missing = append(missing, "faqs")
	}
	if p.CTA.Title == "" {
		missing = append(missing, "cta.title")
	}
	return missing
}
