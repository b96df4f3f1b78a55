package classifier

import (
	"context"
	"strings"
)

// ruleGroup maps a keyword group to a category. Group order is the
// tie-break policy: the first matching group wins, so refund is checked
// before delivery issues, modifications and the rest.
type ruleGroup struct {
	keywords   []string
	category   string
	confidence int
	reasoning  string
}

var ruleGroups = []ruleGroup{
	{
		keywords:   []string{"refund", "money back", "chargeback"},
		category:   "refund",
		confidence: 90,
		reasoning:  "Refund keywords detected",
	},
	{
		keywords:   []string{"never received", "didn't get", "didnt get", "where are my headshots", "not received photos"},
		category:   "pictures-not-received-spam",
		confidence: 85,
		reasoning:  "Delivery issue keywords detected",
	},
	{
		keywords:   []string{"make my hair", "change hair", "longer hair", "shorter hair", "modify"},
		category:   "regeneration",
		confidence: 80,
		reasoning:  "Modification request detected",
	},
	{
		keywords:   []string{"invoice", "receipt", "billing"},
		category:   "invoice",
		confidence: 90,
		reasoning:  "Invoice request keywords detected",
	},
	{
		keywords:   []string{"reupload", "upload again", "new photos", "different pictures"},
		category:   "reupload",
		confidence: 80,
		reasoning:  "Reupload intent detected",
	},
	{
		keywords:   []string{"followers", "collaboration", "promote on", "influencer"},
		category:   "influencers",
		confidence: 80,
		reasoning:  "Influencer outreach detected",
	},
	{
		keywords:   []string{"team", "enterprise", "bulk"},
		category:   "team-info",
		confidence: 75,
		reasoning:  "Team/enterprise inquiry detected",
	},
	{
		keywords:   []string{"feedback", "suggestion", "how did we do"},
		category:   "feedback",
		confidence: 70,
		reasoning:  "Feedback keywords detected",
	},
	{
		keywords:   []string{"linkedin", "shared on linkedin"},
		category:   "linkedin",
		confidence: 85,
		reasoning:  "LinkedIn share detected",
	},
	{
		keywords:   []string{"seo", "guest post", "backlink", "website ranking"},
		category:   "sppam",
		confidence: 95,
		reasoning:  "Spam keywords detected",
	},
}

// RuleBased classifies by substring matching over the lowercased
// subject and conversation. It has no external dependencies and never
// fails, which makes it the terminal fallback strategy.
type RuleBased struct{}

// NewRuleBased creates the rule-based classifier.
func NewRuleBased() *RuleBased { return &RuleBased{} }

func (r *RuleBased) Name() string { return "rules" }

func (r *RuleBased) Classify(_ context.Context, subject, conversation string) (Result, error) {
	text := strings.ToLower(subject + "\n\n" + conversation)

	for _, g := range ruleGroups {
		for _, kw := range g.keywords {
			if strings.Contains(text, kw) {
				return Result{
					Classification: g.category,
					Confidence:     g.confidence,
					Reasoning:      g.reasoning,
				}, nil
			}
		}
	}

	return Result{
		Classification: CategoryMiscellaneous,
		Confidence:     40,
		Reasoning:      "No clear category match",
	}, nil
}
