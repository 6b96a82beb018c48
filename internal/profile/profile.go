// Package profile turns free-text attendee input into searchable text.
//
// Input may be a LinkedIn URL, a pasted profile section, or plain prose.
// The parser never fails: whatever it cannot interpret is passed through
// unchanged as searchable text for the engine.
package profile

import (
	"regexp"
	"sort"
	"strings"
)

// linkedinPattern matches public LinkedIn profile URLs.
var linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/([\w-]+)`)

// skillKeywords are scanned for in pasted profile text.
var skillKeywords = []string{
	"AI", "artificial intelligence", "machine learning", "deep learning",
	"blockchain", "crypto", "DeFi", "web3",
	"climate", "sustainability", "ESG", "carbon", "renewable",
	"finance", "investment", "banking", "fintech",
	"healthcare", "biotech", "pharma", "health",
	"policy", "governance", "regulation", "compliance",
	"technology", "software", "engineering", "data",
	"leadership", "strategy", "consulting", "management",
	"energy", "solar", "wind",
	"cybersecurity", "security", "privacy", "quantum",
	"economics", "trade", "supply chain", "logistics",
}

// roleInterests maps detected role words to implied interests.
var roleInterests = map[string][]string{
	"ceo":        {"leadership", "strategy", "governance", "stakeholder capitalism"},
	"cto":        {"technology", "innovation", "AI", "digital transformation"},
	"cfo":        {"finance", "investment", "risk management", "capital markets"},
	"scientist":  {"research", "innovation", "data", "methodology"},
	"engineer":   {"technology", "systems", "infrastructure", "innovation"},
	"investor":   {"finance", "growth", "markets", "ESG"},
	"professor":  {"research", "education", "academic", "thought leadership"},
	"doctor":     {"healthcare", "medical", "patient outcomes", "health systems"},
	"founder":    {"entrepreneurship", "innovation", "startups", "disruption"},
	"director":   {"strategy", "leadership", "governance", "operations"},
	"analyst":    {"data", "research", "insights", "trends"},
	"consultant": {"strategy", "advisory", "transformation", "solutions"},
}

// Profile is the parsed form of attendee input.
type Profile struct {
	// Raw is the original input text.
	Raw string
	// SearchableText is what the engine should vectorize. For plain text
	// it equals Raw; for LinkedIn URLs it is the enriched demo profile.
	SearchableText string
	// IsLinkedIn reports whether Raw was recognized as a LinkedIn URL.
	IsLinkedIn bool
	// Username is the LinkedIn handle when IsLinkedIn is set.
	Username string
	// Skills are keywords detected in pasted text or implied by the URL.
	Skills []string
	// Interests are role-derived interests detected in pasted text.
	Interests []string
}

// IsLinkedInURL reports whether input looks like a LinkedIn profile URL.
func IsLinkedInURL(input string) bool {
	return linkedinPattern.MatchString(input)
}

// Parse interprets attendee input. Direct scraping of LinkedIn is against
// their terms, so URLs are expanded into a plausible profile derived from
// hints in the username rather than fetched.
func Parse(input string) Profile {
	if m := linkedinPattern.FindStringSubmatch(input); m != nil {
		return fromUsername(input, m[1])
	}
	return fromText(input)
}

func fromText(input string) Profile {
	p := Profile{Raw: input, SearchableText: input}
	lower := strings.ToLower(input)

	seenSkill := make(map[string]bool)
	for _, skill := range skillKeywords {
		if strings.Contains(lower, strings.ToLower(skill)) && !seenSkill[skill] {
			seenSkill[skill] = true
			p.Skills = append(p.Skills, skill)
		}
	}

	seenInterest := make(map[string]bool)
	for role, interests := range roleInterests {
		if !strings.Contains(lower, role) {
			continue
		}
		for _, interest := range interests {
			if !seenInterest[interest] {
				seenInterest[interest] = true
				p.Interests = append(p.Interests, interest)
			}
		}
	}
	// Map iteration order is random; keep output reproducible.
	sort.Strings(p.Interests)

	return p
}

// usernameHints enriches URL-derived profiles from keywords in the handle.
var usernameHints = []struct {
	keys   []string
	about  string
	skills []string
}{
	{
		keys:   []string{"climate", "green", "sustain", "eco"},
		about:  "Deep focus on climate tech and environmental sustainability.",
		skills: []string{"Climate Finance", "ESG", "Carbon Markets"},
	},
	{
		keys:   []string{"tech", "ai", "data", "digital"},
		about:  "Pioneer in AI and digital transformation initiatives.",
		skills: []string{"Machine Learning", "Data Science", "Digital Strategy"},
	},
	{
		keys:   []string{"health", "med", "bio", "pharma"},
		about:  "Committed to advancing global health and healthcare innovation.",
		skills: []string{"Healthcare Innovation", "Biotech", "Health Policy"},
	},
	{
		keys:   []string{"finance", "invest", "capital", "bank"},
		about:  "Expert in global finance and investment strategies.",
		skills: []string{"Investment", "Capital Markets", "Sustainable Finance"},
	},
}

func fromUsername(input, username string) Profile {
	p := Profile{
		Raw:        input,
		IsLinkedIn: true,
		Username:   username,
		Skills:     []string{"Strategy", "Innovation", "Leadership"},
	}

	about := []string{
		"Experienced leader focused on driving innovation and sustainable growth.",
		"Passionate about technology, climate action, and global cooperation.",
	}

	lower := strings.ToLower(username)
	for _, hint := range usernameHints {
		for _, key := range hint.keys {
			if strings.Contains(lower, key) {
				about = append(about, hint.about)
				p.Skills = append(p.Skills, hint.skills...)
				break
			}
		}
	}

	p.SearchableText = strings.Join(about, " ") + " Skills: " + strings.Join(p.Skills, ", ")
	return p
}
