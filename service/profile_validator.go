package service

import (
	"strings"

	"ideaforge-backend/models"
)

// ValidateProfile checks the profile is complete enough to generate ideas.
// It returns a *MissingFieldError for the first empty field.
func ValidateProfile(profile models.UserProfile) error {
	if len(nonBlank(profile.Skills)) == 0 {
		return &MissingFieldError{Field: "skills"}
	}
	if len(nonBlank(profile.Interests)) == 0 {
		return &MissingFieldError{Field: "interests"}
	}
	if strings.TrimSpace(profile.CapitalRange) == "" {
		return &MissingFieldError{Field: "capitalRange"}
	}
	return nil
}

// NormalizeProfile trims entries and drops blanks and duplicates, keeping first-seen order
func NormalizeProfile(profile models.UserProfile) models.UserProfile {
	return models.UserProfile{
		Skills:       dedupe(profile.Skills),
		Interests:    dedupe(profile.Interests),
		CapitalRange: strings.TrimSpace(profile.CapitalRange),
	}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
