package checkout

import (
	"html"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = validator.New()
	policy   = bluemonday.StrictPolicy()
)

// CleanProfile strips markup and surrounding whitespace from every field.
func CleanProfile(req models.SaveCandidateRequest) models.CandidateProfile {
	return models.CandidateProfile{
		Name:    clean(req.Name),
		Phone:   clean(req.Phone),
		Address: clean(req.Address),
		Email:   clean(req.Email),
	}
}

func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// MissingFields reports the fields that are blank after trimming. A profile
// with no missing fields is complete enough to place an order.
func MissingFields(p models.CandidateProfile) map[string]string {
	fields := map[string]string{}

	required := []struct{ name, value string }{
		{"name", p.Name},
		{"phone", p.Phone},
		{"address", p.Address},
		{"email", p.Email},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "is required"
		}
	}

	return fields
}

// ValidateProfile adds format checks on top of MissingFields. It is applied
// to new input only; stored profiles are judged by completeness.
func ValidateProfile(p models.CandidateProfile) map[string]string {
	fields := MissingFields(p)

	if _, missing := fields["email"]; !missing {
		if err := validate.Var(strings.TrimSpace(p.Email), "email"); err != nil {
			fields["email"] = "must be a valid email address"
		}
	}

	return fields
}
