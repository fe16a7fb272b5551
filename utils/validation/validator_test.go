package validation

import "testing"

func TestValidateSlug(t *testing.T) {
	valid := []string{"engineering", "computer-science", "a1", "college-of-arts-2024"}
	for _, s := range valid {
		if !ValidateSlug(s) {
			t.Errorf("expected %q to be a valid slug", s)
		}
	}

	invalid := []string{"", "a", "UPPER", "has space", "trailing-", "-leading", "double--dash", "under_score"}
	for _, s := range invalid {
		if ValidateSlug(s) {
			t.Errorf("expected %q to be an invalid slug", s)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"College of Engineering", "college-of-engineering"},
		{"  Computer Science  ", "computer-science"},
		{"Arts & Humanities", "arts-humanities"},
		{"Already-Slugged", "already-slugged"},
		{"2024 Intake!!", "2024-intake"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugRuleViaStructValidation(t *testing.T) {
	type payload struct {
		Slug string `validate:"required,slug"`
	}
	v := NewValidator()

	if err := v.ValidateStruct(payload{Slug: "valid-slug"}); err != nil {
		t.Errorf("expected valid slug to pass, got %v", err)
	}
	if err := v.ValidateStruct(payload{Slug: "Not A Slug"}); err == nil {
		t.Error("expected invalid slug to fail")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q, want %q", got, "helloworld")
	}
}
