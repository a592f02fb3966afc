package service

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

const (
	msgNameLength   = "Name must be between 3 and 50 characters."
	msgNamePattern  = "Name must contain only letters and spaces."
	msgEmailInvalid = "Invalid email address."
	msgBioLength    = "Bio must be 500 characters or less."
	msgBioForbidden = "Bio contains forbidden characters."
)

func TestValidateProfile(t *testing.T) {
	v := validator.New()

	cases := []struct {
		name  string
		input ProfileInput
		want  []string // nil means valid
	}{
		{
			name:  "valid input",
			input: ProfileInput{Name: "Alice Smith", Email: "alice@example.com", Bio: "Loves hiking"},
		},
		{
			name:  "name too short",
			input: ProfileInput{Name: "Al", Email: "a@b.com", Bio: "fine"},
			want:  []string{msgNameLength},
		},
		{
			name:  "name too long",
			input: ProfileInput{Name: strings.Repeat("a", 51), Email: "a@b.com", Bio: "fine"},
			want:  []string{msgNameLength},
		},
		{
			name:  "name with digits",
			input: ProfileInput{Name: "Alice99", Email: "a@b.com", Bio: "fine"},
			want:  []string{msgNamePattern},
		},
		{
			name:  "invalid email",
			input: ProfileInput{Name: "Alice Smith", Email: "not-an-email", Bio: "fine"},
			want:  []string{msgEmailInvalid},
		},
		{
			name:  "empty email",
			input: ProfileInput{Name: "Alice Smith", Email: "", Bio: "fine"},
			want:  []string{msgEmailInvalid},
		},
		{
			name:  "script tag in bio",
			input: ProfileInput{Name: "Alice Smith", Email: "alice@example.com", Bio: "<script>"},
			want:  []string{msgBioForbidden},
		},
		{
			name:  "ampersand in bio",
			input: ProfileInput{Name: "Alice Smith", Email: "alice@example.com", Bio: "rock & roll"},
			want:  []string{msgBioForbidden},
		},
		{
			name:  "bio too long",
			input: ProfileInput{Name: "Alice Smith", Email: "alice@example.com", Bio: strings.Repeat("x", 501)},
			want:  []string{msgBioLength},
		},
		{
			name:  "empty bio is valid",
			input: ProfileInput{Name: "Alice Smith", Email: "alice@example.com", Bio: ""},
		},
		{
			name:  "all violations collected in declaration order",
			input: ProfileInput{Name: "!", Email: "nope", Bio: strings.Repeat("<", 501)},
			want:  []string{msgNameLength, msgNamePattern, msgEmailInvalid, msgBioLength, msgBioForbidden},
		},
		{
			name:  "length check precedes pattern check per field",
			input: ProfileInput{Name: "a1", Email: "a@b.com", Bio: "fine"},
			want:  []string{msgNameLength, msgNamePattern},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateProfile(v, tc.input)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			var valErr *ValidationError
			if err == nil {
				t.Fatalf("expected invalid, got nil")
			}
			if !errors.As(err, &valErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !reflect.DeepEqual(valErr.Messages, tc.want) {
				t.Errorf("messages:\n got  %q\n want %q", valErr.Messages, tc.want)
			}
		})
	}
}

func TestValidationError_JoinsWithPipe(t *testing.T) {
	err := &ValidationError{Messages: []string{msgNameLength, msgEmailInvalid}}
	want := msgNameLength + " | " + msgEmailInvalid
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
