package validator

import (
	"strings"
	"testing"

	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      any
		wantFields map[string]string
	}{
		{
			name:  "valid signup",
			input: &usecase.SignupInput{Email: "ann@x.io", Name: "Ann", Password: "Secr3t!"},
		},
		{
			name:  "missing fields",
			input: &usecase.SignupInput{},
			wantFields: map[string]string{
				"email":    "required",
				"name":     "required",
				"password": "required",
			},
		},
		{
			name:       "malformed email and short password",
			input:      &usecase.SignupInput{Email: "not-an-email", Name: "Ann", Password: "12345"},
			wantFields: map[string]string{"email": "email", "password": "min=6"},
		},
		{
			name:       "password beyond bcrypt limit",
			input:      &usecase.SignupInput{Email: "ann@x.io", Name: "Ann", Password: string(make([]byte, 73))},
			wantFields: map[string]string{"password": "maxbytes=72"},
		},
		{
			name:       "multibyte password under rune limit but over byte limit",
			input:      &usecase.SignupInput{Email: "ann@x.io", Name: "Ann", Password: strings.Repeat("😀", 25)},
			wantFields: map[string]string{"password": "maxbytes=72"},
		},
		{
			name:  "multibyte password within byte limit",
			input: &usecase.SignupInput{Email: "ann@x.io", Name: "Ann", Password: strings.Repeat("😀", 18)},
		},
		{
			name:       "refresh uses json field name",
			input:      &usecase.RefreshInput{},
			wantFields: map[string]string{"refresh_token": "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantFields == nil {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantFields, Fields(err))
		})
	}
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(errors.New("plain")))
	assert.Nil(t, Fields(nil))
}
