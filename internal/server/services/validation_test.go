package services

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name       string
		in         Registration
		wantFields []string
	}{
		{"valid", Registration{"Teste", "teste@email.com", "1234"}, nil},
		{"accented name", Registration{"Zoë", "zoe@email.com", "1234"}, nil},
		{"all wrong", Registration{"Te", "testeemailcom", "12"}, []string{FieldName, FieldEmail, FieldPassword}},
		{"display name email", Registration{"Teste", "Teste <teste@email.com>", "1234"}, []string{FieldEmail}},
		{"empty email", Registration{"Teste", "", "1234"}, []string{FieldEmail}},
		{"long name", Registration{strings.Repeat("a", MaxNameLength+1), "teste@email.com", "1234"}, []string{FieldName}},
		{"long password", Registration{"Teste", "teste@email.com", strings.Repeat("p", MaxPasswordBytes+1)}, []string{FieldPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalize().Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestSessionInputValidate(t *testing.T) {
	assert.NoError(t, SessionInput{CarName: "M3 GT2", LapCount: "3", LapTime: 25.9}.Validate())
	assert.NoError(t, SessionInput{CarName: "M3 GT2", LapTime: 0.01}.Validate())

	for _, lt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := SessionInput{CarName: "M3 GT2", LapTime: lt}.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, FieldLapTime)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"senha": "b", "email": "a"}}
	assert.Equal(t, "validation failed: email: a; senha: b", err.Error())
}
