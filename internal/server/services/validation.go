package services

import (
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// Form field names shared by the HTML forms, the JSON API and the
// validation messages.
const (
	FieldName     = "nome"
	FieldEmail    = "email"
	FieldPassword = "senha"
	FieldCarName  = "nome_carro"
	FieldLapCount = "quantidade_volta"
	FieldLapTime  = "tempo_volta"
	FieldUserID   = "usuario_id"
)

const (
	MinNameLength     = 3
	MaxNameLength     = 100
	MaxEmailLength    = 254
	MinPasswordLength = 4
	MaxPasswordBytes  = 72
	MaxCarNameLength  = 100
)

// ValidationError lists the offending fields with a user-facing message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NormalizeEmail trims and lower-cases an address; it is the stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Registration is the raw sign-up form.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Normalize returns a copy with the name trimmed and the email normalized.
// The password is left untouched.
func (r Registration) Normalize() Registration {
	return Registration{
		Name:     strings.TrimSpace(r.Name),
		Email:    NormalizeEmail(r.Email),
		Password: r.Password,
	}
}

// Validate checks a normalized registration.
func (r Registration) Validate() error {
	v := &ValidationError{}

	switch n := utf8.RuneCountInString(r.Name); {
	case n < MinNameLength:
		v.add(FieldName, fmt.Sprintf("O nome deve ter pelo menos %d caracteres.", MinNameLength))
	case n > MaxNameLength:
		v.add(FieldName, fmt.Sprintf("O nome deve ter no máximo %d caracteres.", MaxNameLength))
	}

	if !validEmail(r.Email) {
		v.add(FieldEmail, "Informe um e-mail válido.")
	}

	switch {
	case utf8.RuneCountInString(r.Password) < MinPasswordLength:
		v.add(FieldPassword, fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", MinPasswordLength))
	case len(r.Password) > MaxPasswordBytes:
		v.add(FieldPassword, "A senha é longa demais.")
	}

	return v.orNil()
}

func validEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength || !strings.Contains(email, "@") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != ""
}

// SessionInput is a lap record as submitted by the game client.
type SessionInput struct {
	CarName  string  `json:"nome_carro"`
	LapCount string  `json:"quantidade_volta"`
	LapTime  float64 `json:"tempo_volta"`
}

func (in SessionInput) Normalize() SessionInput {
	return SessionInput{
		CarName:  strings.TrimSpace(in.CarName),
		LapCount: strings.TrimSpace(in.LapCount),
		LapTime:  in.LapTime,
	}
}

func (in SessionInput) Validate() error {
	v := &ValidationError{}

	switch n := utf8.RuneCountInString(in.CarName); {
	case n == 0:
		v.add(FieldCarName, "Informe o carro.")
	case n > MaxCarNameLength:
		v.add(FieldCarName, fmt.Sprintf("O nome do carro deve ter no máximo %d caracteres.", MaxCarNameLength))
	}

	if in.LapCount != "" && strings.Trim(in.LapCount, "0123456789") != "" {
		v.add(FieldLapCount, "A quantidade de voltas deve ser um número inteiro.")
	}

	if math.IsNaN(in.LapTime) || math.IsInf(in.LapTime, 0) || in.LapTime <= 0 {
		v.add(FieldLapTime, "O tempo de volta deve ser positivo.")
	}

	return v.orNil()
}
