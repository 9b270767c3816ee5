package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Source names.
const (
	SourceAPI  = "api"
	SourceDump = "dump"
)

// MaxBatchSize is the largest number of pages a single content query may
// request from the MediaWiki API.
const MaxBatchSize = 50

// Locales lists the wiki language editions the scraper accepts.
var Locales = []string{
	"en", "de", "fr", "es", "it", "nl", "pl", "pt", "ru", "sv",
	"ja", "zh", "uk", "ca", "no", "fi", "cs", "hu", "ko", "tr",
}

// IsSupportedLocale reports whether locale is one of Locales.
func IsSupportedLocale(locale string) bool {
	return slices.Contains(Locales, locale)
}

// Config is the immutable run configuration. It is built once by the CLI,
// validated, and then passed by value to each component.
type Config struct {
	Locale       string `validate:"required,locale"`
	ArticleCount int    `validate:"gt=0"`
	SampleLength int    `validate:"gt=0"`
	OutPath      string `validate:"required"`
	Source       string `validate:"oneof=api dump"`
	DumpPath     string `validate:"required_if=Source dump"`
	Format       string `validate:"oneof=text jsonl"`
	Encoding     string `validate:"oneof=utf-8 utf-8-bom utf-16le utf-16be"`
	BatchSize    int    `validate:"gt=0,lte=50"`
	MaxRetries   int    `validate:"gte=0,lte=10"`
}

// DefaultConfig returns a Config with every optional field set.
func DefaultConfig() Config {
	return Config{
		Source:     SourceAPI,
		Format:     "text",
		Encoding:   "utf-8",
		BatchSize:  MaxBatchSize,
		MaxRetries: 3,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		return IsSupportedLocale(fl.Field().String())
	})
	return v
}

// Validate checks every field and returns one error describing all failures.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "locale":
		return fmt.Sprintf("unsupported locale %q (supported: %s)", fe.Value(), strings.Join(Locales, ", "))
	case "required", "required_if":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "gt", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), comparison(fe.Tag()), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return ">"
	case "gte":
		return ">="
	default:
		return "<="
	}
}
