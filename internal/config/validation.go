package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	ferrors "git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report yaml key names so messages match the configuration file.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			return Platform(fl.Field().String()).Known()
		})
	})
	return validate
}

// Validate checks struct-level rules and the cross-field constraints tags cannot express.
func Validate(cfg *Config) error {
	if err := configValidator().Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return newConfigurationValidator(cfg).validate()
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").Fatal().Build()
	}
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fmt.Sprintf("%s: %s", trimNamespace(e.Namespace()), validationMessage(e)))
	}
	return ferrors.ConfigError("invalid configuration: "+strings.Join(messages, "; ")).
		WithContext("fields", len(verrs)).
		Build()
}

// trimNamespace drops the root struct name ("Config.site.url" -> "site.url").
func trimNamespace(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + strings.Fields(e.Param())[0] + " is set"
	case "url":
		return fmt.Sprintf("must be a valid URL, got %q", e.Value())
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "startswith":
		return fmt.Sprintf("must start with %q", e.Param())
	case "platform":
		return fmt.Sprintf("unknown platform %q, valid options: %v", e.Value(), Platforms)
	case "bcp47_language_tag":
		return fmt.Sprintf("must be a BCP 47 language tag, got %q", e.Value())
	default:
		return "failed " + e.Tag() + " validation"
	}
}

// configurationValidator coordinates cross-field validation.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateContentTypes(); err != nil {
		return err
	}
	if err := cv.validateTaxonomies(); err != nil {
		return err
	}
	return cv.validateScheduler()
}

func (cv *configurationValidator) validateContentTypes() error {
	seen := make(map[string]bool, len(cv.config.ContentTypes))
	for _, ct := range cv.config.ContentTypes {
		if seen[ct.Name] {
			return ferrors.ConfigError("duplicate content type: " + ct.Name).Build()
		}
		seen[ct.Name] = true
	}
	return nil
}

func (cv *configurationValidator) validateTaxonomies() error {
	seen := make(map[string]bool, len(cv.config.Taxonomies))
	for _, tax := range cv.config.Taxonomies {
		if seen[tax] {
			return ferrors.ConfigError("duplicate taxonomy: " + tax).Build()
		}
		seen[tax] = true
	}
	return nil
}

func (cv *configurationValidator) validateScheduler() error {
	if !cv.config.Scheduler.Enabled {
		return nil
	}
	d, err := time.ParseDuration(cv.config.Scheduler.Interval)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid scheduler interval").
			WithContext("interval", cv.config.Scheduler.Interval).
			Fatal().
			Build()
	}
	if d < time.Minute {
		return ferrors.ConfigError("scheduler interval must be at least 1m").
			WithContext("interval", cv.config.Scheduler.Interval).
			Build()
	}
	return nil
}
