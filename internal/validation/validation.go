// Package validation оборачивает go-playground/validator и добавляет
// доменные теги (рубрики, разделы, формат длительности подкаста).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"theinsight/internal/models"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	once     sync.Once
	validate *validator.Validate

	durationRe = regexp.MustCompile(`^(\d+:[0-5]\d|\d+ min)$`)
	youtubeRe  = regexp.MustCompile(`^https?://(www\.|m\.)?(youtube\.com|youtu\.be)/.+`)
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "article_category", oneOfList(models.ArticleCategories))
		mustRegister(v, "tvshow_category", oneOfList(models.TVShowCategories))
		mustRegister(v, "tvshow_section", oneOfList(models.TVShowSections))
		mustRegister(v, "podcast_duration", func(fl validator.FieldLevel) bool {
			return durationRe.MatchString(fl.Field().String())
		})
		mustRegister(v, "youtube_url", func(fl validator.FieldLevel) bool {
			return youtubeRe.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// oneOfList нужен вместо oneof: значения рубрик содержат пробелы.
func oneOfList(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Struct проверяет структуру и возвращает ошибки по полям; nil, если ошибок нет.
func Struct(s any) []FieldError {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath отбрасывает имя корневой структуры: "ArticleRequest.title" -> "title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot be more than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url", "http_url":
		return field + " must be a valid URL"
	case "email":
		return field + " must be a valid email"
	case "article_category":
		return field + " must be one of: " + strings.Join(models.ArticleCategories, ", ")
	case "tvshow_category":
		return field + " must be one of: " + strings.Join(models.TVShowCategories, ", ")
	case "tvshow_section":
		return field + " must be one of: " + strings.Join(models.TVShowSections, ", ")
	case "podcast_duration":
		return field + ` must be in format "MM:SS" or "X min"`
	case "youtube_url":
		return field + " must be a valid YouTube URL"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
