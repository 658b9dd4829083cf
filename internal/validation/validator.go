package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ZeroSibe/nc-news/internal/apperr"
	"github.com/ZeroSibe/nc-news/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mitchellh/mapstructure"
)

// Query and payload keys understood by the resources
const (
	ParamSortBy   = "sort_by"
	ParamOrder    = "order"
	ParamTopic    = "topic"
	ParamSlug     = "slug"
	FieldIncVotes = "inc_votes"
)

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report fields by their payload key rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseID parses a path identifier into a non-negative integer
func ParseID(raw string) (int64, error) {
	if raw == "" {
		return 0, apperr.InvalidIdentifier("identifier is required")
	}
	if raw[0] == '+' || raw[0] == '-' {
		return 0, apperr.InvalidIdentifier("identifier must be a non-negative integer, got %q", raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidIdentifier("identifier must be a non-negative integer, got %q", raw)
	}
	return id, nil
}

// CheckAllowed fails with InvalidQuery unless value is in allowed
func CheckAllowed(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return apperr.InvalidQuery("invalid %s %q, must be one of: %s", field, value, strings.Join(allowed, ", "))
}

// ParseArticleFilter resolves the article listing query. Unknown keys are ignored.
func ParseArticleFilter(params map[string]string) (models.ArticleFilter, error) {
	filter := models.DefaultArticleFilter()

	if v := params[ParamSortBy]; v != "" {
		if err := CheckAllowed(ParamSortBy, v, models.ValidSortColumns); err != nil {
			return filter, err
		}
		filter.SortBy = v
	}

	if v := params[ParamOrder]; v != "" {
		if err := CheckAllowed(ParamOrder, v, models.ValidOrders); err != nil {
			return filter, err
		}
		filter.Order = v
	}

	filter.Topic = params[ParamTopic]
	return filter, nil
}

// DecodeCommentPayload decodes and checks a new comment body
func DecodeCommentPayload(payload map[string]interface{}) (models.CommentPayload, error) {
	var p models.CommentPayload

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &p,
		TagName:    "mapstructure",
		DecodeHook: strictStringHook,
	})
	if err != nil {
		return p, err
	}
	if err := dec.Decode(payload); err != nil {
		return p, apperr.InvalidPayload("malformed comment: %v", err)
	}

	if err := payloadValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return p, apperr.InvalidPayload("%s is required and must not be blank", verrs[0].Field())
		}
		return p, apperr.InvalidPayload("invalid comment: %v", err)
	}

	return p, nil
}

var stringType = reflect.TypeOf("")

// strictStringHook only lets JSON strings into string fields. json.Number is a
// string kind and would otherwise be copied through.
func strictStringHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() == reflect.String && from != stringType {
		return nil, fmt.Errorf("expected a string, got %v", data)
	}
	return data, nil
}

// ParseVoteDelta extracts inc_votes as an integer. Negative values are allowed.
func ParseVoteDelta(payload map[string]interface{}) (int, error) {
	raw, ok := payload[FieldIncVotes]
	if !ok || raw == nil {
		return 0, apperr.InvalidPayload("%s is required", FieldIncVotes)
	}

	var n int64
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n = i
			break
		}
		// 5.0 and 1e2 are integral but not plain integers
		f, err := v.Float64()
		if err != nil {
			return 0, invalidDelta(raw)
		}
		i, ok := integral(f)
		if !ok {
			return 0, invalidDelta(raw)
		}
		n = i
	case float64:
		i, ok := integral(v)
		if !ok {
			return 0, invalidDelta(raw)
		}
		n = i
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, invalidDelta(raw)
		}
		n = i
	default:
		return 0, invalidDelta(raw)
	}

	// votes is a 32-bit column
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, apperr.InvalidPayload("%s out of range: %d", FieldIncVotes, n)
	}
	return int(n), nil
}

// integral reports whether f is a whole number inside the vote range
func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

func invalidDelta(raw interface{}) error {
	return apperr.InvalidPayload("%s must be an integer, got %s", FieldIncVotes, fmt.Sprintf("%v", raw))
}
