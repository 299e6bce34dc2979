package validate

import (
    "strings"

    "github.com/go-playground/validator/v10"
)

// messages maps validator tags to human templates. {field} and
// {param} are substituted from the violation.
var messages = map[string]string{
    "required": "{field} is required",
    "min":      "{field} must contain at least {param} item(s)",
    "max":      "{field} must contain at most {param} item(s)",
    "gte":      "{field} must be at least {param}",
    "lte":      "{field} must be at most {param}",
    "datetime": "{field} must be a date in YYYY-MM-DD form",
    "oneof":    "{field} must be one of: {param}",
}

func message(fe validator.FieldError) string {
    tpl, ok := messages[fe.Tag()]
    if !ok {
        return fe.Field() + " is invalid"
    }
    r := strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param())
    return r.Replace(tpl)
}
