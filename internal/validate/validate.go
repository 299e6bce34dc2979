// Package validate wraps go-playground/validator behind a package
// singleton. Handlers bind a DTO, pass it through Struct and get a
// VALIDATION_ERROR failure with a readable message when a tag is
// violated. Field names in messages come from the json tags so they
// match what the caller actually sent.
package validate

import (
    "reflect"
    "strings"
    "sync"

    "github.com/go-playground/validator/v10"

    "boxoffice/internal/failure"
)

var (
    once sync.Once
    v    *validator.Validate
)

func get() *validator.Validate {
    once.Do(func() {
        v = validator.New()
        v.RegisterTagNameFunc(func(fld reflect.StructField) string {
            name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
            if name == "" || name == "-" {
                return fld.Name
            }
            return name
        })
    })
    return v
}

// Struct checks s against its validate tags. The first violation is
// folded into a VALIDATION_ERROR; nil means the value passed.
func Struct(s any) error {
    err := get().Struct(s)
    if err == nil {
        return nil
    }
    verrs, ok := err.(validator.ValidationErrors)
    if !ok || len(verrs) == 0 {
        return failure.Validation("invalid request payload")
    }
    return failure.Validation(message(verrs[0]))
}
