package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMinLength = "minlength"
)

const (
	maxEmailLength = 254
	maxLocalLength = 64
)

var emailRegex = func() *regexp.Regexp {
	atom := "[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+"
	label := `[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`
	return regexp.MustCompile(`^` + atom + `(?:\.` + atom + `)*@` + label + `(?:\.` + label + `)*$`)
}()

// Required rejects the empty string.
func Required() Rule {
	return Rule{
		Name:  RuleRequired,
		Valid: func(v string) bool { return v != "" },
	}
}

// Email accepts a dot-atom local part and a hostname, the same shape browsers
// accept for type=email inputs. A single-label host such as "localhost" is
// allowed. Empty values pass; pair with Required.
func Email() Rule {
	return Rule{
		Name: RuleEmail,
		Valid: func(v string) bool {
			if v == "" {
				return true
			}
			if len(v) > maxEmailLength {
				return false
			}
			local, _, ok := strings.Cut(v, "@")
			if !ok || len(local) > maxLocalLength {
				return false
			}
			return emailRegex.MatchString(v)
		},
	}
}

// MinLength requires at least n characters. Empty values pass; pair with Required.
func MinLength(n int) Rule {
	return Rule{
		Name: RuleMinLength,
		Valid: func(v string) bool {
			return v == "" || utf8.RuneCountInString(v) >= n
		},
	}
}
