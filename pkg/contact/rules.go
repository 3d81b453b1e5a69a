package contact

import "fmt"

// Defaults for RuleOptions.
const (
	DefaultNameMinLength    = 2
	DefaultMessageMinLength = 10
)

// Rule is the ordered list of validators for one field.
// Validators run in order and the first failure is reported.
type Rule []Validator

// Check applies the rule to value and returns the first failure, or nil.
func (r Rule) Check(value string) error {
	for _, v := range r {
		if err := v.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// RuleSet maps each field to its rule. Fields without a rule always pass.
type RuleSet map[FieldID]Rule

// RuleOptions holds the tunable parts of the default rules.
type RuleOptions struct {
	// NameMinLength is the minimum trimmed length of the name (default 2).
	NameMinLength int

	// MessageMinLength is the minimum trimmed length of the message (default 10).
	MessageMinLength int
}

func (o RuleOptions) withDefaults() RuleOptions {
	if o.NameMinLength <= 0 {
		o.NameMinLength = DefaultNameMinLength
	}
	if o.MessageMinLength <= 0 {
		o.MessageMinLength = DefaultMessageMinLength
	}
	return o
}

// DefaultRules returns the rules of the site's contact form. Phone is the
// only optional field.
func DefaultRules(opts RuleOptions) RuleSet {
	opts = opts.withDefaults()
	return RuleSet{
		FieldName: {
			Required("Будь ласка, введіть ваше ім'я"),
			MinLength(opts.NameMinLength,
				fmt.Sprintf("Ім'я повинно містити мінімум %d символи", opts.NameMinLength)),
		},
		FieldEmail: {
			Required("Будь ласка, введіть email адресу"),
			Email("Будь ласка, введіть коректну email адресу"),
		},
		FieldPhone: {
			Phone("Будь ласка, введіть коректний номер телефону"),
		},
		FieldSubject: {
			Selected("Будь ласка, оберіть тему звернення"),
		},
		FieldMessage: {
			Required("Будь ласка, введіть ваше повідомлення"),
			MinLength(opts.MessageMinLength,
				fmt.Sprintf("Повідомлення повинно містити мінімум %d символів", opts.MessageMinLength)),
		},
	}
}

// check runs the rule for id and returns the failure message, if any.
func (rs RuleSet) check(id FieldID, value string) (string, bool) {
	rule, ok := rs[id]
	if !ok {
		return "", true
	}
	err := rule.Check(value)
	if err == nil {
		return "", true
	}
	if ve, ok := err.(ValidationError); ok {
		return ve.Message, false
	}
	return err.Error(), false
}
