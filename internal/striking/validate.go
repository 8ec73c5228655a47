package striking

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"strikingdistance/pkg/contracts/domain"
)

var (
	optionsValidator     *validator.Validate
	optionsValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	optionsValidatorOnce.Do(func() {
		optionsValidator = validator.New()
	})
	return optionsValidator
}

// ValidateTables checks every input table against its required columns.
// All tables are checked before reporting so the error names every gap.
// A nil table is treated as having no columns at all.
func ValidateTables(in Inputs) error {
	var missing []TableColumns
	for _, name := range tableOrder {
		table := in.byName(name)
		var absent []string
		for _, col := range RequiredColumns[name] {
			if table.Index(col) < 0 {
				absent = append(absent, col)
			}
		}
		if len(absent) > 0 {
			missing = append(missing, TableColumns{Table: name, Columns: absent})
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

// ValidateOptions checks the position window
func ValidateOptions(opts domain.Options) error {
	if err := getValidator().Struct(opts); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (min_position=%d, max_position=%d)",
				ErrInvalidOptions, fe.Field(), fe.Tag(), opts.MinPosition, opts.MaxPosition)
		}
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}
