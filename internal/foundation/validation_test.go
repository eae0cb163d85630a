package foundation

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestValidationResultCombine(t *testing.T) {
	a := Warn(NewValidationError("site.icons[1]", "duplicate_icon", "duplicate"))
	b := Invalid(NewValidationError("site.base", "invalid_path_format", "must start with '/'"))

	combined := a.Combine(b)
	require.False(t, combined.Valid)
	require.Len(t, combined.Errors, 1)
	require.Len(t, combined.Warnings, 1)

	require.True(t, a.Combine(Valid()).Valid)
}

func TestInvalidWithoutErrorsIsValid(t *testing.T) {
	require.True(t, Invalid().Valid)
}

func TestToErrorWrapsFieldErrors(t *testing.T) {
	require.NoError(t, Valid().ToError())

	res := Invalid(
		NewValidationError("site.base", "invalid_path_format", "must start with '/'").WithValue("docs/"),
		NewValidationError("theme.nav[0].link", "missing_required_field", "link is required"),
	)
	err := res.ToError()
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))

	var fes FieldErrors
	require.True(t, stderrors.As(err, &fes))
	require.Len(t, fes, 2)
	require.True(t, fes.HasCode("missing_required_field"))
	require.False(t, fes.HasCode("empty_sidebar_group"))
	require.Equal(t, "docs/", fes[0].Value)
	require.Contains(t, err.Error(), "field 'site.base': must start with '/'")
}

func TestValidatorChain(t *testing.T) {
	nonEmpty := func(s string) ValidationResult {
		if s == "" {
			return Invalid(NewValidationError("logging.format", "missing_required_field", "required"))
		}
		return Valid()
	}
	short := func(s string) ValidationResult {
		if len(s) > 4 {
			return Warn(NewValidationError("logging.format", "invalid_value", "long value"))
		}
		return Valid()
	}
	chain := NewValidatorChain(nonEmpty).Add(short)

	require.True(t, chain.Validate("json").Valid)

	res := chain.Validate("")
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)

	res = chain.Validate("verbose")
	require.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
}
