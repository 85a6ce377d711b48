package validation

// ValidateComment checks the text of a comment. mandatory makes an empty text an error.
func ValidateComment(text string, mandatory bool) *Errors {
	errs := &Errors{}
	if text == "" {
		if mandatory {
			errs.RejectValue("text", ErrorMandatory)
		}
		return errs
	}
	if tooLong(text, maxChars) {
		errs.RejectValue("text", ErrorTooManyChars)
	}
	return errs
}
