package signup

import "regexp"

// emailPart is one run of characters that are neither whitespace nor "@".
// RE2's \s is ASCII only, so Unicode separators and the BOM are listed too.
const emailPart = `[^\s\v\p{Z}\x{FEFF}@]+`

// emailPattern is a coarse local@domain.tld shape check, not a deliverability check.
var emailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// Validate reports whether email looks like local-part@domain.tld.
func Validate(email string) bool {
	return emailPattern.MatchString(email)
}
