package validate

import "regexp"

// identifierPattern is the domain's identifier grammar: a letter or
// underscore, followed by letters, digits or underscores. Empty names
// never match.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func isValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
