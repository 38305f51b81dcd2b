package handlers

import (
	"regexp"
	"strings"
)

// Brazilian plates, old format or Mercosul, are 7 alphanumerics once the
// dash is dropped (ABC1234, ABC1D23).
var plateRe = regexp.MustCompile(`^[A-Z0-9]{7}$`)

func normalizePlate(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", "")
}

func validPlate(s string) bool {
	return plateRe.MatchString(s)
}
