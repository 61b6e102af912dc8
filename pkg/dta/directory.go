package dta

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	f "github.com/multimediallc/dta-reader/pkg/functional"
)

// DefaultPattern selects the members of a directory source.
const DefaultPattern = "*.dta"

// listDirectory returns the names of the immediate children of dir that match
// pattern, in the order the directory yields them. A listing failure leaves
// the index empty rather than failing.
func listDirectory(dir string, pattern string, logger *zap.Logger) []string {
	d, err := os.Open(dir) //nolint:gosec // user-supplied source directory
	if err != nil {
		logger.Warn("listing dta directory failed", zap.Error(err))
		return []string{}
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	if err != nil {
		logger.Warn("listing dta directory failed", zap.Error(err))
		return []string{}
	}
	return f.Filtered(names, func(name string) bool {
		return matchMember(pattern, name)
	})
}

// matchMember reports whether name is a spectrum member. The pattern is
// validated by Open, so a match error cannot occur here.
func matchMember(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
