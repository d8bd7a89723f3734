package workflow

import (
	"path/filepath"
	"strings"
)

// Rule is a single filename substitution: the first occurrence of Match in
// the path is replaced with Replace. A rule that does not match fails the
// whole chain.
type Rule struct {
	Match   string
	Replace string
}

// Chain is an ordered list of substitution rules applied left to right.
// Each pipeline stage declares its own chain, which keeps the entire naming
// scheme data rather than code.
type Chain []Rule

// Derive applies the chain to path and returns the derived path. Every rule
// must match; a non-matching rule returns a NamingChainError, because it
// means the upstream stage named its files differently than this stage
// assumes.
func (c Chain) Derive(path string) (string, error) {
	derived := path
	for _, rule := range c {
		if !strings.Contains(derived, rule.Match) {
			return "", &NamingChainError{Path: derived, Pattern: rule.Match}
		}
		derived = strings.Replace(derived, rule.Match, rule.Replace, 1)
	}
	return derived, nil
}

// DeriveName applies the chain to path and returns only the base name of
// the result. Stages use this to turn a raw physical path into the logical
// name of a downstream artifact.
func (c Chain) DeriveName(path string) (string, error) {
	derived, err := c.Derive(path)
	if err != nil {
		return "", err
	}
	return filepath.Base(derived), nil
}
