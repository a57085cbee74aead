// Package policy maps cache keys to per-namespace caching policies.
//
// Keys are grouped by exact, prefix, or regex rules; each group carries
// a [Policy] controlling how matched entries are stored. A typical setup
// gives volatile namespaces a short TTL and marks uncacheable ones
// NoStore:
//
//	res := policy.NewResolver(
//		policy.Group("sessions").Prefix("session:").Policy(policy.Policy{TTL: 30 * time.Second}),
//		policy.Group("secrets").Prefix("secret:").Policy(policy.Policy{NoStore: true}),
//	)
package policy

import (
	"regexp"
	"time"
)

// Policy holds the caching configuration that applies to a matched key
// group.
type Policy struct {
	// TTL overrides the cache-wide TTL for matched keys. Zero keeps the
	// cache-wide setting.
	TTL time.Duration

	// NoStore suppresses committing computed values for matched keys.
	// Computations still run and their results are delivered to callers;
	// they are just never written to the store.
	NoStore bool
}

// matchKind distinguishes the three matching strategies.
type matchKind int

const (
	kindExact  matchKind = iota // highest priority
	kindPrefix                  // medium priority
	kindRegex                   // lowest priority
)

// rule is a single matching rule inside a group.
type rule struct {
	kind    matchKind
	pattern string         // used for exact and prefix matches
	re      *regexp.Regexp // used for regex matches
}

// GroupBuilder constructs a key group with one or more matching rules
// and a policy.
type GroupBuilder struct {
	name   string
	rules  []rule
	policy *Policy
}

// Group starts building a new key group with the given name.
func Group(name string) *GroupBuilder {
	return &GroupBuilder{name: name}
}

// Exact adds an exact-match rule for pattern.
func (g *GroupBuilder) Exact(pattern string) *GroupBuilder {
	g.rules = append(g.rules, rule{kind: kindExact, pattern: pattern})
	return g
}

// Prefix adds a prefix-match rule for pattern.
func (g *GroupBuilder) Prefix(pattern string) *GroupBuilder {
	g.rules = append(g.rules, rule{kind: kindPrefix, pattern: pattern})
	return g
}

// Regex adds a regex-match rule for pattern.
// The pattern is compiled immediately; an invalid regex will panic.
func (g *GroupBuilder) Regex(pattern string) *GroupBuilder {
	g.rules = append(g.rules, rule{kind: kindRegex, pattern: pattern, re: regexp.MustCompile(pattern)})
	return g
}

// Policy attaches a Policy to the group and returns the finished builder.
func (g *GroupBuilder) Policy(p Policy) *GroupBuilder {
	g.policy = &p
	return g
}
