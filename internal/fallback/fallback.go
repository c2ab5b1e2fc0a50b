// Package fallback picks a canned daily plan when no generated one is
// available.
package fallback

import "strings"

// Any matches every mood or goal.
const Any = "*"

type Template struct {
	Name  string
	Moods []string
	Goals []string
	Plan  []string
}

type rule struct {
	name  string
	match func(t Template, mood, goal string) bool
}

// Rules are tried in order; within a rule, templates are tried in order.
var rules = []rule{
	{"mood-and-goal", func(t Template, mood, goal string) bool {
		return matches(t.Moods, mood) && matches(t.Goals, goal)
	}},
	{"mood-any-goal", func(t Template, mood, _ string) bool {
		return matches(t.Moods, mood) && wildcard(t.Goals)
	}},
	{"any-mood-goal", func(t Template, _, goal string) bool {
		return wildcard(t.Moods) && matches(t.Goals, goal)
	}},
}

type Selector struct {
	templates []Template
}

// NewSelector panics on an empty template list; the last template is the
// default answer.
func NewSelector(templates []Template) *Selector {
	if len(templates) == 0 {
		panic("fallback: no templates")
	}
	return &Selector{templates: templates}
}

func Default() *Selector { return NewSelector(Templates) }

// Select returns a copy of the plan of the first template matching mood and
// goal, or of the last template when nothing matches.
func (s *Selector) Select(mood, goal string) []string {
	t, _ := s.Match(mood, goal)
	return append([]string(nil), t.Plan...)
}

// Match reports the chosen template and the rule that selected it.
func (s *Selector) Match(mood, goal string) (Template, string) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	goal = strings.ToLower(strings.TrimSpace(goal))
	for _, r := range rules {
		for _, t := range s.templates {
			if r.match(t, mood, goal) {
				return t, r.name
			}
		}
	}
	return s.templates[len(s.templates)-1], "default"
}

func wildcard(set []string) bool {
	return len(set) == 1 && set[0] == Any
}

func matches(set []string, s string) bool {
	if s == "" || wildcard(set) {
		return false
	}
	for _, k := range set {
		if strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
