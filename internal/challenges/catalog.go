// Package challenges holds the built-in challenge templates.
package challenges

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/codearena/internal/models"
)

// ChallengeError is returned for catalog lookups
type ChallengeError string

func (e ChallengeError) Error() string {
	return string(e)
}

const (
	ErrUnknownChallenge ChallengeError = "unknown challenge"
)

var catalog = map[models.ChallengeID]*models.Challenge{
	models.ChallengeFixTheBug: {
		ID:          models.ChallengeFixTheBug,
		Title:       "Fix the Bug",
		Description: "Each function has one defect. Find it and fix it without touching your teammates' code.",
		StarterCode: `// Fix the bugs in each function

function calculateSum(numbers) {
  let total = 0;
  for (let i = 0; i <= numbers.length; i++) {
    total += numbers[i];
  }
  return total;
}

function findMax(numbers) {
  let max = 0;
  for (const n of numbers) {
    if (n > max) {
      max = n;
    }
  }
  return max;
}

function reverseString(str) {
  return str.split('').reverse().join(',');
}

function isPalindrome(str) {
  const clean = str.toLowerCase();
  return clean === reverseString(clean);
}
`,
		Regions: []models.RegionDef{
			{ID: "sum", Name: "calculateSum", StartMarker: "function calculateSum", EndMarker: '}'},
			{ID: "max", Name: "findMax", StartMarker: "function findMax", EndMarker: '}'},
			{ID: "reverse", Name: "reverseString", StartMarker: "function reverseString", EndMarker: '}'},
			{ID: "palindrome", Name: "isPalindrome", StartMarker: "function isPalindrome", EndMarker: '}'},
		},
		XPReward:  50,
		Required:  []string{"i < numbers.length", "join('')"},
		Forbidden: []string{"i <= numbers.length", "let max = 0;", "join(',')"},
	},
	models.ChallengeFillTheBlank: {
		ID:          models.ChallengeFillTheBlank,
		Title:       "Fill the Blank",
		Description: "Replace every ___ with working code.",
		StarterCode: `// Replace every ___ so the tests pass

function double(n) {
  return n ___ 2;
}

function countVowels(str) {
  let count = 0;
  for (const ch of str) {
    if ('aeiou'.___(ch)) {
      count++;
    }
  }
  return count;
}

function lastItem(list) {
  return list[list.___ - 1];
}

function greet(name) {
  return ___ + name + '!';
}
`,
		Regions: []models.RegionDef{
			{ID: "double", Name: "double", StartMarker: "function double", EndMarker: '}'},
			{ID: "vowels", Name: "countVowels", StartMarker: "function countVowels", EndMarker: '}'},
			{ID: "last", Name: "lastItem", StartMarker: "function lastItem", EndMarker: '}'},
			{ID: "greet", Name: "greet", StartMarker: "function greet", EndMarker: '}'},
		},
		XPReward:  30,
		Required:  []string{"n * 2", "includes(ch)", "list.length - 1"},
		Forbidden: []string{"___"},
	},
	models.ChallengeCodeReview: {
		ID:          models.ChallengeCodeReview,
		Title:       "Code Review",
		Description: "The code works but is hard to read. Clean up your section.",
		StarterCode: `// Refactor for readability

function a(x) {
  var r = [];
  for (var i = 0; i < x.length; i++) { if (x[i] % 2 == 0) { r.push(x[i]); } }
  return r;
}

function b(u) {
  if (u.age >= 18) { return true; } else { return false; }
}

function c(s) {
  var o = {};
  for (var i = 0; i < s.length; i++) { o[s[i]] = (o[s[i]] || 0) + 1; }
  return o;
}

function d(p, q) {
  return p.filter(function (v) { return q.indexOf(v) != -1; });
}
`,
		Regions: []models.RegionDef{
			{ID: "evens", Name: "a (evens)", StartMarker: "function a(", EndMarker: '}'},
			{ID: "adult", Name: "b (isAdult)", StartMarker: "function b(", EndMarker: '}'},
			{ID: "freq", Name: "c (frequencies)", StartMarker: "function c(", EndMarker: '}'},
			{ID: "intersect", Name: "d (intersection)", StartMarker: "function d(", EndMarker: '}'},
		},
		XPReward:  40,
		Forbidden: []string{"var ", "== 0", "!= -1"},
	},
	models.ChallengePairProgramming: {
		ID:          models.ChallengePairProgramming,
		Title:       "Pair Programming",
		Description: "Implement each function from its comment.",
		StarterCode: `// Implement each function

function fizzBuzz(n) {
  // return "Fizz", "Buzz", "FizzBuzz" or n as a string
}

function capitalize(word) {
  // return word with its first letter upper-cased
}

function sumDigits(n) {
  // return the sum of the decimal digits of n
}

function unique(list) {
  // return list without duplicates, preserving order
}
`,
		Regions: []models.RegionDef{
			{ID: "fizzbuzz", Name: "fizzBuzz", StartMarker: "function fizzBuzz", EndMarker: '}'},
			{ID: "capitalize", Name: "capitalize", StartMarker: "function capitalize", EndMarker: '}'},
			{ID: "digits", Name: "sumDigits", StartMarker: "function sumDigits", EndMarker: '}'},
			{ID: "unique", Name: "unique", StartMarker: "function unique", EndMarker: '}'},
		},
		XPReward: 60,
		Required: []string{"return", "toUpperCase", "FizzBuzz"},
	},
}

// Get returns a copy of the challenge with the given ID
func Get(id models.ChallengeID) (*models.Challenge, error) {
	c, ok := catalog[id]
	if !ok {
		return nil, ErrUnknownChallenge
	}

	cp := *c
	cp.Regions = append([]models.RegionDef(nil), c.Regions...)
	cp.Required = append([]string(nil), c.Required...)
	cp.Forbidden = append([]string(nil), c.Forbidden...)
	return &cp, nil
}

// List returns every challenge ordered by ID
func List() []*models.Challenge {
	out := make([]*models.Challenge, 0, len(catalog))
	for id := range catalog {
		c, _ := Get(id)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Grade reports whether code satisfies the challenge's checks
func Grade(c *models.Challenge, code string) bool {
	if c == nil || code == c.StarterCode {
		return false
	}
	for _, req := range c.Required {
		if !strings.Contains(code, req) {
			return false
		}
	}
	for _, bad := range c.Forbidden {
		if strings.Contains(code, bad) {
			return false
		}
	}
	return true
}
