package library

import (
	"fmt"
	"strings"
)

// Category is the closed set of shelving categories.
type Category int

const (
	Romance Category = iota
	Adventure
	Action
	Horror
	Mystery
	Fiction
	NonFiction
	SciFi
	Education
)

var categoryNames = [...]string{
	Romance:    "ROMANCE",
	Adventure:  "ADVENTURE",
	Action:     "ACTION",
	Horror:     "HORROR",
	Mystery:    "MYSTERY",
	Fiction:    "FICTION",
	NonFiction: "NONFICTION",
	SciFi:      "SCIFI",
	Education:  "EDUCATION",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// CategoryFromLabel maps a user or file label to a Category, ignoring case.
// "non-fiction" is accepted as an alias of nonfiction.
func CategoryFromLabel(label string) (Category, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "non-fiction" {
		return NonFiction, nil
	}
	for i, name := range categoryNames {
		if strings.ToLower(name) == l {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s\nValid categories are: "+
		"romance, adventure, action, horror, mystery, fiction, nonfiction, scifi, education", ErrInvalidCategory, label)
}

// Condition is the physical state of a copy.
type Condition int

const (
	Good Condition = iota
	Fair
	Poor
)

var conditionNames = [...]string{
	Good: "GOOD",
	Fair: "FAIR",
	Poor: "POOR",
}

func (c Condition) String() string {
	if c < 0 || int(c) >= len(conditionNames) {
		return fmt.Sprintf("Condition(%d)", int(c))
	}
	return conditionNames[c]
}

// ConditionFromLabel maps a label to a Condition, ignoring case.
func ConditionFromLabel(label string) (Condition, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for i, name := range conditionNames {
		if strings.ToLower(name) == l {
			return Condition(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s\nValid conditions are: good, fair, poor", ErrInvalidCondition, label)
}
