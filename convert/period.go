package convert

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
)

// PeriodLayout is the form of the period label handed to simulators.
const PeriodLayout = "2006-01"

// NormalizePeriod accepts any date dateparse recognizes ("2020-10",
// "2020-10-01", "2020-10-01T00:00:00Z") and returns it as a year-month label.
func NormalizePeriod(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("no simulation period was given")
	}

	t, err := dateparse.ParseStrict(label)
	if err != nil {
		return "", fmt.Errorf("simulation period %q: %v", label, err)
	}

	return t.Format(PeriodLayout), nil
}
