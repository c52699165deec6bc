package tax

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// scheduleFile is the TOML layout of a schedule override. Amounts are strings so
// that rates stay exact.
type scheduleFile struct {
	SHARate         string        `toml:"sha_rate"`
	HousingLevyRate string        `toml:"housing_levy_rate"`
	PersonalRelief  string        `toml:"personal_relief"`
	Brackets        []bracketFile `toml:"brackets"`
}

// bracketFile is one [[brackets]] table. An empty upper_bound marks the top band.
type bracketFile struct {
	UpperBound string `toml:"upper_bound,omitempty"`
	Rate       string `toml:"rate"`
}

// LoadSchedule returns the schedule stored at path, or DefaultSchedule when path is empty.
func LoadSchedule(path string) (Schedule, error) {
	if path == "" {
		return DefaultSchedule(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, fmt.Errorf("reading tax schedule: %w", err)
	}
	return ParseSchedule(data)
}

// ParseSchedule decodes a TOML schedule. Fields left out keep their default values;
// a brackets list, when given, replaces the default bands entirely.
func ParseSchedule(data []byte) (Schedule, error) {
	var file scheduleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Schedule{}, fmt.Errorf("parsing tax schedule: %w", err)
	}

	schedule := DefaultSchedule()
	var err error
	if schedule.SHARate, err = rateOr(file.SHARate, schedule.SHARate, "sha_rate"); err != nil {
		return Schedule{}, err
	}
	if schedule.HousingLevyRate, err = rateOr(file.HousingLevyRate, schedule.HousingLevyRate, "housing_levy_rate"); err != nil {
		return Schedule{}, err
	}
	if file.PersonalRelief != "" {
		relief, err := decimal.NewFromString(file.PersonalRelief)
		if err != nil || relief.IsNegative() {
			return Schedule{}, fmt.Errorf("personal_relief %q must be a non-negative number", file.PersonalRelief)
		}
		schedule.PersonalRelief = relief
	}

	if len(file.Brackets) > 0 {
		brackets, err := parseBrackets(file.Brackets)
		if err != nil {
			return Schedule{}, err
		}
		schedule.Brackets = brackets
	}

	return schedule, nil
}

func parseBrackets(entries []bracketFile) ([]Bracket, error) {
	brackets := make([]Bracket, 0, len(entries))
	lower := decimal.Zero
	for i, entry := range entries {
		rate, err := rateOr(entry.Rate, decimal.Zero, fmt.Sprintf("brackets[%d].rate", i))
		if err != nil {
			return nil, err
		}
		if entry.Rate == "" {
			return nil, fmt.Errorf("brackets[%d].rate is required", i)
		}

		last := i == len(entries)-1
		if entry.UpperBound == "" {
			if !last {
				return nil, fmt.Errorf("brackets[%d] has no upper_bound but is not the last bracket", i)
			}
			brackets = append(brackets, Bracket{Unbounded: true, Rate: rate})
			continue
		}

		upper, err := decimal.NewFromString(entry.UpperBound)
		if err != nil {
			return nil, fmt.Errorf("brackets[%d].upper_bound %q is not a number", i, entry.UpperBound)
		}
		if !upper.GreaterThan(lower) {
			return nil, fmt.Errorf("brackets[%d].upper_bound must be greater than %s", i, lower)
		}
		if last {
			return nil, errors.New("the last bracket must omit upper_bound")
		}
		brackets = append(brackets, Bracket{UpperBound: upper, Rate: rate})
		lower = upper
	}
	return brackets, nil
}

// rateOr parses value as a rate in [0, 1], returning fallback when value is empty.
func rateOr(value string, fallback decimal.Decimal, field string) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
	}
	rate, err := decimal.NewFromString(value)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%s %q must be a number between 0 and 1", field, value)
	}
	return rate, nil
}
