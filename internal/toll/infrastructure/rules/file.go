package rules

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	toll "congestion-cloud/internal/toll/domain"
)

type slabConfig struct {
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	Amount int    `yaml:"amount"`
}

type fileConfig struct {
	Year         int          `yaml:"year"`
	FreeMonth    int          `yaml:"free_month"`
	DailyCap     int          `yaml:"daily_cap"`
	Fees         []slabConfig `yaml:"fees"`
	Holidays     []string     `yaml:"holidays"`
	FreeVehicles []string     `yaml:"free_vehicles"`
}

// LoadFile reads the rule set from a YAML file.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("toll rules: read %s: %w", path, err)
	}
	cfg := fileConfig{
		Year:      defaultYear,
		FreeMonth: defaultFreeMonth,
		DailyCap:  defaultDailyCap,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("toll rules: parse %s: %w", path, err)
	}

	raw := rawRules{
		year:      cfg.Year,
		freeMonth: cfg.FreeMonth,
		dailyCap:  cfg.DailyCap,
		vehicles:  cfg.FreeVehicles,
	}
	for _, fee := range cfg.Fees {
		startSec, err := parseTimeOfDay(fee.Start)
		if err != nil {
			return nil, err
		}
		endSec, err := parseTimeOfDay(fee.End)
		if err != nil {
			return nil, err
		}
		slab, err := toll.NewFeeSlab(startSec, endSec, fee.Amount)
		if err != nil {
			return nil, fmt.Errorf("toll rules: slab %s-%s: %w", fee.Start, fee.End, err)
		}
		raw.slabs = append(raw.slabs, slab)
	}
	for _, holiday := range cfg.Holidays {
		parsed, err := parseHoliday(holiday)
		if err != nil {
			return nil, err
		}
		raw.holidays = append(raw.holidays, parsed)
	}
	return raw.build()
}

// parseTimeOfDay accepts HH:MM or HH:MM:SS and returns the second of day.
func parseTimeOfDay(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("toll rules: invalid time of day %q", value)
	}
	fields := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("toll rules: invalid time of day %q", value)
		}
		fields[i] = n
	}
	hour, minute, second := fields[0], fields[1], fields[2]
	if hour > 23 || minute > 59 || second > 59 {
		return 0, fmt.Errorf("toll rules: invalid time of day %q", value)
	}
	return hour*3600 + minute*60 + second, nil
}
