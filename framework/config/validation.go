package config

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// ValidationError lists every config field that failed a rule.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// First returns the first message for field.
func (e *ValidationError) First(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f]...)
	}
	return "invalid config: " + strings.Join(msgs, " ")
}

// rules maps a dotted field name to a pipe-separated rule string,
// e.g. "required|in:text,json".
type rules map[string]string

// Validate checks the loaded values. It returns a *ValidationError
// naming every offending field, or nil.
func (c *Config) Validate() error {
	data := map[string]string{
		"app.name":     c.App.Name,
		"app.env":      c.App.Env,
		"log.level":    c.Log.Level,
		"log.format":   c.Log.Format,
		"inspect.addr": c.Inspect.Addr,
	}
	r := rules{
		"app.name":   "required|max:100",
		"app.env":    "required|in:local,production,testing",
		"log.level":  "sometimes|in:debug,info,warn,warning,error",
		"log.format": "sometimes|in:text,json",
	}
	if c.Inspect.Enabled {
		r["inspect.addr"] = "required|hostport"
	}

	verr := &ValidationError{}
	for field, ruleStr := range r {
		applyRules(verr, field, data[field], ruleStr)
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ── Rule engine ──────────────────────────────────────────────────────────────

func applyRules(verr *ValidationError, field, value, ruleStr string) {
	for _, rule := range strings.Split(ruleStr, "|") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		name, param, _ := strings.Cut(rule, ":")
		if !applyRule(verr, field, value, name, param) {
			break // stop on first failure
		}
	}
}

// applyRule returns true if the rule passes.
func applyRule(verr *ValidationError, field, value, rule, param string) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			verr.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "sometimes":
		// Skip remaining rules if the field is empty.
		if value == "" {
			return false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			verr.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, n))
			return false
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return true
			}
		}
		verr.add(field, fmt.Sprintf("The selected %s is invalid.", field))
		return false

	case "hostport":
		// Same syntax net.Listen accepts: host:port, :port, [::1]:port.
		_, port, err := net.SplitHostPort(value)
		if err == nil {
			_, err = strconv.ParseUint(port, 10, 16)
		}
		if err != nil {
			verr.add(field, fmt.Sprintf("The %s must be a host:port address.", field))
			return false
		}
	}

	return true
}
