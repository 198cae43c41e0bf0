package project

import (
	"strings"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const berryMetadataKey = "__metadata"

// ParseLockfile decodes a yarn.lock in either the classic (v1) or the berry
// (YAML) format. Entries that cannot be read are reported and skipped.
func ParseLockfile(content string) (*domain.Lockfile, []error) {
	if isBerry(content) {
		return parseBerryLockfile(content)
	}
	return parseClassicLockfile(content)
}

func isBerry(content string) bool {
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(line, berryMetadataKey+":") {
			return true
		}
	}
	return false
}

// parseClassicLockfile reads the v1 format:
//
//	"@scope/name@^1.0.0", "@scope/name@^1.1.0":
//	  version "1.2.3"
func parseClassicLockfile(content string) (*domain.Lockfile, []error) {
	var (
		entries []domain.LockEntry
		errs    []error
		current []descriptor
		header  string
	)

	flush := func() {
		if len(current) > 0 {
			errs = append(errs, zerr.With(domain.Tagged(domain.ErrLockfileParse, "reason", "entry without version"), "entry", header))
		}
		current = nil
	}

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			flush()
			if !strings.HasSuffix(trimmed, ":") {
				errs = append(errs, zerr.With(domain.Tagged(domain.ErrLockfileParse, "reason", "unexpected line"), "line", i+1))
				continue
			}
			header = strings.TrimSuffix(trimmed, ":")
			current = parseDescriptors(header)
			continue
		}

		if len(current) > 0 && strings.HasPrefix(trimmed, "version ") {
			version := strings.Trim(strings.TrimSpace(strings.TrimPrefix(trimmed, "version")), "\"")
			for _, d := range current {
				entries = append(entries, domain.LockEntry{Name: d.name, Range: d.rng, Version: version})
			}
			current = nil
		}
	}
	flush()

	return domain.NewLockfile(entries), errs
}

type berryEntry struct {
	Version string `yaml:"version"`
}

// parseBerryLockfile reads the YAML format written by yarn 2 and later:
//
//	"@scope/name@npm:^1.0.0, @scope/name@npm:^1.1.0":
//	  version: 1.2.3
func parseBerryLockfile(content string) (*domain.Lockfile, []error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(content), &raw); err != nil {
		return nil, []error{domain.Because(domain.ErrLockfileParse, err)}
	}

	var (
		entries []domain.LockEntry
		errs    []error
	)
	for header, node := range raw {
		if header == berryMetadataKey {
			continue
		}
		var entry berryEntry
		if err := node.Decode(&entry); err != nil || entry.Version == "" {
			errs = append(errs, zerr.With(domain.Tagged(domain.ErrLockfileParse, "reason", "entry without version"), "entry", header))
			continue
		}
		for _, d := range parseDescriptors(header) {
			entries = append(entries, domain.LockEntry{Name: d.name, Range: d.rng, Version: entry.Version})
		}
	}

	return domain.NewLockfile(entries), errs
}

type descriptor struct {
	name string
	rng  string
}

// parseDescriptors splits a lockfile header into name/range pairs. The npm:
// protocol prefix used by berry is dropped so ranges compare with the manifest.
func parseDescriptors(header string) []descriptor {
	var out []descriptor
	for raw := range strings.SplitSeq(header, ",") {
		raw = strings.Trim(strings.TrimSpace(raw), "\"")
		at := strings.LastIndex(raw, "@")
		if at <= 0 {
			continue
		}
		name, rng := raw[:at], raw[at+1:]
		rng = strings.TrimPrefix(rng, "npm:")
		out = append(out, descriptor{name: name, rng: rng})
	}
	return out
}
