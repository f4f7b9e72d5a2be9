package errors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 214 characters (the npm registry limit)
//
// npm-specific syntax is checked separately by ValidateNpmPackageName.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 214 {
		return New(ErrCodeInvalidPackage, "package name too long (max 214 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// npmPackageNameRegex matches valid npm package names, including scoped
// names like "@scope/pkg".
var npmPackageNameRegex = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// ValidateNpmPackageName validates an npm package name.
func ValidateNpmPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	// npm names must be lowercase
	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidPackage, "npm package names must be lowercase: %q", name)
	}

	if !npmPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}

	return nil
}

// workspaceProtocolPrefix marks ranges resolved within the workspace
// ("workspace:^", "workspace:*", "workspace:1.2.3").
const workspaceProtocolPrefix = "workspace:"

// ValidateVersionSpec validates a version or version-range string as it
// appears in package.json dependency values and catalog entries.
//
// Accepted forms:
//   - semver ranges understood by Masterminds/semver ("1.2.3", "^1.0.0",
//     ">=2, <3", "~0.4.x", "*")
//   - the workspace protocol ("workspace:^", "workspace:1.2.3")
//   - the npm wildcard "latest"
func ValidateVersionSpec(spec string) error {
	if spec == "" {
		return New(ErrCodeInvalidVersionSpec, "version cannot be empty")
	}

	if spec == "latest" {
		return nil
	}

	if rest, ok := strings.CutPrefix(spec, workspaceProtocolPrefix); ok {
		switch rest {
		case "", "*", "^", "~":
			return nil
		}
		spec = rest
	}

	if _, err := semver.NewConstraint(spec); err != nil {
		return Wrap(ErrCodeInvalidVersionSpec, err, "invalid version specifier: %q", spec)
	}
	return nil
}
