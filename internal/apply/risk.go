package apply

import (
	"path/filepath"
	"regexp"
	"strings"
)

// RiskLevel grades a shell block before it runs. It only drives warnings;
// the user's answer alone decides whether the block executes.
type RiskLevel int

const (
	// Safe scripts only read state.
	Safe RiskLevel = iota
	// Modifying scripts may change files or system state.
	Modifying
	// Dangerous scripts match a known destructive pattern.
	Dangerous
)

func (l RiskLevel) String() string {
	switch l {
	case Safe:
		return "Safe read-only command"
	case Modifying:
		return "Command may modify system state"
	case Dangerous:
		return "Potentially dangerous command"
	default:
		return "Unknown risk level"
	}
}

// Read-only commands. curl and wget are left out since they can send data out.
var safeCommands = map[string]bool{
	"ls": true, "cat": true, "pwd": true, "echo": true, "head": true, "tail": true,
	"grep": true, "find": true, "which": true, "whoami": true, "date": true,
	"wc": true, "sort": true, "uniq": true, "diff": true, "env": true,
	"printenv": true, "df": true, "du": true, "ps": true, "tree": true,
	"file": true, "stat": true, "basename": true, "dirname": true, "realpath": true,
}

var safePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git\s+(status|log|diff|branch|show|remote)\b`),
	regexp.MustCompile(`^npm\s+(list|ls|view|info|outdated)\b`),
	regexp.MustCompile(`^pip\s+(list|show|freeze)\b`),
	regexp.MustCompile(`^cargo\s+(tree|search|check)\b`),
	regexp.MustCompile(`^go\s+(list|version|env)\b`),
	regexp.MustCompile(`^docker\s+(ps|images|inspect|logs)\b`),
	regexp.MustCompile(`^kubectl\s+(get|describe|logs)\b`),
}

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+(-[rf]*\s+)?/`),
	regexp.MustCompile(`rm\s+-rf\s+[~$]`),
	regexp.MustCompile(`\bsudo\b`),
	regexp.MustCompile(`\bsu\b`),
	regexp.MustCompile(`dd\s+if=`),
	regexp.MustCompile(`mkfs`),
	regexp.MustCompile(`:\(\)\s*\{`),
	regexp.MustCompile(`(curl|wget).*\|\s*(sh|bash|zsh)`),
	regexp.MustCompile(`>\s*/dev/sd`),
	regexp.MustCompile(`chmod.*777`),
	regexp.MustCompile(`chown.*-R\s+`),
	regexp.MustCompile(`\beval\b`),
	regexp.MustCompile(`>\s*/etc/`),
	regexp.MustCompile(`\|.*base64.*-d`),
	regexp.MustCompile(`python.*-c.*exec`),
}

var chainingPattern = regexp.MustCompile(`[;&|]{1,2}`)

// ClassifyScript returns the highest risk of any command line in script.
// Blank lines and comments are ignored; an empty script is Safe.
func ClassifyScript(script string) RiskLevel {
	level := Safe
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if l := classifyLine(line); l > level {
			level = l
		}
	}
	return level
}

func classifyLine(line string) RiskLevel {
	for _, p := range dangerousPatterns {
		if p.MatchString(line) {
			return Dangerous
		}
	}

	// Chained commands could hide anything after the first one.
	if chainingPattern.MatchString(line) {
		return Modifying
	}

	if safeCommands[strings.Fields(line)[0]] {
		return Safe
	}
	for _, p := range safePatterns {
		if p.MatchString(line) {
			return Safe
		}
	}
	return Modifying
}

// System directories that generated code has no business overwriting.
var protectedPrefixes = []string{
	"/etc/", "/usr/", "/bin/", "/sbin/", "/boot/",
	"/sys/", "/proc/", "/dev/", "/lib/",
	"/System/", "/Library/",
}

// ProtectedPath reports whether path resolves into a system directory and
// returns the matching prefix.
func ProtectedPath(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(abs, prefix) || strings.HasPrefix(abs, "/private"+prefix) {
			return prefix, true
		}
	}
	return "", false
}
