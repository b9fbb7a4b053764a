package rex

// Version is the rex version string.
const Version = "0.1.0"

// defaultCache backs the package-level functions. It is unbounded and
// lives for the process lifetime; use NewCache for an isolated instance.
var defaultCache = NewCache(0)

// Compile compiles a pattern through the shared cache, selecting the best
// engine tier automatically. A nil config means defaults.
//
// Compilation is idempotent: two calls with the same pattern and config
// return the same shared Pattern, and concurrent calls for a new pattern
// perform exactly one underlying compilation.
func Compile(pattern string, config *Config) (*Pattern, error) {
	return defaultCache.GetOrCompile(pattern, config, EngineAuto)
}

// CompileWithEngine is like Compile but forces a specific engine tier.
// Failure of the forced tier is terminal: no fallback is attempted.
// Pass EngineAuto to get Compile's tiered selection.
func CompileWithEngine(pattern string, config *Config, engine Engine) (*Pattern, error) {
	return defaultCache.GetOrCompile(pattern, config, engine)
}

// MustCompile is like Compile but panics if the pattern cannot be
// compiled. It simplifies initialization of global pattern variables.
//
// Example:
//
//	var numbers = rex.MustCompile(`\d+`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern, nil)
	if err != nil {
		panic(err)
	}
	return p
}

// IsMatch reports whether pattern matches anywhere in text. The pattern
// is compiled through the shared cache.
func IsMatch(pattern, text string, config *Config) (bool, error) {
	p, err := Compile(pattern, config)
	if err != nil {
		return false, err
	}
	return p.IsMatch(text)
}

// IsSearch reports whether pattern matches anywhere in text.
func IsSearch(pattern, text string, config *Config) (bool, error) {
	p, err := Compile(pattern, config)
	if err != nil {
		return false, err
	}
	return p.IsSearch(text)
}

// Match attempts an anchored-at-start match of pattern against text.
func Match(pattern, text string, config *Config) (*MatchResult, error) {
	p, err := Compile(pattern, config)
	if err != nil {
		return nil, err
	}
	return p.Match(text)
}

// Search returns the first match of pattern in text, or nil.
func Search(pattern, text string, config *Config) (*MatchResult, error) {
	p, err := Compile(pattern, config)
	if err != nil {
		return nil, err
	}
	return p.Search(text)
}

// FindAll returns the text of every non-overlapping match of pattern in
// text, in left-to-right order.
func FindAll(pattern, text string, config *Config) ([]string, error) {
	p, err := Compile(pattern, config)
	if err != nil {
		return nil, err
	}
	return p.FindAll(text)
}

// Sub replaces every match of pattern in text with the expansion of
// template. See Pattern.Sub for the template grammar.
func Sub(pattern, template, text string, config *Config) (string, error) {
	p, err := Compile(pattern, config)
	if err != nil {
		return "", err
	}
	return p.Sub(template, text)
}
