package lexicon

// #region imports
import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// #endregion

// ErrInvalid is returned when a loaded lexicon fails validation.
var ErrInvalid = errors.New("invalid lexicon")

// #region load

// Load reads a YAML lexicon file and overlays it onto the built-in tables.
// Keys absent from the file keep their defaults; a present list replaces the
// default list wholesale. An empty path returns Default().
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

// #endregion

// #region validate

// Validate checks that every pattern compiles and every response pool the
// pipeline draws from is populated.
func (l *Lexicon) Validate() error {
	var errs []error
	check := func(name string, patterns []string) {
		for _, p := range patterns {
			if _, err := regexp.Compile(p); err != nil {
				errs = append(errs, fmt.Errorf("%s: %q: %w", name, p, err))
			}
		}
	}
	check("guard.identity_patterns", l.Guard.IdentityPatterns)
	check("guard.greeting_patterns", l.Guard.GreetingPatterns)
	check("matcher.question_patterns", l.Matcher.QuestionPatterns)

	if len(l.Guard.BlockedResponses) == 0 {
		errs = append(errs, errors.New("guard.blocked_responses is empty"))
	}
	if len(l.Guard.GreetingResponses) == 0 {
		errs = append(errs, errors.New("guard.greeting_responses is empty"))
	}
	for _, pool := range []string{
		PoolNoContext, PoolLowConfidence, PoolGeneralHelp, PoolPersonalIdentity,
		PoolPersonalGreeting, PoolHRContact, PoolIrrelevant,
	} {
		if len(l.Fallback.Pools[pool]) == 0 {
			errs = append(errs, fmt.Errorf("fallback.pools.%s is empty", pool))
		}
	}
	if len(l.Fallback.GeneralTopics) < 3 {
		errs = append(errs, errors.New("fallback.general_topics needs at least 3 entries"))
	}
	if l.Matcher.MaxGeneral < 0 {
		errs = append(errs, errors.New("matcher.max_general_boosts is negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// #endregion
