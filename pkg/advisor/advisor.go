package advisor

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/scanner"
	"github.com/sqlward/sqlward/pkg/schema"
	"github.com/sqlward/sqlward/pkg/similarity"
	"github.com/sqlward/sqlward/pkg/types"
)

// Type is the type of advisor.
type Type string

// Context is the unified context passed to every advisor check. It is built
// once per statement so advisors share the tokenization and extraction work.
type Context struct {
	// Source carries the raw SQL, its stripped form, and the token stream.
	Source *extractor.Source
	// Extraction holds the table/column references pulled from Source.
	Extraction *extractor.Extraction
	// Balance is the delimiter-balance result for Source.SQL.
	Balance scanner.Result

	// Schema is the snapshot to validate references against. Nil means
	// no schema was provided and schema-dependent advisors skip.
	Schema *schema.Model
	// Matcher ranks name suggestions. Always non-nil.
	Matcher *similarity.Cache
	// Thresholds are the similarity cutoffs for suggestions.
	Thresholds types.Thresholds

	// Rule is the configuration entry that activated this advisor.
	Rule *types.RuleConfig
}

// Advisor is the interface for advisor.
type Advisor interface {
	Check(checkCtx Context) ([]*types.Diagnostic, error)
}

var (
	advisorMu sync.RWMutex
	advisors  = make(map[Type]Advisor)
)

// Register makes an advisor available by the provided type.
// If Register is called twice with the same type or if advisor is nil,
// it panics.
func Register(advType Type, f Advisor) {
	advisorMu.Lock()
	defer advisorMu.Unlock()
	if f == nil {
		panic("advisor: Register advisor is nil")
	}
	if _, dup := advisors[advType]; dup {
		panic(fmt.Sprintf("advisor: Register called twice for advisor %v", advType))
	}
	advisors[advType] = f
}

// Registered reports whether an advisor exists for the given type.
func Registered(advType Type) bool {
	advisorMu.RLock()
	defer advisorMu.RUnlock()
	_, ok := advisors[advType]
	return ok
}

// Check runs the advisor and returns the diagnostics. A panicking advisor is
// recovered and surfaced as an error so one broken rule cannot take down a
// validation pass.
func Check(advType Type, checkCtx Context) (diagnostics []*types.Diagnostic, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panicErr, ok := panicErr.(error)
			if !ok {
				panicErr = errors.Errorf("%v", panicErr)
			}
			err = errors.Errorf("advisor check PANIC RECOVER, type: %v, err: %v", advType, panicErr)
			slog.Error("advisor check PANIC RECOVER", "error", panicErr)
		}
	}()

	advisorMu.RLock()
	f, ok := advisors[advType]
	advisorMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("advisor: unknown advisor %v", advType)
	}

	return f.Check(checkCtx)
}

// SeverityForRule maps a configured rule level to the severity its findings
// carry, given the severity the rule would report by default. Findings that
// are advisory by nature never escalate to ERROR.
func SeverityForRule(rule *types.RuleConfig, natural types.Severity) types.Severity {
	if rule == nil {
		return natural
	}
	switch rule.Level {
	case types.RuleLevel_WARNING:
		if natural == types.Severity_ERROR {
			return types.Severity_WARNING
		}
	case types.RuleLevel_ERROR:
		// ERROR is the default ceiling; advisory findings stay advisory.
	}
	return natural
}
