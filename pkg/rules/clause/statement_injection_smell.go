package clause

import (
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// injectionPatterns are textual shapes typical of injection probes. Matching
// runs over the raw SQL since the telltale content lives inside literals.
var injectionPatterns = []string{
	"or 1=1",
	"or 1 = 1",
	"or '1'='1",
	"or \"1\"=\"1",
	"'--",
	"' or '",
}

// InjectionSmellAdvisor flags statements carrying classic injection
// signatures. Generated SQL should never contain them; their presence means
// untrusted text leaked into the prompt or the template. The rule's string
// array payload adds patterns on top of the built-in set.
type InjectionSmellAdvisor struct{}

// Check matches the raw statement text against the known patterns.
func (*InjectionSmellAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	patterns := injectionPatterns
	if checkCtx.Rule != nil && checkCtx.Rule.Payload != nil {
		if payload, err := advisor.UnmarshalStringArrayTypeRulePayload(checkCtx.Rule.Payload); err == nil && len(payload.List) > 0 {
			patterns = append(append([]string{}, injectionPatterns...), payload.List...)
			for i := range patterns {
				patterns[i] = strings.ToLower(patterns[i])
			}
		}
	}

	lower := strings.ToLower(checkCtx.Source.SQL)
	for _, pattern := range patterns {
		if strings.Contains(lower, pattern) {
			return []*types.Diagnostic{
				newDiagnostic(checkCtx, types.Severity_WARNING, types.InjectionSmell,
					"statement contains a pattern typical of SQL injection: "+pattern),
			}, nil
		}
	}
	return nil, nil
}
