package clause

import (
	"fmt"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// NoLeadingWildcardLikeAdvisor flags LIKE patterns that start with a
// wildcard. Such patterns defeat any index on the column.
type NoLeadingWildcardLikeAdvisor struct{}

// Check reads the literal text from the raw SQL, since literal interiors are
// blanked in the stripped form.
func (*NoLeadingWildcardLikeAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	raw := checkCtx.Source.SQL

	var diagnostics []*types.Diagnostic
	for i, tok := range tokens {
		if !tok.IsKeyword("LIKE") || i+1 >= len(tokens) {
			continue
		}
		lit := tokens[i+1]
		if lit.Kind != extractor.TokenString || lit.End > len(raw) {
			continue
		}
		// lit spans the quotes; the first pattern byte sits at Start+1.
		if lit.End-lit.Start < 3 {
			continue
		}
		if first := raw[lit.Start+1]; first == '%' || first == '_' {
			diagnostics = append(diagnostics, withSpan(
				newDiagnostic(checkCtx, types.Severity_WARNING, types.LeadingWildcardLike,
					fmt.Sprintf("LIKE pattern %s starts with a wildcard and cannot use an index",
						raw[lit.Start:lit.End])),
				types.Span{Start: lit.Start, End: lit.End}))
		}
	}
	return diagnostics, nil
}
