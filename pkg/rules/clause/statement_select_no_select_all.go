package clause

import (
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// SelectNoSelectAllAdvisor flags SELECT * projections. One diagnostic per
// statement, however many stars appear.
type SelectNoSelectAllAdvisor struct{}

// Check inspects the top-level projection list for bare or qualified stars.
func (*SelectNoSelectAllAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	if checkCtx.Extraction.Statement != types.Statement_SELECT {
		return nil, nil
	}
	items := extractor.SelectItems(checkCtx.Source.Tokens, checkCtx.Source.Stripped)
	for _, item := range items {
		if item == "*" || strings.HasSuffix(item, ".*") {
			return []*types.Diagnostic{
				newDiagnostic(checkCtx, types.Severity_WARNING, types.SelectStar,
					"SELECT * fetches every column; list the columns you need"),
			}, nil
		}
	}
	return nil, nil
}
