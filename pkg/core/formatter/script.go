package formatter

import (
	"strings"

	"github.com/jakechorley/cb-script-builder/pkg/core/model"
)

// newline is the two-character escape DV360 expects in a pasted script, not a line break
const newline = `\n`

// scriptSignature closes every generated script
const scriptSignature = " #Created with CB Script Builder "

// FormatScript renders the DV360 Custom Bidding script:
//
//	return <method>([ \n([<expr>], <weight>),\n ... #Created with CB Script Builder \n])
func FormatScript(aggregationMethod string, conditions []model.Condition) string {
	var b strings.Builder

	b.WriteString("return " + aggregationMethod + "([ " + newline)
	for _, c := range conditions {
		b.WriteString("([" + c.Expression + "], " + c.Weight + ")," + newline)
	}
	b.WriteString(scriptSignature + newline + "])")

	return b.String()
}
