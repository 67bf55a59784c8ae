package render

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/srctally/srctally/internal/model"
)

// Receipt writes the machine-readable projection of a plan as indented JSON.
// Field order is fixed by the struct definitions, so the same plan always
// serializes to the same bytes.
func Receipt(out io.Writer, mode string, plan *model.SelectionPlan) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model.NewReceipt(mode, plan)); err != nil {
		return eris.Wrap(err, "render: encode receipt")
	}
	return nil
}
