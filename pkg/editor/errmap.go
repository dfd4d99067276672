package editor

import (
	"regexp"
	"strconv"

	"github.com/tommv/lbman/pkg/api"
)

// nodeFieldRe matches the synthetic field names the validator and the API
// use for node-level errors.
var nodeFieldRe = regexp.MustCompile(`^nodes_(\d+)_(.+)$`)

// DistributeErrors replaces every error slot of the draft with the given
// flat list. Fields shaped "nodes_<i>_<name>" land in node i's slot under
// key <name>; everything else (including out-of-range node indexes) lands in
// the parent slot. Input order is preserved within each bucket and no entry
// is dropped.
func DistributeErrors(d *ConfigDraft, errs []api.FieldError) {
	d.Errors = nil
	for i := range d.Nodes {
		d.Nodes[i].Errors = nil
	}

	for _, fe := range errs {
		if m := nodeFieldRe.FindStringSubmatch(fe.Field); m != nil {
			index, err := strconv.Atoi(m[1])
			if err == nil && index < len(d.Nodes) {
				d.Nodes[index].Errors = append(d.Nodes[index].Errors, api.FieldError{
					Field:  m[2],
					Reason: fe.Reason,
				})
				continue
			}
		}
		d.Errors = append(d.Errors, fe)
	}
}

// NodeErrorFor returns the first stored reason for one field of one node, or
// "" when the field is clean.
func NodeErrorFor(n *NodeDraft, field string) string {
	for _, fe := range n.Errors {
		if fe.Field == field {
			return fe.Reason
		}
	}
	return ""
}
