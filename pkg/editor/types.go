package editor

import (
	"github.com/google/uuid"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/validate"
)

// ModifyStatus is the pending persistence intent of one draft row.
type ModifyStatus int

const (
	StatusUnchanged ModifyStatus = iota
	StatusNew
	StatusUpdate
	StatusDelete
)

func (s ModifyStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUpdate:
		return "update"
	case StatusDelete:
		return "delete"
	default:
		return "unchanged"
	}
}

// Persistence is the remote lifecycle state of a draft. It is fixed at
// construction and flipped exactly once, when a create call succeeds. The
// save path branches on this, never on id-presence at individual call sites.
type Persistence int

const (
	Unpersisted Persistence = iota
	Persisted
)

// NodeDraft is the editable, in-memory form of one backend node. LocalID
// identifies rows that have no remote id yet (table cursors, test fixtures).
type NodeDraft struct {
	LocalID uuid.UUID
	ID      int

	Label   string
	Address string
	Port    int
	Weight  int
	Mode    string

	Status ModifyStatus
	Errors []api.FieldError
}

// ConfigDraft is the editable, in-memory form of one balancer config and its
// nodes. All remote persistence goes through Saver; the UI only mutates the
// draft through the named mutation functions.
type ConfigDraft struct {
	BalancerID int
	ID         int
	State      Persistence

	Port          int
	Protocol      string
	Algorithm     string
	Stickiness    string
	Check         string
	CheckInterval int
	CheckTimeout  int
	CheckAttempts int
	CheckPath     string

	Nodes  []NodeDraft
	Errors []api.FieldError

	// Submitting is set by the UI when a save is issued and cleared by
	// ApplySaveResult when the batch settles.
	Submitting bool

	// ConfigMsg reports parent save success, independent of node outcomes.
	// NodeMsg is set only when every node operation in a batch succeeded.
	ConfigMsg string
	NodeMsg   string
}

// NewConfigDraft builds a draft from remote state.
func NewConfigDraft(cfg api.BalancerConfig, nodes []api.Node) *ConfigDraft {
	d := &ConfigDraft{
		BalancerID:    cfg.BalancerID,
		ID:            cfg.ID,
		State:         Persisted,
		Port:          cfg.Port,
		Protocol:      cfg.Protocol,
		Algorithm:     cfg.Algorithm,
		Stickiness:    cfg.Stickiness,
		Check:         cfg.Check,
		CheckInterval: cfg.CheckInterval,
		CheckTimeout:  cfg.CheckTimeout,
		CheckAttempts: cfg.CheckAttempts,
		CheckPath:     cfg.CheckPath,
	}
	for _, n := range nodes {
		d.Nodes = append(d.Nodes, NodeDraft{
			LocalID: uuid.New(),
			ID:      n.ID,
			Label:   n.Label,
			Address: n.Address,
			Port:    n.Port,
			Weight:  n.Weight,
			Mode:    n.Mode,
		})
	}
	return d
}

// NewEmptyConfigDraft builds an unpersisted draft with service defaults.
func NewEmptyConfigDraft(balancerID int) *ConfigDraft {
	return &ConfigDraft{
		BalancerID: balancerID,
		State:      Unpersisted,
		Port:       80,
		Protocol:   "http",
		Algorithm:  "roundrobin",
		Stickiness: "none",
		Check:      "none",
	}
}

// Payload flattens the draft for validation. Node fields use synthetic
// "nodes_<i>_<field>" keys indexed by slice position; rows pending deletion
// are skipped. Optional numeric fields left at zero are treated as unset.
func (d *ConfigDraft) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"port":       d.Port,
		"protocol":   d.Protocol,
		"algorithm":  d.Algorithm,
		"stickiness": d.Stickiness,
		"check":      d.Check,
		"check_path": d.CheckPath,
	}
	if d.CheckInterval != 0 {
		p["check_interval"] = d.CheckInterval
	}
	if d.CheckTimeout != 0 {
		p["check_timeout"] = d.CheckTimeout
	}
	if d.CheckAttempts != 0 {
		p["check_attempts"] = d.CheckAttempts
	}

	for i, n := range d.Nodes {
		if n.Status == StatusDelete {
			continue
		}
		p[validate.NodeField(i, "label")] = n.Label
		p[validate.NodeField(i, "address")] = n.Address
		p[validate.NodeField(i, "port")] = n.Port
		if n.Weight != 0 {
			p[validate.NodeField(i, "weight")] = n.Weight
		}
		p[validate.NodeField(i, "mode")] = n.Mode
	}
	return p
}

// Schema pairs with Payload: config rules plus node rules for every row not
// pending deletion.
func (d *ConfigDraft) Schema() validate.Schema {
	indexes := make([]int, 0, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Status == StatusDelete {
			continue
		}
		indexes = append(indexes, i)
	}
	return validate.WithNodeIndexes(validate.ConfigSchema(), indexes)
}

// ConfigSpec builds the request body for the parent call.
func (d *ConfigDraft) ConfigSpec() api.ConfigSpec {
	return api.ConfigSpec{
		Port:          d.Port,
		Protocol:      d.Protocol,
		Algorithm:     d.Algorithm,
		Stickiness:    d.Stickiness,
		Check:         d.Check,
		CheckInterval: d.CheckInterval,
		CheckTimeout:  d.CheckTimeout,
		CheckAttempts: d.CheckAttempts,
		CheckPath:     d.CheckPath,
	}
}

// NodeSpec builds the request body for one node call.
func (n *NodeDraft) NodeSpec() api.NodeSpec {
	return api.NodeSpec{
		Label:   n.Label,
		Address: n.Address,
		Port:    n.Port,
		Weight:  n.Weight,
		Mode:    n.Mode,
	}
}
