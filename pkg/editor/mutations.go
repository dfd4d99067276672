package editor

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// AddNode appends a fresh row tagged New with no remote id.
func AddNode(d *ConfigDraft) {
	d.Nodes = append(d.Nodes, NodeDraft{
		LocalID: uuid.New(),
		Status:  StatusNew,
		Weight:  100,
		Mode:    "accept",
	})
}

// RemoveNode drops a never-persisted row immediately; a persisted row stays
// in place tagged Delete until the next save confirms the remote deletion.
func RemoveNode(d *ConfigDraft, index int) error {
	if index < 0 || index >= len(d.Nodes) {
		return fmt.Errorf("node index %d out of bounds (length %d)", index, len(d.Nodes))
	}

	if d.Nodes[index].ID == 0 {
		d.Nodes = append(d.Nodes[:index], d.Nodes[index+1:]...)
		return nil
	}

	d.Nodes[index].Status = StatusDelete
	return nil
}

// SetNodeField writes one field on a row and promotes its status to Update
// unless the row is already New or Delete. Repeating the same write leaves
// the draft unchanged.
func SetNodeField(d *ConfigDraft, index int, field, value string) error {
	if index < 0 || index >= len(d.Nodes) {
		return fmt.Errorf("node index %d out of bounds (length %d)", index, len(d.Nodes))
	}
	n := &d.Nodes[index]

	switch field {
	case "label":
		n.Label = value
	case "address":
		n.Address = value
	case "mode":
		n.Mode = value
	case "port":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("port must be a number")
		}
		n.Port = v
	case "weight":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("weight must be a number")
		}
		n.Weight = v
	default:
		return fmt.Errorf("unknown node field: %s", field)
	}

	if n.Status == StatusUnchanged {
		n.Status = StatusUpdate
	}
	return nil
}

// SetConfigField writes one scalar field on the parent. The parent's save
// path is driven by its Persistence state, so no status promotion happens.
func SetConfigField(d *ConfigDraft, field, value string) error {
	switch field {
	case "protocol":
		d.Protocol = value
	case "algorithm":
		d.Algorithm = value
	case "stickiness":
		d.Stickiness = value
	case "check":
		d.Check = value
	case "check_path":
		d.CheckPath = value
	case "port":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("port must be a number")
		}
		d.Port = v
	case "check_interval":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("check interval must be a number")
		}
		d.CheckInterval = v
	case "check_timeout":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("check timeout must be a number")
		}
		d.CheckTimeout = v
	case "check_attempts":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("check attempts must be a number")
		}
		d.CheckAttempts = v
	default:
		return fmt.Errorf("unknown config field: %s", field)
	}
	return nil
}
