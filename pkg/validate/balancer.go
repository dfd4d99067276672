package validate

import "fmt"

// Allowed values for balancer config and node enum fields.
var (
	Protocols    = []string{"http", "https", "tcp"}
	Algorithms   = []string{"roundrobin", "leastconn", "source"}
	Stickiness   = []string{"none", "table", "http_cookie"}
	HealthChecks = []string{"none", "connection", "http", "http_body"}
	NodeModes    = []string{"accept", "reject", "drain"}
)

// IPv4 backend address; the port travels in its own field.
const addressPattern = `^\d{1,3}(\.\d{1,3}){3}$`

// ConfigSchema describes the scalar fields of one balancer config payload.
func ConfigSchema() Schema {
	return Schema{Fields: map[string]Rule{
		"port":           {Required: true, Min: intp(1), Max: intp(65535)},
		"protocol":       {Required: true, Enum: Protocols},
		"algorithm":      {Required: true, Enum: Algorithms},
		"stickiness":     {Enum: Stickiness},
		"check":          {Enum: HealthChecks},
		"check_interval": {Min: intp(2), Max: intp(3600)},
		"check_timeout":  {Min: intp(1), Max: intp(30)},
		"check_attempts": {Min: intp(1), Max: intp(30)},
		"check_path":     {MaxLen: intp(256)},
	}}
}

// NodeRules describes the fields of one node. The editor expands these per
// index into synthetic "nodes_<i>_<field>" entries so validation errors line
// up with the per-node error mapper.
func NodeRules() map[string]Rule {
	return map[string]Rule{
		"label":   {Required: true, MinLen: intp(3), MaxLen: intp(32), Pattern: `^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`},
		"address": {Required: true, Pattern: addressPattern},
		"port":    {Required: true, Min: intp(1), Max: intp(65535)},
		"weight":  {Min: intp(1), Max: intp(255)},
		"mode":    {Enum: NodeModes},
	}
}

// NodeField builds the synthetic payload key for one node field.
func NodeField(index int, field string) string {
	return fmt.Sprintf("nodes_%d_%s", index, field)
}

// WithNodeIndexes returns a copy of schema extended with node rules for the
// given indexes. Indexes of rows pending deletion are left out so doomed
// rows are not validated.
func WithNodeIndexes(schema Schema, indexes []int) Schema {
	nodeRules := NodeRules()
	fields := make(map[string]Rule, len(schema.Fields)+len(indexes)*len(nodeRules))
	for name, rule := range schema.Fields {
		fields[name] = rule
	}
	for _, i := range indexes {
		for name, rule := range nodeRules {
			fields[NodeField(i, name)] = rule
		}
	}
	return Schema{Fields: fields}
}
