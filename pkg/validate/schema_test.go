package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommv/lbman/pkg/api"
)

func validConfigPayload() map[string]interface{} {
	return map[string]interface{}{
		"port":      80,
		"protocol":  "http",
		"algorithm": "roundrobin",
	}
}

func TestConfigSchema(t *testing.T) {
	t.Run("minimal valid payload passes", func(t *testing.T) {
		errs := ConfigSchema().Validate(validConfigPayload())
		assert.Empty(t, errs)
	})

	t.Run("missing required fields are reported", func(t *testing.T) {
		errs := ConfigSchema().Validate(map[string]interface{}{})

		fields := errorFields(errs)
		assert.Contains(t, fields, "port")
		assert.Contains(t, fields, "protocol")
		assert.Contains(t, fields, "algorithm")
	})

	t.Run("optional fields left out are fine", func(t *testing.T) {
		payload := validConfigPayload()
		// no stickiness, check, check_interval...
		assert.Empty(t, ConfigSchema().Validate(payload))
	})

	t.Run("enum violations are reported", func(t *testing.T) {
		payload := validConfigPayload()
		payload["protocol"] = "gopher"

		errs := ConfigSchema().Validate(payload)
		require.Len(t, errs, 1)
		assert.Equal(t, "protocol", errs[0].Field)
	})

	t.Run("range violations are reported", func(t *testing.T) {
		payload := validConfigPayload()
		payload["port"] = 70000
		payload["check_interval"] = 1

		errs := ConfigSchema().Validate(payload)
		fields := errorFields(errs)
		assert.Contains(t, fields, "port")
		assert.Contains(t, fields, "check_interval")
	})

	t.Run("error order is deterministic", func(t *testing.T) {
		payload := map[string]interface{}{}
		first := ConfigSchema().Validate(payload)
		second := ConfigSchema().Validate(payload)
		assert.Equal(t, first, second)
	})
}

func TestNodeRules(t *testing.T) {
	schema := WithNodeIndexes(Schema{Fields: map[string]Rule{}}, []int{0})

	t.Run("valid node row passes", func(t *testing.T) {
		errs := schema.Validate(map[string]interface{}{
			"nodes_0_label":   "web-1",
			"nodes_0_address": "192.168.0.10",
			"nodes_0_port":    8080,
			"nodes_0_weight":  100,
			"nodes_0_mode":    "accept",
		})
		assert.Empty(t, errs)
	})

	t.Run("bad address and short label are reported per node field", func(t *testing.T) {
		errs := schema.Validate(map[string]interface{}{
			"nodes_0_label":   "ab",
			"nodes_0_address": "not-an-ip",
			"nodes_0_port":    8080,
		})

		fields := errorFields(errs)
		assert.Contains(t, fields, "nodes_0_label")
		assert.Contains(t, fields, "nodes_0_address")
	})

	t.Run("weight outside 1..255 is rejected", func(t *testing.T) {
		errs := schema.Validate(map[string]interface{}{
			"nodes_0_label":   "web-1",
			"nodes_0_address": "10.0.0.1",
			"nodes_0_port":    80,
			"nodes_0_weight":  300,
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "nodes_0_weight", errs[0].Field)
	})
}

func TestWithNodeIndexes(t *testing.T) {
	t.Run("only listed indexes get node rules", func(t *testing.T) {
		schema := WithNodeIndexes(ConfigSchema(), []int{0, 2})

		_, has0 := schema.Fields["nodes_0_label"]
		_, has1 := schema.Fields["nodes_1_label"]
		_, has2 := schema.Fields["nodes_2_label"]
		assert.True(t, has0)
		assert.False(t, has1)
		assert.True(t, has2)
	})

	t.Run("base schema is not mutated", func(t *testing.T) {
		base := ConfigSchema()
		before := len(base.Fields)
		WithNodeIndexes(base, []int{0})
		assert.Len(t, base.Fields, before)
	})
}

func TestRuleChecks(t *testing.T) {
	t.Run("all applicable violations are reported, not just the first", func(t *testing.T) {
		schema := Schema{Fields: map[string]Rule{
			"name": {MinLen: intp(5), Pattern: `^[a-z]+$`},
		}}

		errs := schema.Validate(map[string]interface{}{"name": "A1"})
		assert.Len(t, errs, 2)
	})

	t.Run("unexpected value type is an error", func(t *testing.T) {
		schema := Schema{Fields: map[string]Rule{"flag": {Required: true}}}

		errs := schema.Validate(map[string]interface{}{"flag": []string{"x"}})
		require.Len(t, errs, 1)
		assert.Equal(t, "flag", errs[0].Field)
	})
}

func errorFields(errs []api.FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	return fields
}
