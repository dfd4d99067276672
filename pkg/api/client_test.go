package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommv/lbman/pkg/api"
)

// jsonHandler serves one canned response and keeps the request for
// inspection.
func jsonHandler(t *testing.T, status int, body interface{}) (http.Handler, func() *http.Request) {
	t.Helper()
	var request *http.Request
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request = r

		w.Header().Set("Content-Type", "application/json")
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(status)
		w.Write(buf)
	})
	return h, func() *http.Request { return request }
}

func TestNewClient(t *testing.T) {
	t.Run("rejects non-http endpoints", func(t *testing.T) {
		for _, endpoint := range []string{"", "ftp://example.com", "not a url", "https://"} {
			_, err := api.NewClient(endpoint, "token")
			assert.ErrorIs(t, err, api.ErrInvalidEndpoint, "endpoint %q", endpoint)
		}
	})

	t.Run("accepts http and https endpoints", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:8080", "https://api.example.com/v4"} {
			_, err := api.NewClient(endpoint, "token")
			assert.NoError(t, err, "endpoint %q", endpoint)
		}
	})
}

func TestListBalancers(t *testing.T) {
	t.Run("returns server data and sends the bearer token", func(t *testing.T) {
		expected := []api.Balancer{
			{ID: 1, Label: "web-lb", Region: "fra1", Address: "203.0.113.1", Status: "active"},
			{ID: 2, Label: "db-lb", Region: "fra1", Address: "203.0.113.2", Status: "active"},
		}
		handler, lastRequest := jsonHandler(t, http.StatusOK, expected)
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "secret-token")
		require.NoError(t, err)

		actual, err := client.ListBalancers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, expected, actual)

		req := lastRequest()
		assert.Equal(t, "/balancers", req.URL.Path)
		assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
	})

	t.Run("server errors become *api.Error with the status code", func(t *testing.T) {
		handler, _ := jsonHandler(t, http.StatusInternalServerError, map[string]string{"oops": "yes"})
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		_, err = client.ListBalancers(context.Background())
		require.Error(t, err)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})
}

func TestCreateConfig(t *testing.T) {
	t.Run("posts the spec and decodes the created config", func(t *testing.T) {
		created := api.BalancerConfig{ID: 42, BalancerID: 7, Port: 443, Protocol: "https"}
		handler, lastRequest := jsonHandler(t, http.StatusOK, created)
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		spec := api.ConfigSpec{Port: 443, Protocol: "https", Algorithm: "roundrobin"}
		actual, err := client.CreateConfig(context.Background(), 7, spec)
		require.NoError(t, err)
		assert.Equal(t, &created, actual)

		req := lastRequest()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/balancers/7/configs", req.URL.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	})

	t.Run("a structured error list survives the round trip", func(t *testing.T) {
		body := map[string]interface{}{
			"errors": []map[string]string{
				{"field": "port", "reason": "port is already in use"},
				{"field": "nodes_1_address", "reason": "address is unreachable"},
			},
		}
		handler, _ := jsonHandler(t, http.StatusBadRequest, body)
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		_, err = client.CreateConfig(context.Background(), 7, api.ConfigSpec{})
		require.Error(t, err)

		fieldErrs := api.FieldErrors(err)
		require.Len(t, fieldErrs, 2)
		assert.Equal(t, "port", fieldErrs[0].Field)
		assert.Equal(t, "nodes_1_address", fieldErrs[1].Field)
	})

	t.Run("an unstructured error body collapses to the generic reason", func(t *testing.T) {
		handler, _ := jsonHandler(t, http.StatusBadRequest, map[string]string{"message": "nope"})
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		_, err = client.CreateConfig(context.Background(), 7, api.ConfigSpec{})
		require.Error(t, err)

		fieldErrs := api.FieldErrors(err)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, api.GenericReason, fieldErrs[0].Reason)
	})
}

func TestNodeCalls(t *testing.T) {
	t.Run("update node hits the nested path", func(t *testing.T) {
		updated := api.Node{ID: 5, ConfigID: 42, Label: "web-1"}
		handler, lastRequest := jsonHandler(t, http.StatusOK, updated)
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		_, err = client.UpdateNode(context.Background(), 7, 42, 5, api.NodeSpec{Label: "web-1"})
		require.NoError(t, err)

		req := lastRequest()
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/balancers/7/configs/42/nodes/5", req.URL.Path)
	})

	t.Run("delete node discards the success payload", func(t *testing.T) {
		handler, lastRequest := jsonHandler(t, http.StatusOK, map[string]string{})
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		require.NoError(t, client.DeleteNode(context.Background(), 7, 42, 5))
		assert.Equal(t, http.MethodDelete, lastRequest().Method)
	})

	t.Run("delete failures carry the server's error list", func(t *testing.T) {
		body := map[string]interface{}{
			"errors": []map[string]string{{"reason": "node is draining"}},
		}
		handler, _ := jsonHandler(t, http.StatusConflict, body)
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		err = client.DeleteNode(context.Background(), 7, 42, 5)
		require.Error(t, err)
		assert.Equal(t, "node is draining", api.FieldErrors(err)[0].Reason)
	})
}

func TestFieldErrors(t *testing.T) {
	t.Run("plain errors collapse to a single generic entry", func(t *testing.T) {
		fieldErrs := api.FieldErrors(errors.New("connection refused"))
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, api.GenericReason, fieldErrs[0].Reason)
		assert.Empty(t, fieldErrs[0].Field)
	})
}

func TestInvoices(t *testing.T) {
	t.Run("list invoices decodes amounts and dates", func(t *testing.T) {
		expected := []api.Invoice{
			{ID: 31, Label: "Invoice #31", Date: "2026-07-01", Total: 42.50},
			{ID: 30, Label: "Invoice #30", Date: "2026-06-01", Total: 40.00},
		}
		handler, lastRequest := jsonHandler(t, http.StatusOK, expected)
		server := httptest.NewServer(handler)
		defer server.Close()

		client, err := api.NewClient(server.URL, "token")
		require.NoError(t, err)

		actual, err := client.ListInvoices(context.Background())
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
		assert.Equal(t, "/account/invoices", lastRequest().URL.Path)
	})
}
