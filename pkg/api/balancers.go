package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

func (c *client) ListBalancers(ctx context.Context) ([]Balancer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("balancers"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	balancers := make([]Balancer, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &balancers,
		MessageFor{
			Status4xx: fmt.Sprintf("listing balancers was rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return balancers, nil
}

func (c *client) GetBalancer(ctx context.Context, balancerID int) (*Balancer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("balancers", strconv.Itoa(balancerID)), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b := Balancer{}
	if err := unmarshalJsonResponse(
		resp, &b,
		MessageFor{
			Status4xx: fmt.Sprintf("balancer %d not available (status code = %d)", balancerID, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *client) ListConfigs(ctx context.Context, balancerID int) ([]BalancerConfig, error) {
	req, err := c.newRequest(
		ctx, http.MethodGet,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs"), nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	configs := make([]BalancerConfig, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &configs,
		MessageFor{
			Status4xx: fmt.Sprintf("listing configs was rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return configs, nil
}

func (c *client) CreateConfig(ctx context.Context, balancerID int, spec ConfigSpec) (*BalancerConfig, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		ctx, http.MethodPost,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs"),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	cfg := BalancerConfig{}
	if err := unmarshalJsonResponse(
		resp, &cfg,
		MessageFor{
			Status4xx: fmt.Sprintf("creating config was rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *client) UpdateConfig(ctx context.Context, balancerID, configID int, spec ConfigSpec) (*BalancerConfig, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		ctx, http.MethodPut,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs", strconv.Itoa(configID)),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	cfg := BalancerConfig{}
	if err := unmarshalJsonResponse(
		resp, &cfg,
		MessageFor{
			Status4xx: fmt.Sprintf("updating config %d was rejected by server (status code = %d)", configID, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *client) DeleteConfig(ctx context.Context, balancerID, configID int) error {
	req, err := c.newRequest(
		ctx, http.MethodDelete,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs", strconv.Itoa(configID)),
		nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(resp, MessageFor{
		Status4xx: fmt.Sprintf("deleting config %d was rejected by server (status code = %d)", configID, resp.StatusCode),
		Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
	})
}

func (c *client) ListNodes(ctx context.Context, balancerID, configID int) ([]Node, error) {
	req, err := c.newRequest(
		ctx, http.MethodGet,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs", strconv.Itoa(configID), "nodes"),
		nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	nodes := make([]Node, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &nodes,
		MessageFor{
			Status4xx: fmt.Sprintf("listing nodes was rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (c *client) CreateNode(ctx context.Context, balancerID, configID int, spec NodeSpec) (*Node, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		ctx, http.MethodPost,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs", strconv.Itoa(configID), "nodes"),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	n := Node{}
	if err := unmarshalJsonResponse(
		resp, &n,
		MessageFor{
			Status4xx: fmt.Sprintf("creating node was rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *client) UpdateNode(ctx context.Context, balancerID, configID, nodeID int, spec NodeSpec) (*Node, error) {
	reqBody, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		ctx, http.MethodPut,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs", strconv.Itoa(configID), "nodes", strconv.Itoa(nodeID)),
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	n := Node{}
	if err := unmarshalJsonResponse(
		resp, &n,
		MessageFor{
			Status4xx: fmt.Sprintf("updating node %d was rejected by server (status code = %d)", nodeID, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *client) DeleteNode(ctx context.Context, balancerID, configID, nodeID int) error {
	req, err := c.newRequest(
		ctx, http.MethodDelete,
		c.apipath("balancers", strconv.Itoa(balancerID), "configs", strconv.Itoa(configID), "nodes", strconv.Itoa(nodeID)),
		nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(resp, MessageFor{
		Status4xx: fmt.Sprintf("deleting node %d was rejected by server (status code = %d)", nodeID, resp.StatusCode),
		Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
	})
}
