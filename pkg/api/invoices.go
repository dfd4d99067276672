package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

func (c *client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("account", "invoices"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	invoices := make([]Invoice, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &invoices,
		MessageFor{
			Status4xx: fmt.Sprintf("listing invoices was rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *client) GetInvoice(ctx context.Context, invoiceID int) (*Invoice, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("account", "invoices", strconv.Itoa(invoiceID)), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	inv := Invoice{}
	if err := unmarshalJsonResponse(
		resp, &inv,
		MessageFor{
			Status4xx: fmt.Sprintf("invoice %d not available (status code = %d)", invoiceID, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *client) GetAccount(ctx context.Context) (*Account, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("account"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	acc := Account{}
	if err := unmarshalJsonResponse(
		resp, &acc,
		MessageFor{
			Status4xx: fmt.Sprintf("account details not available (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return &acc, nil
}
