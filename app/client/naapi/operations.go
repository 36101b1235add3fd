package naapi

import (
	"context"
	"io"
	"naapi/app/dto"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samber/oops"
)

// MyAppointments lists the appointments of the current responsible.
func (c *Client) MyAppointments(ctx context.Context, studentName string) ([]dto.Appointment, error) {
	query := url.Values{}
	if studentName != "" {
		query.Set("alunoNome", studentName)
	}

	var res []dto.Appointment
	if err := c.call(ctx, call{method: http.MethodGet, path: "/atendimentos/me", query: query}, &res); err != nil {
		return nil, oops.Errorf("list my appointments: %w", err)
	}

	return res, nil
}

func (c *Client) ConcludeAppointment(ctx context.Context, id int64, payload dto.AppointmentConclusion) (dto.Appointment, error) {
	var res dto.Appointment
	path := "/atendimentos/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.call(ctx, call{method: http.MethodPatch, path: path, body: payload}, &res); err != nil {
		return res, oops.Errorf("conclude appointment: %w", err)
	}

	return res, nil
}

func (c *Client) UpdateMyDetails(ctx context.Context, payload dto.UserSelfUpdate) (dto.User, error) {
	var res dto.User
	if err := c.call(ctx, call{method: http.MethodPut, path: "/usuarios/me/detalhes", body: payload}, &res); err != nil {
		return res, oops.Errorf("update my details: %w", err)
	}

	return res, nil
}

func (c *Client) UpdateMyPassword(ctx context.Context, payload dto.UserPasswordUpdate) error {
	if err := c.call(ctx, call{method: http.MethodPut, path: "/usuarios/me/senha", body: payload}, nil); err != nil {
		return oops.Errorf("update my password: %w", err)
	}

	return nil
}

func (c *Client) ListRoles(ctx context.Context) ([]dto.Papel, error) {
	var res []dto.Papel
	if err := c.call(ctx, call{method: http.MethodGet, path: "/papeis"}, &res); err != nil {
		return nil, oops.Errorf("list roles: %w", err)
	}

	return res, nil
}

// forward sends a pre-encoded body with the held token and decodes a JSON answer.
func (c *Client) forward(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req, call{})

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp, out)
}

// Raw fetches a body without decoding it.
func (c *Client) Raw(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	c.authorize(req, call{})

	resp, err := c.send(req)
	if err != nil {
		return nil, oops.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.
			With("status_code", http.StatusBadGateway).
			Errorf("failed to read %s: %w", path, err)
	}

	return &RawResponse{
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		Body:               data,
	}, nil
}
