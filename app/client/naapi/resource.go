package naapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samber/oops"
)

// Resource is one backend CRUD family rooted at path.
type Resource[T any] struct {
	client *Client
	path   string
}

func (r Resource[T]) item(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var res []T
	if err := r.client.call(ctx, call{method: http.MethodGet, path: r.path, query: query}, &res); err != nil {
		return nil, oops.Errorf("list %s: %w", r.path, err)
	}

	return res, nil
}

// ListByStudent hits the path/aluno/{id} listing.
func (r Resource[T]) ListByStudent(ctx context.Context, studentID int64, query url.Values) ([]T, error) {
	var res []T
	path := r.path + "/aluno/" + strconv.FormatInt(studentID, 10)
	if err := r.client.call(ctx, call{method: http.MethodGet, path: path, query: query}, &res); err != nil {
		return nil, oops.Errorf("list %s: %w", path, err)
	}

	return res, nil
}

func (r Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var res T
	if err := r.client.call(ctx, call{method: http.MethodGet, path: r.item(id)}, &res); err != nil {
		return res, oops.Errorf("get %s: %w", r.item(id), err)
	}

	return res, nil
}

func (r Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var res T
	if err := r.client.call(ctx, call{method: http.MethodPost, path: r.path, body: payload}, &res); err != nil {
		return res, oops.Errorf("create %s: %w", r.path, err)
	}

	return res, nil
}

func (r Resource[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var res T
	if err := r.client.call(ctx, call{method: http.MethodPut, path: r.item(id), body: payload}, &res); err != nil {
		return res, oops.Errorf("update %s: %w", r.item(id), err)
	}

	return res, nil
}

func (r Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.client.call(ctx, call{method: http.MethodDelete, path: r.item(id)}, nil); err != nil {
		return oops.Errorf("delete %s: %w", r.item(id), err)
	}

	return nil
}

// CreateRaw forwards an already encoded body, e.g. a multipart upload.
func (r Resource[T]) CreateRaw(ctx context.Context, contentType string, body io.Reader) (T, error) {
	var res T
	if err := r.client.forward(ctx, http.MethodPost, r.path, contentType, body, &res); err != nil {
		return res, oops.Errorf("create %s: %w", r.path, err)
	}

	return res, nil
}
