// ABOUTME: Generic CRUD façade over one REST collection path.
// ABOUTME: Thin pass-through to the HTTP client with typed request and response shapes.
package resources

import (
	"context"
	"net/url"

	"github.com/harperreed/wellness/internal/api"
)

// Collection exposes getAll/getOne/create/update/delete for path.
type Collection[T any] struct {
	client *api.Client
	path   string
}

// NewCollection binds a collection to its resource path, e.g. /api/workouts.
func NewCollection[T any](client *api.Client, path string) Collection[T] {
	return Collection[T]{client: client, path: path}
}

func (c Collection[T]) item(id string) string {
	return c.path + "/" + url.PathEscape(id)
}

// GetAll fetches every item.
func (c Collection[T]) GetAll(ctx context.Context) ([]*T, error) {
	var out []*T
	if err := c.client.Get(ctx, c.path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOne fetches a single item by id.
func (c Collection[T]) GetOne(ctx context.Context, id string) (*T, error) {
	out := new(T)
	if err := c.client.Get(ctx, c.item(id), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts v and returns the stored item with its server id.
func (c Collection[T]) Create(ctx context.Context, v *T) (*T, error) {
	out := new(T)
	if err := c.client.Post(ctx, c.path, v, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the item with id by v.
func (c Collection[T]) Update(ctx context.Context, id string, v *T) (*T, error) {
	out := new(T)
	if err := c.client.Put(ctx, c.item(id), v, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the item with id.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, c.item(id))
}
