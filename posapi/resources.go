package posapi

import (
	"context"
	"encoding/json"
	"net/url"
)

const (
	UsersPath        = "/users"
	CustomersPath    = "/customers"
	PlansPath        = "/service-plans"
	TransactionsPath = "/transactions"
	TicketsPath      = "/tickets"
	EquipmentPath    = "/equipment"
)

// Resource is a REST collection with the usual CRUD endpoints.
type Resource struct {
	api  Requester
	path string
}

func NewResource(r Requester, path string) *Resource {
	return &Resource{api: r, path: path}
}

func (r *Resource) Path() string {
	return r.path
}

func (r *Resource) item(id string, sub ...string) string {
	p := r.path + "/" + url.PathEscape(id)
	for _, s := range sub {
		p += "/" + s
	}
	return p
}

func (r *Resource) List(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return getRaw(ctx, r.api, r.path, query)
}

func (r *Resource) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, r.api, r.item(id), nil)
}

func (r *Resource) Create(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.api.Post(ctx, r.path, body, &out)
	return out, err
}

func (r *Resource) Update(ctx context.Context, id string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.api.Put(ctx, r.item(id), body, &out)
	return out, err
}

func (r *Resource) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, r.item(id), nil)
}

func (r *Resource) patch(ctx context.Context, id, field string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.api.Patch(ctx, r.item(id, field), body, &out)
	return out, err
}

type Users struct {
	*Resource
}

func (u *Users) UpdateRole(ctx context.Context, id, role string) (json.RawMessage, error) {
	return u.patch(ctx, id, "role", map[string]string{"role": role})
}

type Customers struct {
	*Resource
}

func (c *Customers) Search(ctx context.Context, q string) (json.RawMessage, error) {
	return getRaw(ctx, c.api, c.path+"/search", url.Values{"q": {q}})
}

func (c *Customers) ServiceHistory(ctx context.Context, id string) (json.RawMessage, error) {
	return getRaw(ctx, c.api, c.item(id, "services"), nil)
}

func (c *Customers) UpdateStatus(ctx context.Context, id, status string) (json.RawMessage, error) {
	return c.patch(ctx, id, "status", map[string]string{"status": status})
}

type Transactions struct {
	*Resource
}

func (t *Transactions) ByCustomer(ctx context.Context, customerID string) (json.RawMessage, error) {
	return getRaw(ctx, t.api, t.path+"/customer/"+url.PathEscape(customerID), nil)
}

func (t *Transactions) ProcessPayment(ctx context.Context, payment any) (json.RawMessage, error) {
	var out json.RawMessage
	err := t.api.Post(ctx, t.path+"/payment", payment, &out)
	return out, err
}

type Tickets struct {
	*Resource
}

func (t *Tickets) UpdateStatus(ctx context.Context, id, status string) (json.RawMessage, error) {
	return t.patch(ctx, id, "status", map[string]string{"status": status})
}

func (t *Tickets) AssignTechnician(ctx context.Context, id, technicianID string) (json.RawMessage, error) {
	return t.patch(ctx, id, "assign", map[string]string{"technicianId": technicianID})
}

func (t *Tickets) ByCustomer(ctx context.Context, customerID string) (json.RawMessage, error) {
	return getRaw(ctx, t.api, t.path+"/customer/"+url.PathEscape(customerID), nil)
}

type Equipment struct {
	*Resource
}

func (e *Equipment) UpdateStock(ctx context.Context, id string, quantity int) (json.RawMessage, error) {
	return e.patch(ctx, id, "stock", map[string]int{"quantity": quantity})
}
