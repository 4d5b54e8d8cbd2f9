// Package posapi names the POS REST endpoints. Resource calls pass parameters straight
// through and hand back the undecoded JSON; the console holds no business logic.
package posapi

import (
	"context"
	"encoding/json"
	"net/url"
)

// Requester is the subset of apiclient.Client the endpoints need.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Patch(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
	GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}

type API struct {
	Auth         *Auth
	Users        *Users
	Customers    *Customers
	Plans        *Resource
	Transactions *Transactions
	Tickets      *Tickets
	Equipment    *Equipment
	Dashboard    *Dashboard
	Reports      *Reports
}

func New(r Requester) *API {
	return &API{
		Auth:         &Auth{api: r},
		Users:        &Users{Resource: NewResource(r, UsersPath)},
		Customers:    &Customers{Resource: NewResource(r, CustomersPath)},
		Plans:        NewResource(r, PlansPath),
		Transactions: &Transactions{Resource: NewResource(r, TransactionsPath)},
		Tickets:      &Tickets{Resource: NewResource(r, TicketsPath)},
		Equipment:    &Equipment{Resource: NewResource(r, EquipmentPath)},
		Dashboard:    &Dashboard{api: r},
		Reports:      &Reports{api: r},
	}
}

func getRaw(ctx context.Context, r Requester, path string, query url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	if err := r.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
