package example

import (
	"errors"
	"strings"
	"sync"
)

// A User is an entry in the directory.
type User struct {
	Name  string `json:"name" validate:"required,max=3"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Age   int    `json:"age,omitempty" validate:"gte=0,lte=150"`
}

// A UserFilter narrows and pages a listing of users.
type UserFilter struct {
	Name  string `schema:"name" validate:"omitempty,max=3"`
	Limit int    `schema:"limit" validate:"omitempty,min=1,max=100"`
	Page  int    `schema:"page" validate:"omitempty,min=1"`
}

// A UserSearch looks up users by name.
type UserSearch struct {
	Names []string `json:"names" validate:"required,min=1,dive,max=3"`
}

// An Order is described by a JSON Schema document instead of struct tags.
//
// Item is "omitempty" so an order without one is missing "item" when checked against the document.
// A missing quantity reads as 0, which "minimum" rejects.
type Order struct {
	Item     string   `json:"item,omitempty"`
	Quantity int      `json:"quantity"`
	Notes    []string `json:"notes,omitempty"`
}

func (Order) JSONSchema() string {
	return `{
		"type": "object",
		"properties": {
			"item": {"type": "string", "minLength": 1, "maxLength": 32},
			"quantity": {"type": "integer", "minimum": 1, "maximum": 1000},
			"notes": {"type": "array", "items": {"type": "string", "maxLength": 140}}
		},
		"required": ["item"]
	}`
}

// Validate rejects orders for more of an item than anyone could carry.
func (o Order) Validate() error {
	if o.Item == "piano" && o.Quantity > 1 {
		return errors.New("Only one piano may be ordered at a time.")
	}

	return nil
}

const defaultLimit = 20

// PagedData holds one page of users and pagination metadata.
type PagedData struct {
	Items      []User `json:"items"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalItems int    `json:"totalItems"`
	TotalPages int    `json:"totalPages"`
}

// A Directory holds users in memory.
type Directory struct {
	mu    sync.RWMutex
	users []User
}

// NewDirectory constructs a *Directory seeded with users.
func NewDirectory(users ...User) *Directory {
	return &Directory{users: append([]User(nil), users...)}
}

// Add appends u to the directory.
func (d *Directory) Add(u User) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users = append(d.users, u)
}

// List returns the page of users whose names begin with f.Name.
func (d *Directory) List(f UserFilter) PagedData {
	return d.find(f, func(User) bool { return true })
}

// Search returns the page of users named exactly as any of names
// and beginning with f.Name.
func (d *Directory) Search(names []string, f UserFilter) PagedData {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	return d.find(f, func(u User) bool { return want[u.Name] })
}

func (d *Directory) find(f UserFilter, match func(User) bool) PagedData {
	d.mu.RLock()
	defer d.mu.RUnlock()

	found := make([]User, 0)
	for _, u := range d.users {
		if strings.HasPrefix(u.Name, f.Name) && match(u) {
			found = append(found, u)
		}
	}

	return paginate(found, f.Limit, f.Page)
}

// paginate slices out page of users, counting from 1, limit users to a page.
func paginate(users []User, limit, page int) PagedData {
	if limit == 0 {
		limit = defaultLimit
	}

	if page == 0 {
		page = 1
	}

	pd := PagedData{
		Items:      []User{},
		Page:       page,
		PerPage:    limit,
		TotalItems: len(users),
		TotalPages: (len(users) + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= len(users) {
		return pd
	}

	end := start + limit
	if end > len(users) {
		end = len(users)
	}

	pd.Items = users[start:end]
	return pd
}
