package example

import (
	"net/http"

	"github.com/xy-planning-network/vouch/http/extract"
	"github.com/xy-planning-network/vouch/http/resp"
	"github.com/xy-planning-network/vouch/http/router"
	"github.com/xy-planning-network/vouch/ranger"
)

// Handler shares the Ranger and the Directory across all example handlers.
type Handler struct {
	*ranger.Ranger
	Users *Directory
}

// New constructs a *Handler serving users.
func New(rng *ranger.Ranger, users *Directory) *Handler {
	if users == nil {
		users = NewDirectory()
	}

	return &Handler{Ranger: rng, Users: users}
}

// Routes lists every route the example serves.
func (h *Handler) Routes() []router.Route {
	ex := h.EmitExtractor()

	return []router.Route{
		{Path: "/healthz", Method: http.MethodGet, Handler: h.healthz},
		{Path: "/orders", Method: http.MethodPost, Handler: extract.HandleBody(ex, h.createOrder)},
		{Path: "/users", Method: http.MethodGet, Handler: extract.HandleQuery(ex, h.listUsers)},
		{Path: "/users", Method: http.MethodPost, Handler: extract.HandleBody(ex, h.createUser)},
		{Path: "/users/search", Method: http.MethodPost, Handler: extract.HandleBodyAndQuery(ex, h.searchUsers)},
	}
}

// Register adds Routes to the Ranger's router.
func (h *Handler) Register() {
	h.Router.HandleRoutes(h.Routes())
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Json(w, r, resp.Data(map[string]string{"status": "ok"})); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request, order extract.Body[Order]) {
	if err := h.Json(w, r, resp.Code(http.StatusCreated), resp.Data(order)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request, user extract.Body[User]) {
	h.Users.Add(user.Get())
	if err := h.Json(w, r, resp.Code(http.StatusCreated), resp.Data(user)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request, filter extract.Query[UserFilter]) {
	if err := h.Json(w, r, resp.Data(h.Users.List(filter.Get()))); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) searchUsers(
	w http.ResponseWriter,
	r *http.Request,
	search extract.Body[UserSearch],
	filter extract.Query[UserFilter],
) {
	found := h.Users.Search(search.Get().Names, filter.Get())
	if err := h.Json(w, r, resp.Data(found)); err != nil {
		h.Err(w, r, err)
	}
}
