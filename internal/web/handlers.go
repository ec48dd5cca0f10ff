// Package web exposes the storefront over HTTP: catalog browsing, the
// per-session cart, and the checkout endpoints that mint wa.me links.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/vxxious/aunty-burger/internal/cart"
	"github.com/vxxious/aunty-burger/internal/cartstore"
	"github.com/vxxious/aunty-burger/internal/catalog"
	"github.com/vxxious/aunty-burger/internal/checkout"
	"github.com/vxxious/aunty-burger/internal/money"
	"github.com/vxxious/aunty-burger/internal/whatsapp"
)

// Server wires the storefront's collaborators behind the HTTP surface.
type Server struct {
	catalog  *catalog.Catalog
	carts    *cartstore.Manager
	checkout *checkout.Service
	log      *logrus.Logger
}

// NewServer builds the handler set over its collaborators.
func NewServer(cat *catalog.Catalog, carts *cartstore.Manager, co *checkout.Service, log *logrus.Logger) *Server {
	return &Server{catalog: cat, carts: carts, checkout: co, log: log}
}

// Router mounts all routes with tracing, logging, and session middleware.
func (s *Server) Router(serviceName string) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware(serviceName))
	r.Use(logRequests(s.log))
	r.Use(ensureSession)

	r.HandleFunc("/api/menu", s.handleMenu).Methods(http.MethodGet)
	r.HandleFunc("/api/menu/{id}", s.handleMenuItem).Methods(http.MethodGet)

	r.HandleFunc("/api/cart", s.handleCartView).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/items", s.handleCartAdd).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id}", s.handleCartUpdate).Methods(http.MethodPut)
	r.HandleFunc("/api/cart/items/{id}", s.handleCartRemove).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/empty", s.handleCartEmpty).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/open", s.handleCartVisibility((*cart.Cart).Open)).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/close", s.handleCartVisibility((*cart.Cart).Close)).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/toggle", s.handleCartVisibility((*cart.Cart).Toggle)).Methods(http.MethodPost)

	r.HandleFunc("/api/checkout/quick", s.handleQuickOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout", s.handleCheckout).Methods(http.MethodPost)
	r.HandleFunc("/order/open", s.handleOrderOpen).Methods(http.MethodGet)

	r.HandleFunc("/api/contact", s.handleBusinessInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/contact", s.handleContact).Methods(http.MethodPost)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

type itemView struct {
	catalog.Item
	DisplayPrice string `json:"displayPrice"`
}

func itemViews(items []catalog.Item) []itemView {
	out := make([]itemView, len(items))
	for i, it := range items {
		out[i] = itemView{Item: it, DisplayPrice: money.Format(it.Price)}
	}
	return out
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var items []catalog.Item
	switch {
	case q.Get("q") != "":
		items = s.catalog.Search(q.Get("q"))
	case q.Get("popular") == "true":
		items = s.catalog.Popular()
	default:
		items = s.catalog.Items()
	}
	if c := q.Get("category"); c != "" {
		filtered := items[:0]
		for _, it := range items {
			if it.Category == c {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	items = catalog.Sort(items, q.Get("sort"))

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.catalog.Categories(),
		"items":      itemViews(items),
	})
}

func (s *Server) handleMenuItem(w http.ResponseWriter, r *http.Request) {
	it, ok := s.catalog.Find(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown menu item")
		return
	}
	writeJSON(w, http.StatusOK, itemView{Item: it, DisplayPrice: money.Format(it.Price)})
}

type cartView struct {
	cart.Snapshot
	DisplayTotal string `json:"displayTotal"`
}

func (s *Server) writeCart(w http.ResponseWriter, snap cart.Snapshot) {
	if snap.Lines == nil {
		snap.Lines = []cart.Line{}
	}
	writeJSON(w, http.StatusOK, cartView{Snapshot: snap, DisplayTotal: money.Format(snap.TotalPrice)})
}

func (s *Server) sessionCart(r *http.Request) *cart.Cart {
	return s.carts.Cart(r.Context(), sessionID(r))
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, s.sessionCart(r).Snapshot())
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "body must carry a menu item id")
		return
	}
	it, ok := s.catalog.Find(req.ID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown menu item")
		return
	}
	c := s.sessionCart(r)
	c.Add(it)
	s.writeCart(w, c.Snapshot())
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body must carry a quantity")
		return
	}
	c := s.sessionCart(r)
	c.SetQuantity(mux.Vars(r)["id"], req.Quantity)
	s.writeCart(w, c.Snapshot())
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	c := s.sessionCart(r)
	c.Remove(mux.Vars(r)["id"])
	s.writeCart(w, c.Snapshot())
}

func (s *Server) handleCartEmpty(w http.ResponseWriter, r *http.Request) {
	c := s.sessionCart(r)
	c.Clear()
	s.writeCart(w, c.Snapshot())
}

func (s *Server) handleCartVisibility(op func(*cart.Cart)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.sessionCart(r)
		op(c)
		s.writeCart(w, c.Snapshot())
	}
}

type orderResponse struct {
	WhatsAppURL string `json:"whatsappUrl"`
	// FallbackURL navigates in place through this service when the host
	// environment blocks opening the deep link directly.
	FallbackURL string `json:"fallbackUrl"`
}

func (s *Server) handleQuickOrder(w http.ResponseWriter, r *http.Request) {
	link, err := s.checkout.QuickOrder(s.sessionCart(r).Snapshot())
	if err != nil {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{
		WhatsAppURL: link,
		FallbackURL: "/order/open?mode=quick",
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var details whatsapp.CustomerDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeError(w, http.StatusBadRequest, "malformed customer details")
		return
	}

	valid, fieldErrs := checkout.Validate(details)
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
		return
	}

	c := s.sessionCart(r)
	link, err := s.checkout.PlaceOrder(c.Snapshot(), valid)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	// The cart is not cleared here: the fallback redirect must still be
	// able to rebuild the same order if opening the deep link fails. The
	// client clears via /api/cart/empty once the handoff succeeded;
	// taking the fallback clears server-side.
	writeJSON(w, http.StatusOK, orderResponse{
		WhatsAppURL: link,
		FallbackURL: "/order/open?" + detailsQuery(valid).Encode(),
	})
}

func detailsQuery(details whatsapp.CustomerDetails) url.Values {
	q := url.Values{}
	q.Set("mode", "details")
	q.Set("name", details.Name)
	q.Set("phone", details.Phone)
	q.Set("address", details.Address)
	if details.Notes != "" {
		q.Set("notes", details.Notes)
	}
	return q
}

// handleOrderOpen re-derives the order link from the session's cart and
// answers with a redirect, the in-place fallback when opening the deep
// link in a new window fails. mode=details rebuilds the filled-details
// message from the query's customer fields and hands the cart off for
// good; the default quick mode leaves the cart untouched, as the blank
// template is completed inside WhatsApp.
func (s *Server) handleOrderOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := s.sessionCart(r)

	if q.Get("mode") == "details" {
		details := whatsapp.CustomerDetails{
			Name:    q.Get("name"),
			Phone:   q.Get("phone"),
			Address: q.Get("address"),
			Notes:   q.Get("notes"),
		}
		link, err := s.checkout.PlaceOrder(c.Snapshot(), details)
		if err != nil {
			var fieldErrs checkout.FieldErrors
			if errors.As(err, &fieldErrs) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
				return
			}
			writeError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		// Order handed off; the cart's job is done.
		c.Clear()
		c.Close()
		http.Redirect(w, r, link, http.StatusFound)
		return
	}

	link, err := s.checkout.QuickOrder(c.Snapshot())
	if err != nil {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

func (s *Server) handleBusinessInfo(w http.ResponseWriter, r *http.Request) {
	biz := s.catalog.Business()
	writeJSON(w, http.StatusOK, map[string]any{
		"business": biz,
		"chatUrl":  whatsapp.ChatURL(biz.WhatsApp),
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed contact message")
		return
	}
	biz := s.catalog.Business()
	writeJSON(w, http.StatusOK, map[string]string{
		"whatsappUrl": whatsapp.ContactURL(biz.WhatsApp, req.Name, req.Email, req.Phone, req.Message),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.carts.Ping(r.Context()) {
		// The mirror being down degrades durability, not availability.
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
