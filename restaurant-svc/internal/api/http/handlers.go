package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"quickbite/restaurant-svc/internal/domain"
	"quickbite/restaurant-svc/internal/service"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
}

func NewHandler(restSvc service.RestaurantServiceInterface, menuSvc service.MenuServiceInterface) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Menu:        menuSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ping", h.ping).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/by-name/{name}", h.getRestaurantByName).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")

	r.HandleFunc("/api/restaurants/{restaurantId}/menu-items", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu-items", h.getRestaurantMenuItems).Methods("GET")
	r.HandleFunc("/api/menu-items/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu-items/{id}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/menu-items/{id}", h.deleteMenuItem).Methods("DELETE")
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func validRestaurant(rest *domain.Restaurant) bool {
	return rest.Name != "" && len(rest.Name) <= 255 &&
		len(rest.Description) <= 500 && len(rest.Address) <= 255
}

func validMenuItem(item *domain.MenuItem) bool {
	return item.Name != "" && len(item.Name) <= 255 &&
		len(item.Description) <= 500 &&
		item.Price >= 0 &&
		item.Category != "" && len(item.Category) <= 255
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validRestaurant(&rest) {
		http.Error(w, "Invalid restaurant payload", http.StatusBadRequest)
		return
	}
	if err := h.Restaurants.Create(r.Context(), &rest); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rest, err := h.Restaurants.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) getRestaurantByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rest, err := h.Restaurants.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validRestaurant(&rest) {
		http.Error(w, "Invalid restaurant payload", http.StatusBadRequest)
		return
	}
	rest.ID = id
	if err := h.Restaurants.Update(r.Context(), &rest); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rows, err := h.Restaurants.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validMenuItem(&item) {
		http.Error(w, "Invalid menu item payload", http.StatusBadRequest)
		return
	}
	item.RestaurantID = restaurantID
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) getRestaurantMenuItems(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	onlyAvailable := r.URL.Query().Get("only_available") == "true"
	items, err := h.Menu.List(r.Context(), restaurantID, onlyAvailable)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	item, err := h.Menu.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			http.Error(w, "Menu item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validMenuItem(&item) {
		http.Error(w, "Invalid menu item payload", http.StatusBadRequest)
		return
	}
	item.ID = id
	if err := h.Menu.Update(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			http.Error(w, "Menu item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rows, err := h.Menu.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
