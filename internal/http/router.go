package httpx

import (
	"net/http"

	"pawket-be/internal/address"
	"pawket-be/internal/admin"
	"pawket-be/internal/cache"
	"pawket-be/internal/cart"
	"pawket-be/internal/category"
	"pawket-be/internal/http/handlers"
	"pawket-be/internal/inventory"
	"pawket-be/internal/logger"
	"pawket-be/internal/middleware"
	"pawket-be/internal/order"
	"pawket-be/internal/payment"
	"pawket-be/internal/product"
	"pawket-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	DB        handlers.Pinger
	Cache     *cache.Store
	Payments  payment.Service
	Orders    order.Service
	Products  product.Service
	Category  category.Service
	Cart      cart.Service
	Users     user.Service
	Address   address.Service
	Admin     admin.Service
	Inventory inventory.Service
}

// NewRouter builds the full API surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Authenticate)
	r.Use(middleware.RateLimit)

	r.Get("/health", handlers.Health(deps.DB, deps.Cache))

	r.Route("/api", func(r chi.Router) {
		// Public storefront.
		r.Get("/products", handlers.ListProducts(deps.Products))
		r.Get("/products/{idOrSlug}", handlers.GetProduct(deps.Products))
		r.Get("/categories", handlers.ListCategories(deps.Category))
		r.Get("/orders/track/{orderNumber}", handlers.TrackOrder(deps.Orders))
		r.Post("/orders", handlers.Checkout(deps.Orders))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Register(deps.Users))
			r.Post("/login", handlers.Login(deps.Users))
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-order", handlers.CreatePaymentOrder(deps.Payments))
			r.Post("/verify", handlers.VerifyPayment(deps.Payments))
			r.Post("/failure", handlers.PaymentFailed(deps.Orders))
		})

		// Authenticated customer surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/orders", handlers.MyOrders(deps.Orders))
			r.Get("/orders/{id}", handlers.GetOrder(deps.Orders))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", handlers.GetCart(deps.Cart))
				r.Post("/", handlers.AddToCart(deps.Cart))
				r.Put("/{variantId}", handlers.UpdateCartItem(deps.Cart))
				r.Delete("/{variantId}", handlers.RemoveCartItem(deps.Cart))
				r.Delete("/", handlers.ClearCart(deps.Cart))
			})

			r.Route("/me", func(r chi.Router) {
				r.Get("/profile", handlers.GetProfile(deps.Users))
				r.Put("/profile", handlers.UpdateProfile(deps.Users))
				r.Delete("/", handlers.DeleteAccount(deps.Users))

				r.Route("/addresses", func(r chi.Router) {
					r.Get("/", handlers.ListAddresses(deps.Address))
					r.Post("/", handlers.CreateAddress(deps.Address))
					r.Delete("/{id}", handlers.DeleteAddress(deps.Address))
					r.Put("/{id}/default", handlers.SetDefaultAddress(deps.Address))
				})
			})
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/dashboard", handlers.AdminDashboard(deps.Admin))
			r.Get("/orders", handlers.AdminListOrders(deps.Orders))
			r.Put("/orders/{id}/status", handlers.AdminUpdateOrderStatus(deps.Orders))

			r.Post("/products", handlers.AdminCreateProduct(deps.Products))
			r.Put("/products/{id}", handlers.AdminUpdateProduct(deps.Products))
			r.Put("/variants/{variantId}/stock", handlers.AdminUpdateStock(deps.Products))

			r.Post("/categories", handlers.AdminCreateCategory(deps.Category))
			r.Put("/categories/{id}", handlers.AdminUpdateCategory(deps.Category))
			r.Delete("/categories/{id}", handlers.AdminDeleteCategory(deps.Category))

			// Operations back office.
			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", handlers.ListIngredients(deps.Inventory))
				r.Post("/", handlers.CreateIngredient(deps.Inventory))
				r.Put("/{id}", handlers.UpdateIngredient(deps.Inventory))
				r.Delete("/{id}", handlers.DeleteIngredient(deps.Inventory))
			})
			r.Get("/vendors", handlers.ListVendors(deps.Inventory))
			r.Post("/vendors", handlers.CreateVendor(deps.Inventory))
			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", handlers.ListRecipeItems(deps.Inventory))
				r.Post("/", handlers.CreateRecipeItem(deps.Inventory))
				r.Put("/{id}", handlers.UpdateRecipeItem(deps.Inventory))
				r.Delete("/{id}", handlers.DeleteRecipeItem(deps.Inventory))
			})
		})
	})

	return r
}
