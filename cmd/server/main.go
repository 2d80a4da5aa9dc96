package main

import (
	"log"
	"net/http"

	"pawket-be/internal/address"
	"pawket-be/internal/admin"
	"pawket-be/internal/cache"
	"pawket-be/internal/cart"
	"pawket-be/internal/category"
	"pawket-be/internal/config"
	"pawket-be/internal/db"
	httpx "pawket-be/internal/http"
	"pawket-be/internal/inventory"
	"pawket-be/internal/logger"
	"pawket-be/internal/order"
	"pawket-be/internal/payment"
	"pawket-be/internal/product"
	"pawket-be/internal/razorpay"
	"pawket-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	store := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if store == nil {
		logger.L().Warn("redis not configured, caching disabled")
	}

	var gateway razorpay.Gateway
	client, err := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if err != nil {
		logger.L().Warn("razorpay credentials missing, payment endpoints will reject requests",
			zap.Error(err),
		)
		gateway = razorpay.Unconfigured{}
	} else {
		gateway = client
	}

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, store)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo, store)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo,
		user.PurgeStep{Name: "cart", Fn: cartRepo.Clear},
		user.PurgeStep{Name: "addresses", Fn: addressRepo.DeactivateByUser},
		user.PurgeStep{Name: "orders", Fn: orderRepo.DeleteByCustomer},
	)

	inventoryRepo := inventory.NewRepository(database)
	inventorySvc := inventory.NewService(inventoryRepo)

	paymentSvc := payment.NewService(gateway, orderRepo)
	adminSvc := admin.NewService(orderRepo, productRepo, userRepo, store)

	router := httpx.NewRouter(httpx.Deps{
		DB:        database,
		Cache:     store,
		Payments:  paymentSvc,
		Orders:    orderSvc,
		Products:  productSvc,
		Category:  categorySvc,
		Cart:      cartSvc,
		Users:     userSvc,
		Address:   addressSvc,
		Admin:     adminSvc,
		Inventory: inventorySvc,
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	log.Printf("pawket API listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
